package respond

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Date is a calendar date carried as "YYYY-MM-DD" in JSON.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(time.DateOnly))), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string in YYYY-MM-DD form")
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}

	d.Time = t

	return nil
}

// QueryDate parses an optional date query parameter.
func QueryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		Detail(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: expected YYYY-MM-DD", name))
		return nil, false
	}

	return &t, true
}
