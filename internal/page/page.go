// Package page normalizes offset/limit pagination for list endpoints.
package page

import (
	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Normalize validates offset and limit. A zero limit means the caller did not
// set one and becomes DefaultLimit.
func Normalize(offset, limit int) (int, int, error) {
	if offset < 0 {
		return 0, 0, apperr.Validation("offset must be greater than or equal to 0")
	}

	if limit == 0 {
		return offset, DefaultLimit, nil
	}

	if err := CheckLimit(limit); err != nil {
		return 0, 0, err
	}

	return offset, limit, nil
}

// CheckLimit validates a limit a client supplied explicitly.
func CheckLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return apperr.Validation("limit must be between 1 and %d", MaxLimit)
	}

	return nil
}
