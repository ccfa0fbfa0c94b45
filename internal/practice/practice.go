package practice

import (
	"fmt"
)

// Status is the operating state of a practice.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusInactive:
		return st, nil
	}

	return "", fmt.Errorf("status must be one of [active inactive], got %q", s)
}

// UnmarshalText rejects unknown statuses while decoding JSON payloads.
func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}

	*s = st

	return nil
}

// Practice is a dental practice location.
type Practice struct {
	ID       int64
	Name     string
	Location string
	Status   Status
}

// Snapshot is the audit representation of a practice.
func (p *Practice) Snapshot() map[string]any {
	return map[string]any{
		"name":     p.Name,
		"location": p.Location,
		"status":   string(p.Status),
	}
}
