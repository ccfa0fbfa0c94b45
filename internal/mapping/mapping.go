package mapping

import (
	"time"
)

// Mapping links a raw account label from an accounting export to a category.
// A label matches when it contains RawPattern, case-insensitively.
type Mapping struct {
	ID           int64
	RawPattern   string
	CategoryCode string
	CreatedAt    time.Time
}

func (m *Mapping) Snapshot() map[string]any {
	return map[string]any{
		"raw_pattern":   m.RawPattern,
		"category_code": m.CategoryCode,
	}
}
