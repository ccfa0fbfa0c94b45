package category

import (
	"fmt"
)

// Type classifies a category for P&L grouping.
type Type string

const (
	TypeRevenue Type = "revenue"
	TypeExpense Type = "expense"
	// TypeMetric categories track non-monetary KPIs and never enter P&L totals.
	TypeMetric Type = "metric"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeRevenue, TypeExpense, TypeMetric:
		return t, nil
	}

	return "", fmt.Errorf("category_type must be one of [revenue expense metric], got %q", s)
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// AccountCategory is one node of the chart of accounts.
type AccountCategory struct {
	ID        int64
	Code      string
	Name      string
	Type      Type
	ParentID  *int64
	Level     int
	SortOrder int
}

func (c *AccountCategory) Snapshot() map[string]any {
	snap := map[string]any{
		"code":          c.Code,
		"name":          c.Name,
		"category_type": string(c.Type),
		"level":         c.Level,
		"sort_order":    c.SortOrder,
		"parent_id":     nil,
	}

	if c.ParentID != nil {
		snap["parent_id"] = *c.ParentID
	}

	return snap
}
