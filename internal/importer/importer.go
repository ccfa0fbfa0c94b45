package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer/ledger"
)

// Format selects an export profile family. The zero value auto-detects.
type Format = budget.Source

type LedgerParser interface {
	Parse(r io.Reader, format Format) (*ledger.Batch, error)
}

// Budgets stores parsed rows.
type Budgets interface {
	ImportActuals(ctx context.Context, params budget.ImportActualsParams) ([]*budget.Actual, error)
	ImportLines(ctx context.Context, practiceID int64, year int, rows []budget.ImportRow) ([]*budget.Line, error)
}
