package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer/ledger"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer/workbook"
)

// Service turns uploaded files into actuals and budget lines.
type Service struct {
	parser  LedgerParser
	budgets Budgets
}

func NewService(budgets Budgets) *Service {
	return &Service{
		parser:  ledger.NewParser(),
		budgets: budgets,
	}
}

// ActualsResult summarizes one imported export file.
type ActualsResult struct {
	BatchID string
	Profile string
	Actuals []*budget.Actual
}

// ImportActuals parses an accounting export and stores its rows as actuals
// of the practice, all or nothing.
func (s *Service) ImportActuals(ctx context.Context, practiceID int64, format Format, r io.Reader) (*ActualsResult, error) {
	if format != "" {
		if _, err := budget.ParseSource(string(format)); err != nil || format == budget.SourceManual {
			return nil, apperr.Validation("unknown format: %s", format)
		}
	}

	batch, err := s.parser.Parse(r, format)
	if err != nil {
		return nil, err
	}

	if len(batch.Entries) == 0 {
		return nil, apperr.Validation("file contains no actual rows")
	}

	batchID := uuid.NewString()

	actuals, err := s.budgets.ImportActuals(ctx, budget.ImportActualsParams{
		PracticeID: practiceID,
		Source:     batch.Source,
		BatchID:    batchID,
		Entries:    batch.Entries,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("imported actuals",
		"batch_id", batchID,
		"practice_id", practiceID,
		"profile", batch.Profile,
		"charset", batch.Charset,
		"rows", len(actuals),
	)

	return &ActualsResult{BatchID: batchID, Profile: batch.Profile, Actuals: actuals}, nil
}

// ImportBudget reads a budget workbook and writes it onto the practice's
// fiscal year.
func (s *Service) ImportBudget(ctx context.Context, practiceID int64, year int, data []byte) ([]*budget.Line, error) {
	if len(data) == 0 {
		return nil, apperr.Validation("file_data is empty")
	}

	rows, err := workbook.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	lines, err := s.budgets.ImportLines(ctx, practiceID, year, rows)
	if err != nil {
		return nil, fmt.Errorf("importing budget rows: %w", err)
	}

	slog.Info("imported budget workbook", "practice_id", practiceID, "fiscal_year", year, "lines", len(lines))

	return lines, nil
}
