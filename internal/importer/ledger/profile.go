package ledger

import (
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
)

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one accounting export format.
// Column names are matched case-insensitively.
type Profile struct {
	Name       string
	Source     budget.Source
	AccountCol string
	DateCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.AccountCol, p.DateCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of formats tried during auto-detection.
// More specific profiles come first.
var profiles = []Profile{
	{
		Name:       "quickbooks-ledger",
		Source:     budget.SourceQuickBooks,
		AccountCol: "account",
		DateCol:    "date",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:       "xero",
		Source:     budget.SourceXero,
		AccountCol: "account code",
		DateCol:    "date",
		AmountMode: amountSingle,
		AmountCol:  "net amount",
	},
	{
		Name:       "quickbooks",
		Source:     budget.SourceQuickBooks,
		AccountCol: "account",
		DateCol:    "date",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
	{
		Name:       "import",
		Source:     budget.SourceImport,
		AccountCol: "code",
		DateCol:    "period_date",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
}
