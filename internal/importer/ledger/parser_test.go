package ledger_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_QuickBooks(t *testing.T) {
	csv := `Austin PC
Transaction Detail by Account
January 2026

Account,Date,Memo,Amount
Hygiene Revenue,01/15/2026,Cleanings,"12,450.00"
Dental Supplies,01/20/2026,Henry Schein,(1200.50)
Total,,,"11,249.50"
`

	batch, err := ledger.NewParser().Parse(strings.NewReader(csv), "")
	require.NoError(t, err)
	require.Len(t, batch.Entries, 2)

	assert.Equal(t, "quickbooks", batch.Profile)
	assert.Equal(t, budget.SourceQuickBooks, batch.Source)

	assert.Equal(t, "Hygiene Revenue", batch.Entries[0].Account)
	assert.Equal(t, date(2026, 1, 15), batch.Entries[0].Date)
	assert.Equal(t, "12450.00", batch.Entries[0].Amount.StringFixed(2))
	assert.Equal(t, 6, batch.Entries[0].Row)

	assert.Equal(t, "-1200.50", batch.Entries[1].Amount.StringFixed(2))
}

func TestParser_QuickBooksLedger(t *testing.T) {
	csv := `Date,Account,Debit,Credit
01/05/2026,Rent,"4,000.00",
01/06/2026,Patient Revenue,,"9,800.00"
01/07/2026,Rent,,
`

	batch, err := ledger.NewParser().Parse(strings.NewReader(csv), "")
	require.NoError(t, err)
	require.Len(t, batch.Entries, 2)

	assert.Equal(t, "quickbooks-ledger", batch.Profile)
	assert.Equal(t, "4000.00", batch.Entries[0].Amount.StringFixed(2))
	assert.Equal(t, "9800.00", batch.Entries[1].Amount.StringFixed(2))
}

func TestParser_Xero(t *testing.T) {
	csv := `Date;Account Code;Description;Net Amount;Tax
15 Jan 2026;4000;Collections;48500.00;0
`

	batch, err := ledger.NewParser().Parse(strings.NewReader(csv), "")
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)

	assert.Equal(t, budget.SourceXero, batch.Source)
	assert.Equal(t, "4000", batch.Entries[0].Account)
	assert.Equal(t, date(2026, 1, 15), batch.Entries[0].Date)
	assert.Equal(t, "48500.00", batch.Entries[0].Amount.StringFixed(2))
}

func TestParser_ImportTemplate(t *testing.T) {
	csv := "code,period_date,amount\n4000,2026-01-01,48500.00\n5000,2026-01-01,22000\n"

	batch, err := ledger.NewParser().Parse(strings.NewReader(csv), "")
	require.NoError(t, err)
	require.Len(t, batch.Entries, 2)

	assert.Equal(t, budget.SourceImport, batch.Source)
	assert.Equal(t, "22000.00", batch.Entries[1].Amount.StringFixed(2))
}

func TestParser_FormatHintRestrictsProfiles(t *testing.T) {
	csv := "code,period_date,amount\n4000,2026-01-01,1.00\n"

	_, err := ledger.NewParser().Parse(strings.NewReader(csv), budget.SourceXero)

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParser_Windows1252(t *testing.T) {
	utf8CSV := "Account,Date,Amount\nCafé Supplies,01/02/2026,-10.00\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	batch, err := ledger.NewParser().Parse(bytes.NewReader(latin1Bytes), "")
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)

	assert.Equal(t, "Café Supplies", batch.Entries[0].Account)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random,MetaData
Amount,Account,Date,Ignored
-10.00,Lab Fees,01/30/2026,XXX
`

	batch, err := ledger.NewParser().Parse(strings.NewReader(csv), "")
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)

	assert.Equal(t, "Lab Fees", batch.Entries[0].Account)
	assert.Equal(t, "-10.00", batch.Entries[0].Amount.StringFixed(2))
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := ledger.NewParser().Parse(strings.NewReader(""), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching export format")
}

func TestParser_HeaderOnly(t *testing.T) {
	batch, err := ledger.NewParser().Parse(strings.NewReader("Account,Date,Amount"), "")

	require.NoError(t, err)
	assert.Empty(t, batch.Entries)
}

func TestParser_MissingAccount(t *testing.T) {
	csv := "Account,Date,Amount\n,01/02/2026,5.00\n"

	_, err := ledger.NewParser().Parse(strings.NewReader(csv), "")

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "row 2")
}

func TestParser_BadAmount(t *testing.T) {
	csv := "Account,Date,Amount\nRent,01/02/2026,abc\n"

	_, err := ledger.NewParser().Parse(strings.NewReader(csv), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
