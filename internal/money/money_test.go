package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dentalbudget/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		in      string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{in: "48500.00", want: "48500.00"},
		{in: "1,234.56", want: "1234.56"},
		{in: "-588.74", want: "-588.74"},
		{in: "$1,200", want: "1200.00"},
		{in: "(45.10)", want: "-45.10"},
		{in: " 10 ", want: "10.00"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, money.Format(got))
		})
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, money.Check("budget_amount", decimal.RequireFromString("50000.00")))
	assert.NoError(t, money.Check("budget_amount", decimal.RequireFromString("12.5")))
	assert.Error(t, money.Check("budget_amount", decimal.RequireFromString("0.001")))
}
