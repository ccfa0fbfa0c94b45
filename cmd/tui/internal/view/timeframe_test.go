package view

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeframeToDateRange(t *testing.T) {
	now := time.Date(2026, time.May, 17, 15, 4, 5, 0, time.UTC)

	type testCase struct {
		name      string
		tf        Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}

	tests := []testCase{
		{name: "ThisMonth", tf: TimeframeThisMonth, wantStart: date(2026, time.May, 1), wantEnd: date(2026, time.May, 31)},
		{name: "LastMonth", tf: TimeframeLastMonth, wantStart: date(2026, time.April, 1), wantEnd: date(2026, time.April, 30)},
		{name: "ThisQuarter", tf: TimeframeThisQuarter, wantStart: date(2026, time.April, 1), wantEnd: date(2026, time.June, 30)},
		{name: "YearToDate", tf: TimeframeYearToDate, wantStart: date(2026, time.January, 1), wantEnd: date(2026, time.May, 31)},
		{name: "LastYear", tf: TimeframeLastYear, wantStart: date(2025, time.January, 1), wantEnd: date(2025, time.December, 31)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := timeframeToDateRange(tc.tf, now)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}

	t.Run("LastMonthInJanuary", func(t *testing.T) {
		start, end := timeframeToDateRange(TimeframeLastMonth, date(2026, time.January, 10))
		assert.Equal(t, date(2025, time.December, 1), start)
		assert.Equal(t, date(2025, time.December, 31), end)
	})
}

func TestTimeframePicker(t *testing.T) {
	picker := NewTimeframePicker()
	picker.now = func() time.Time { return date(2026, time.March, 9) }

	picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyDown})
	picker, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.February, 1), msg.Start)
	assert.Equal(t, date(2026, time.February, 28), msg.End)
	assert.True(t, picker.IsSelecting())
}

func TestTimeframePickerCustomRejectsInvertedRange(t *testing.T) {
	picker := NewTimeframePicker()
	for range int(TimeframeCustom) {
		picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, picker.IsSelecting())

	picker.startInput.SetValue("2026-06-01")
	picker.endInput.SetValue("2026-01-01")

	picker, cmd := picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, picker.err)
	assert.Contains(t, picker.err.Error(), "before start")

	picker, _ = picker.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, picker.IsSelecting())
}
