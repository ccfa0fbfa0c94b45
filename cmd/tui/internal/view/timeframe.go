package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Timeframe represents a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeThisMonth   Timeframe = 0
	TimeframeLastMonth   Timeframe = 1
	TimeframeThisQuarter Timeframe = 2
	TimeframeYearToDate  Timeframe = 3
	TimeframeLastYear    Timeframe = 4
	TimeframeCustom      Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeThisQuarter:
		return "This Quarter"
	case TimeframeYearToDate:
		return "Year to Date"
	case TimeframeLastYear:
		return "Last Year"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// timeframeToDateRange resolves a predefined timeframe into whole months,
// end date inclusive.
func timeframeToDateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch tf {
	case TimeframeThisMonth:
		return month, month.AddDate(0, 1, -1)
	case TimeframeLastMonth:
		start := month.AddDate(0, -1, 0)
		return start, month.AddDate(0, 0, -1)
	case TimeframeThisQuarter:
		start := month.AddDate(0, -int(now.Month()-1)%3, 0)
		return start, start.AddDate(0, 3, -1)
	case TimeframeYearToDate:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, month.AddDate(0, 1, -1)
	case TimeframeLastYear:
		start := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, -1)
	}

	return time.Time{}, time.Time{}
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker is a reusable component for selecting a date range.
type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker() TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return TimeframePicker{
		state:      timeframeStateSelect,
		selected:   TimeframeThisMonth,
		now:        time.Now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(msg)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(msg); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		start, end := timeframeToDateRange(m.selected, m.now())

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Start: start, End: end}
		}
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		start, err := time.Parse(time.DateOnly, strings.TrimSpace(m.startInput.Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil, true
		}

		end, err := time.Parse(time.DateOnly, strings.TrimSpace(m.endInput.Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil, true
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil, true
		}

		m.err = nil

		return m, func() tea.Msg {
			return TimeframeSelectedMsg{Start: start, End: end}
		}, true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	var b strings.Builder
	b.WriteString("Select Timeframe:\n\n")

	for i := TimeframeThisMonth; i <= TimeframeCustom; i++ {
		cursor := " "
		label := i.String()

		if m.selected == i {
			cursor = ">"
			label = activeStyle(label)
		}

		fmt.Fprintf(&b, "%s %s\n", cursor, label)
	}

	b.WriteString("\n(Enter to select, Esc to back)")

	return b.String() + errStr
}

// IsSelecting returns true if the picker is in the selection state (not custom input).
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = TimeframeThisMonth
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
