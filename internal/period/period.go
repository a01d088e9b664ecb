// Package period resolves loose month/year or named-range request
// parameters into validated, inclusive date intervals, and computes the
// immediately-preceding comparable window used for delta comparisons.
package period

import (
	"fmt"
	"strconv"
	"time"

	apperrors "wealthwise/internal/errors"
)

// Window is an inclusive calendar-date interval. Start and End are
// normalized to midnight UTC.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Days returns the number of calendar days in the window, inclusive.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Previous returns the immediately-preceding window of identical length:
// its end is the day before Start, its start that end minus (days-1).
func (w Window) Previous() Window {
	end := w.Start.AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(w.Days() - 1))
	return Window{Start: start, End: end}
}

// Date normalizes a time to a midnight-UTC calendar date.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given calendar month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Month is a resolved month/year selection with its window, the previous
// calendar month for comparison, and whether it is the currently-open month.
type Month struct {
	Month     int
	Year      int
	PrevMonth int
	PrevYear  int
	Window    Window
	IsCurrent bool
}

// Valid year bounds for month/year selection. Values outside fall back to
// the current year rather than erroring.
const (
	MinYear = 2020
	MaxYear = 2030
)

// ResolveMonth turns raw month/year query parameters into a validated Month.
// Missing, malformed, or out-of-range values silently fall back to today's
// month and year; this path never errors.
func ResolveMonth(monthStr, yearStr string, today time.Time) Month {
	today = Date(today)

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		month = int(today.Month())
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < MinYear || year > MaxYear {
		year = today.Year()
	}

	prevMonth, prevYear := month-1, year
	if month == 1 {
		prevMonth, prevYear = 12, year-1
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month), DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)

	return Month{
		Month:     month,
		Year:      year,
		PrevMonth: prevMonth,
		PrevYear:  prevYear,
		Window: Window{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("%s %d", time.Month(month).String(), year),
		},
		IsCurrent: month == int(today.Month()) && year == today.Year(),
	}
}

// MonthWindow returns the calendar window of one exact month.
func MonthWindow(month, year int) Window {
	return Window{
		Start: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.Month(month), DaysInMonth(year, month), 0, 0, 0, 0, time.UTC),
		Label: fmt.Sprintf("%s %d", time.Month(month).String(), year),
	}
}

// PrevWindow returns the window of the previous calendar month.
func (m Month) PrevWindow() Window {
	start := time.Date(m.PrevYear, time.Month(m.PrevMonth), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(m.PrevYear, time.Month(m.PrevMonth), DaysInMonth(m.PrevYear, m.PrevMonth), 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: end}
}

// Name returns the month's English name.
func (m Month) Name() string {
	return time.Month(m.Month).String()
}

// RangeType names a supported date-range selection.
type RangeType string

const (
	RangeLast7Days   RangeType = "last_7_days"
	RangeLast30Days  RangeType = "last_30_days"
	RangeLast3Months RangeType = "last_3_months"
	RangeLast6Months RangeType = "last_6_months"
	RangeLast1Year   RangeType = "last_1_year"
	RangeCustom      RangeType = "custom"
)

// ResolveRange turns a named range (or custom start/end dates) into a
// validated window ending at today. Unknown range types fall back to the
// last 30 days. Custom ranges are the only validated input: malformed or
// missing dates return ErrInvalidDateRange and inverted ranges return
// ErrRangeInverted.
func ResolveRange(rangeType RangeType, startStr, endStr string, today time.Time) (Window, error) {
	today = Date(today)

	var w Window
	switch rangeType {
	case RangeLast7Days:
		w = Window{Start: today.AddDate(0, 0, -6), End: today, Label: "Last 7 Days"}
	case RangeLast30Days:
		w = Window{Start: today.AddDate(0, 0, -29), End: today, Label: "Last 30 Days"}
	case RangeLast3Months:
		w = Window{Start: today.AddDate(0, -3, 1), End: today, Label: "Last 3 Months"}
	case RangeLast6Months:
		w = Window{Start: today.AddDate(0, -6, 1), End: today, Label: "Last 6 Months"}
	case RangeLast1Year:
		w = Window{Start: today.AddDate(-1, 0, 1), End: today, Label: "Last 1 Year"}
	case RangeCustom:
		start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
		if err != nil {
			return Window{}, apperrors.ErrInvalidDateRange
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
		if err != nil {
			return Window{}, apperrors.ErrInvalidDateRange
		}
		w = Window{
			Start: Date(start),
			End:   Date(end),
			Label: fmt.Sprintf("%s - %s", start.Format("Jan 02, 2006"), end.Format("Jan 02, 2006")),
		}
	default:
		w = Window{Start: today.AddDate(0, 0, -29), End: today, Label: "Last 30 Days"}
	}

	if w.Start.After(w.End) {
		return Window{}, apperrors.ErrRangeInverted
	}
	return w, nil
}
