package period

import (
	"fmt"
	"time"
)

// Granularity is the bucket size chosen for trend aggregation over a window.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// GranularityFor selects the bucket size by window length: monthly above
// 180 days, weekly above 30 days, daily otherwise.
func GranularityFor(w Window) Granularity {
	switch days := w.Days(); {
	case days > 180:
		return GranularityMonthly
	case days > 30:
		return GranularityWeekly
	default:
		return GranularityDaily
	}
}

// Bucket is a sub-interval of a window with display labels. Label is the
// short chart axis label; Period identifies the bucket unambiguously.
type Bucket struct {
	Start  time.Time
	End    time.Time
	Label  string
	Period string
}

// Buckets splits the window into sub-intervals at the granularity chosen by
// GranularityFor. Monthly buckets are calendar months clipped to the window;
// weekly buckets are 7-day spans starting at the window start (the last may
// be shorter); daily buckets are single days. Both the trend and cumulative
// computations walk the same boundaries.
func Buckets(w Window) []Bucket {
	switch GranularityFor(w) {
	case GranularityMonthly:
		return monthlyBuckets(w)
	case GranularityWeekly:
		return weeklyBuckets(w)
	default:
		return dailyBuckets(w)
	}
}

func monthlyBuckets(w Window) []Bucket {
	var buckets []Bucket
	current := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	endMonth := time.Date(w.End.Year(), w.End.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !current.After(endMonth) {
		start := current
		end := current.AddDate(0, 1, -1)
		if start.Before(w.Start) {
			start = w.Start
		}
		if end.After(w.End) {
			end = w.End
		}
		buckets = append(buckets, Bucket{
			Start:  start,
			End:    end,
			Label:  current.Format("Jan 2006"),
			Period: current.Format("2006-01"),
		})
		current = current.AddDate(0, 1, 0)
	}
	return buckets
}

func weeklyBuckets(w Window) []Bucket {
	var buckets []Bucket
	current := w.Start
	week := 1

	for !current.After(w.End) {
		end := current.AddDate(0, 0, 6)
		if end.After(w.End) {
			end = w.End
		}
		buckets = append(buckets, Bucket{
			Start:  current,
			End:    end,
			Label:  fmt.Sprintf("Week %d", week),
			Period: fmt.Sprintf("%s - %s", current.Format("Jan 02"), end.Format("Jan 02")),
		})
		current = end.AddDate(0, 0, 1)
		week++
	}
	return buckets
}

func dailyBuckets(w Window) []Bucket {
	var buckets []Bucket
	for current := w.Start; !current.After(w.End); current = current.AddDate(0, 0, 1) {
		buckets = append(buckets, Bucket{
			Start:  current,
			End:    current,
			Label:  current.Format("Jan 02"),
			Period: current.Format("2006-01-02"),
		})
	}
	return buckets
}

// MonthlyTrail returns exactly n monthly windows ending at the given
// calendar month, oldest first. The dashboard's fixed 6-point trend uses
// this regardless of any window-length rule.
func MonthlyTrail(year, month, n int) []Bucket {
	buckets := make([]Bucket, 0, n)
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)

	for i := 0; i < n; i++ {
		start := first.AddDate(0, i, 0)
		buckets = append(buckets, Bucket{
			Start:  start,
			End:    start.AddDate(0, 1, -1),
			Label:  start.Format("Jan"),
			Period: start.Format("2006-01"),
		})
	}
	return buckets
}
