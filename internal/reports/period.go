package reports

import "time"

// ReportRange holds the two comparison windows for the dashboard cards.
type ReportRange struct {
	Start         time.Time
	End           time.Time
	PreviousStart time.Time
	PreviousEnd   time.Time
}

// NewReportRange anchors the current window at the request instant
// (start == end == now) and shifts the previous window back one calendar
// month. The zero-width current window matches what the dashboard has
// always shown; kept as-is pending product clarification. AddDate rolls
// month ends over the same way the old implementation did (Mar 31 back
// one month lands in early March).
func NewReportRange(now time.Time) ReportRange {
	return ReportRange{
		Start:         now,
		End:           now,
		PreviousStart: now.AddDate(0, -1, 0),
		PreviousEnd:   now.AddDate(0, -1, 0),
	}
}

// PercentageChange computes (current - previous) / previous. The division
// is deliberately unguarded: previous == 0 yields ±Inf or NaN, and the
// display side saturates those to "+999".
func PercentageChange(current, previous float64) Percentage {
	return Percentage((current - previous) / previous)
}
