package reports

// Calendar order for the yearly chart, matching Postgres to_char 'Mon'
// output (trailing spaces trimmed).
var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthlySale is one bar of the yearly chart. Total is in major units.
type MonthlySale struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type monthTotal struct {
	Month string `gorm:"column:month"`
	Total int64  `gorm:"column:total"`
}

// fillYearlySeries merges the aggregate rows against the fixed month list
// so the chart always has exactly twelve bars in calendar order; months
// with no sales report zero. Stored minor units are converted to major
// units here, at the presentation boundary.
func fillYearlySeries(rows []monthTotal) []MonthlySale {
	totals := make(map[string]int64, len(rows))
	for _, r := range rows {
		totals[r.Month] = r.Total
	}

	series := make([]MonthlySale, 0, len(monthAbbrevs))
	for _, month := range monthAbbrevs {
		series = append(series, MonthlySale{
			Name:  month,
			Total: float64(totals[month]) / 100,
		})
	}
	return series
}
