package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillYearlySeries_NoSales(t *testing.T) {
	series := fillYearlySeries(nil)

	require.Len(t, series, 12)
	for i, m := range series {
		assert.Equal(t, monthAbbrevs[i], m.Name)
		assert.Zero(t, m.Total)
	}
}

func TestFillYearlySeries_CalendarOrder(t *testing.T) {
	rows := []monthTotal{
		{Month: "Dec", Total: 120000},
		{Month: "Jan", Total: 50000},
		{Month: "Jun", Total: 7550},
	}

	series := fillYearlySeries(rows)
	require.Len(t, series, 12)

	// calendar order regardless of query-result order, minor units
	// converted to major units
	assert.Equal(t, MonthlySale{Name: "Jan", Total: 500}, series[0])
	assert.Equal(t, MonthlySale{Name: "Jun", Total: 75.5}, series[5])
	assert.Equal(t, MonthlySale{Name: "Dec", Total: 1200}, series[11])

	assert.Zero(t, series[1].Total, "Feb has no sales")
	assert.Zero(t, series[8].Total, "Sep has no sales")
}

func TestFillYearlySeries_UnknownMonthIgnored(t *testing.T) {
	// a row that matches no abbreviation cannot produce a 13th entry
	series := fillYearlySeries([]monthTotal{{Month: "Sept", Total: 100}})
	require.Len(t, series, 12)
	assert.Zero(t, series[8].Total)
}
