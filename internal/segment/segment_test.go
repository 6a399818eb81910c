package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventatlas/eventatlas/internal/model"
)

func rec(day time.Time, price float64) model.SnapshotRecord {
	return model.SnapshotRecord{Date: &day, Price: &price}
}

func TestTimeSeriesGroupsByISOWeek(t *testing.T) {
	// Mon 2026-01-05 and Wed 2026-01-07 share ISO week 2; 2026-01-12 is week 3.
	snap := model.AnalysisSnapshot{Records: []model.SnapshotRecord{
		rec(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), 100),
		rec(time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC), 300),
		rec(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), 500),
		{Title: "undated"}, // excluded
	}}

	series := Build(snap).TimeSeries
	require.Len(t, series, 2)

	assert.Equal(t, "2026-W02", series[0].Week)
	assert.Equal(t, 2, series[0].Events)
	assert.InDelta(t, 200, series[0].AvgPrice, 1e-9)

	assert.Equal(t, "2026-W03", series[1].Week)
	assert.Equal(t, 1, series[1].Events)
}

func TestPriceSegments(t *testing.T) {
	day := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	snap := model.AnalysisSnapshot{Records: []model.SnapshotRecord{
		rec(day, 0), rec(day, 300),   // Budget (boundary inclusive)
		rec(day, 301), rec(day, 800), // Mid-Range
		rec(day, 1500),               // Premium
		rec(day, 5000),               // Luxury
	}}

	segments := Build(snap).PriceSegments
	require.Len(t, segments, 4)

	assert.Equal(t, "Budget", segments[0].Name)
	assert.Equal(t, 2, segments[0].Count)
	assert.InDelta(t, 150, segments[0].AvgPrice, 1e-9)

	assert.Equal(t, "Mid-Range", segments[1].Name)
	assert.Equal(t, 2, segments[1].Count)

	assert.Equal(t, "Premium", segments[2].Name)
	assert.Equal(t, 1, segments[2].Count)
	assert.InDelta(t, 1500, segments[2].AvgPrice, 1e-9)

	assert.Equal(t, "Luxury", segments[3].Name)
	assert.Equal(t, 1, segments[3].Count)
}

func TestDayOfWeekOrderedMondayFirst(t *testing.T) {
	snap := model.AnalysisSnapshot{Records: []model.SnapshotRecord{
		rec(time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC), 100), // Sunday
		rec(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), 200), // Monday
		rec(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), 400), // Monday
	}}

	days := Build(snap).DayOfWeek
	require.Len(t, days, 7)

	assert.Equal(t, "Monday", days[0].Day)
	assert.Equal(t, 2, days[0].Events)
	assert.InDelta(t, 300, days[0].AvgPrice, 1e-9)

	assert.Equal(t, "Sunday", days[6].Day)
	assert.Equal(t, 1, days[6].Events)

	// Quiet weekdays still appear, with zero counts.
	assert.Equal(t, "Tuesday", days[1].Day)
	assert.Equal(t, 0, days[1].Events)
}

func TestBuildEmptySnapshot(t *testing.T) {
	out := Build(model.AnalysisSnapshot{})
	assert.Empty(t, out.TimeSeries)
	assert.Len(t, out.PriceSegments, 4)
	assert.Len(t, out.DayOfWeek, 7)
}
