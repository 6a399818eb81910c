// Package segment derives the time-bucketed and price-bucketed aggregates
// feeding the dashboard. Build is a pure function of its snapshot.
package segment

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/eventatlas/eventatlas/internal/model"
)

// Fixed price bucket boundaries, in TL. Calibrated on the Istanbul market.
var priceBuckets = []struct {
	name string
	rng  string
	lo   float64 // exclusive, except the first bucket
	hi   float64 // inclusive
}{
	{"Budget", "0-300 TL", -1, 300},
	{"Mid-Range", "301-800 TL", 300, 800},
	{"Premium", "801-2000 TL", 800, 2000},
	{"Luxury", "2000+ TL", 2000, math.Inf(1)},
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Build computes the ISO-week time series, the fixed price segments and the
// Monday-to-Sunday breakdown for a snapshot.
func Build(snap model.AnalysisSnapshot) model.Segmentation {
	return model.Segmentation{
		TimeSeries:    timeSeries(snap.Records),
		PriceSegments: segments(snap.Prices()),
		DayOfWeek:     dayOfWeek(snap.Records),
	}
}

// timeSeries groups dated events by ISO week, in chronological order.
// Events without a date are excluded.
func timeSeries(records []model.SnapshotRecord) []model.WeekBucket {
	type acc struct {
		events   int
		priceSum float64
		priced   int
	}
	weeks := make(map[string]*acc)

	for _, r := range records {
		if r.Date == nil {
			continue
		}
		year, week := r.Date.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		a := weeks[key]
		if a == nil {
			a = &acc{}
			weeks[key] = a
		}
		a.events++
		if r.Price != nil {
			a.priceSum += *r.Price
			a.priced++
		}
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.WeekBucket, 0, len(keys))
	for _, k := range keys {
		a := weeks[k]
		bucket := model.WeekBucket{Week: k, Events: a.events}
		if a.priced > 0 {
			bucket.AvgPrice = a.priceSum / float64(a.priced)
		}
		out = append(out, bucket)
	}
	return out
}

func segments(prices []float64) []model.PriceSegment {
	out := make([]model.PriceSegment, 0, len(priceBuckets))
	for _, b := range priceBuckets {
		count := 0
		sum := 0.0
		for _, p := range prices {
			if p > b.lo && p <= b.hi {
				count++
				sum += p
			}
		}
		seg := model.PriceSegment{Name: b.name, Range: b.rng, Count: count}
		if count > 0 {
			seg.AvgPrice = sum / float64(count)
		}
		out = append(out, seg)
	}
	return out
}

// dayOfWeek reports count and average price per weekday, Monday first.
func dayOfWeek(records []model.SnapshotRecord) []model.WeekdayBucket {
	type acc struct {
		events   int
		priceSum float64
		priced   int
	}
	days := make(map[time.Weekday]*acc)

	for _, r := range records {
		if r.Date == nil {
			continue
		}
		a := days[r.Date.Weekday()]
		if a == nil {
			a = &acc{}
			days[r.Date.Weekday()] = a
		}
		a.events++
		if r.Price != nil {
			a.priceSum += *r.Price
			a.priced++
		}
	}

	out := make([]model.WeekdayBucket, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		bucket := model.WeekdayBucket{Day: day.String()}
		if a := days[day]; a != nil {
			bucket.Events = a.events
			if a.priced > 0 {
				bucket.AvgPrice = a.priceSum / float64(a.priced)
			}
		}
		out = append(out, bucket)
	}
	return out
}
