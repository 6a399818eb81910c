// Package stats computes the descriptive, distributional and anomaly
// statistics behind the dashboard. Analyze is a pure function of its
// snapshot: empty or degenerate input (no events, no prices, zero variance)
// produces a report with explicit undefined markers instead of panicking or
// propagating NaN.
package stats

import (
	"math"
	"sort"

	"github.com/eventatlas/eventatlas/internal/model"
)

// Options carries the tunable thresholds. The defaults match the analysis
// the dashboard was calibrated against.
type Options struct {
	SkewThreshold float64 // |skewness| below this reads as symmetric
	ZThreshold    float64 // z-score outlier fence
	IQRMultiplier float64 // IQR outlier fence multiplier
	Alpha         float64 // significance level for the normality test
}

func DefaultOptions() Options {
	return Options{
		SkewThreshold: 0.5,
		ZThreshold:    3.0,
		IQRMultiplier: 1.5,
		Alpha:         0.05,
	}
}

// Analyze produces the full statistical report for a snapshot.
func Analyze(snap model.AnalysisSnapshot, opts Options) model.Report {
	priced := pricedRecords(snap.Records)
	prices := make([]float64, len(priced))
	free := 0
	for i, r := range priced {
		prices[i] = *r.Price
		if *r.Price == 0 {
			free++
		}
	}

	report := model.Report{
		TotalEvents:  len(snap.Records),
		PricedEvents: len(priced),
		FreeEvents:   free,
		Prices:       describe(prices),
		Quartiles:    quartiles(prices, opts.IQRMultiplier),
		Categories:   categoryRollups(snap.Records),
	}
	report.Distribution = analyzeDistribution(prices, opts)
	report.Anomalies = detectAnomalies(priced, report.Quartiles, report.Prices, opts)
	return report
}

func pricedRecords(records []model.SnapshotRecord) []model.SnapshotRecord {
	out := make([]model.SnapshotRecord, 0, len(records))
	for _, r := range records {
		if r.Price != nil {
			out = append(out, r)
		}
	}
	return out
}

func describe(prices []float64) model.PriceStatistics {
	n := len(prices)
	if n == 0 {
		return model.PriceStatistics{}
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	return model.PriceStatistics{
		Count:   n,
		Mean:    mean(prices),
		Median:  quantile(sorted, 0.5),
		Std:     sampleStd(prices),
		Min:     sorted[0],
		Max:     sorted[n-1],
		Defined: true,
	}
}

func quartiles(prices []float64, multiplier float64) model.QuartileAnalysis {
	if len(prices) == 0 {
		return model.QuartileAnalysis{}
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q2 := quantile(sorted, 0.5)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	return model.QuartileAnalysis{
		Q1:         q1,
		Q2Median:   q2,
		Q3:         q3,
		IQR:        iqr,
		LowerFence: q1 - multiplier*iqr,
		UpperFence: q3 + multiplier*iqr,
		Defined:    true,
	}
}

func categoryRollups(records []model.SnapshotRecord) []model.CategoryStatistics {
	byCategory := make(map[string][]model.SnapshotRecord)
	for _, r := range records {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	out := make([]model.CategoryStatistics, 0, len(byCategory))
	for category, recs := range byCategory {
		prices := make([]float64, 0, len(recs))
		for _, r := range recs {
			if r.Price != nil {
				prices = append(prices, *r.Price)
			}
		}
		out = append(out, model.CategoryStatistics{
			Category: category,
			Events:   len(recs),
			Prices:   describe(prices),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Events != out[j].Events {
			return out[i].Events > out[j].Events
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the n-1 standard deviation; zero for fewer than two values.
func sampleStd(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// quantile interpolates linearly at position q*(n-1) on a sorted vector.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
