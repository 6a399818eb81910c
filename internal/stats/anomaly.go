package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/eventatlas/eventatlas/internal/model"
)

// detectAnomalies runs the IQR and z-score methods over the priced records
// and reports them separately plus as a union. The z-score method is skipped
// when the standard deviation is zero.
func detectAnomalies(priced []model.SnapshotRecord, q model.QuartileAnalysis, desc model.PriceStatistics, opts Options) model.AnomalyReport {
	report := model.AnomalyReport{
		IQROutliers:    []model.OutlierRecord{},
		ZScoreOutliers: []model.OutlierRecord{},
		Combined:       []model.OutlierRecord{},
		AnomalyRateStr: "0.0%",
	}
	if len(priced) == 0 {
		return report
	}

	report.ZScoreSkipped = desc.Std == 0
	combined := make(map[int]model.OutlierRecord)

	for i, r := range priced {
		price := *r.Price
		z := 0.0
		if desc.Std > 0 {
			z = (price - desc.Mean) / desc.Std
		}
		out := model.OutlierRecord{UUID: r.UUID, Title: r.Title, Price: price, ZScore: z}

		if q.Defined && (price < q.LowerFence || price > q.UpperFence) {
			report.IQROutliers = append(report.IQROutliers, out)
			combined[i] = out
		}
		if !report.ZScoreSkipped && math.Abs(z) > opts.ZThreshold {
			report.ZScoreOutliers = append(report.ZScoreOutliers, out)
			combined[i] = out
		}
	}

	for _, out := range combined {
		report.Combined = append(report.Combined, out)
	}
	sort.Slice(report.Combined, func(i, j int) bool {
		return report.Combined[i].Price > report.Combined[j].Price
	})

	rate := float64(len(combined)) / float64(len(priced)) * 100
	report.AnomalyRate = math.Round(rate*10) / 10
	report.AnomalyRateStr = fmt.Sprintf("%.1f%%", report.AnomalyRate)
	return report
}
