package model

import "time"

// SnapshotRecord is the analysis-facing projection of a persisted event.
type SnapshotRecord struct {
	UUID     string
	Title    string
	Venue    string
	Category string
	Price    *float64
	Date     *time.Time
}

// AnalysisSnapshot is an immutable point-in-time read of all persisted
// events. It is produced by a single store query, consumed by the statistics
// and segmentation engines, and never persisted.
type AnalysisSnapshot struct {
	TakenAt time.Time
	Records []SnapshotRecord
}

// Prices returns the non-nil prices in the snapshot.
func (s AnalysisSnapshot) Prices() []float64 {
	out := make([]float64, 0, len(s.Records))
	for _, r := range s.Records {
		if r.Price != nil {
			out = append(out, *r.Price)
		}
	}
	return out
}
