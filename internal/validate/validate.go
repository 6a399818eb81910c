// Package validate rejects normalized records that are missing mandatory
// fields. Everything beyond title and source is optional: records with a nil
// date or price are accepted and downstream analysis tolerates them.
package validate

import (
	"github.com/rs/zerolog/log"

	"github.com/eventatlas/eventatlas/internal/metrics"
	"github.com/eventatlas/eventatlas/internal/model"
)

// Rejection reports why a record was dropped.
type Rejection struct {
	Reason model.RejectionReason
}

// Record validates a normalized record. A nil Rejection means the record is
// accepted. A drop emits a structured rejection event and bumps the
// rejection counter; there is no other side effect.
func Record(r model.NormalizedRecord) *Rejection {
	if r.Title == "" {
		return reject(r, model.MissingTitle)
	}
	if !r.Source.Valid() {
		return reject(r, model.MissingSource)
	}
	return nil
}

func reject(r model.NormalizedRecord, reason model.RejectionReason) *Rejection {
	log.Warn().
		Str("reason", string(reason)).
		Str("title", r.Title).
		Str("source", string(r.Source)).
		Msg("dropping record")
	metrics.RecordsRejected.WithLabelValues(string(reason)).Inc()
	return &Rejection{Reason: reason}
}
