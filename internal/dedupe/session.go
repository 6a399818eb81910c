// Package dedupe decides whether an incoming record is new or a duplicate of
// something already seen, either within the current ingestion run or in the
// persistent store.
package dedupe

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eventatlas/eventatlas/internal/metrics"
	"github.com/eventatlas/eventatlas/internal/model"
)

// Lookup is the slice of the graph store the deduplicator needs.
type Lookup interface {
	FindByFingerprint(ctx context.Context, fp model.Fingerprint) (*model.EventNode, error)
}

// Session is the deduplication context for one ingestion run. It owns the
// seen-set for that run and is discarded when the run ends. All methods are
// safe for concurrent use; admission decisions for records with equal
// fingerprints are serialized so exactly one is marked new.
type Session struct {
	store Lookup

	mu   sync.Mutex
	seen map[model.Fingerprint]struct{}
}

// NewSession starts a deduplication context backed by the given store.
func NewSession(store Lookup) *Session {
	return &Session{
		store: store,
		seen:  make(map[model.Fingerprint]struct{}),
	}
}

// Admit computes the record's fingerprint and decides its fate. The session
// seen-set is checked first; on a miss the store is consulted. Only a full
// miss marks the fingerprint seen and returns DecisionNew — the caller is
// then responsible for persisting the record. Store errors leave the
// seen-set untouched so the record can be retried.
func (s *Session) Admit(ctx context.Context, r model.NormalizedRecord) (model.Decision, model.Fingerprint, error) {
	fp := FingerprintOf(r)

	s.mu.Lock()
	if _, ok := s.seen[fp]; ok {
		s.mu.Unlock()
		log.Debug().Str("title", r.Title).Msg("duplicate in session")
		metrics.RecordsDuplicate.WithLabelValues("session").Inc()
		return model.DecisionDuplicateInSession, fp, nil
	}
	// Reserve the fingerprint before the store round-trip so a concurrent
	// admit of the same record cannot also be marked new.
	s.seen[fp] = struct{}{}
	s.mu.Unlock()

	existing, err := s.store.FindByFingerprint(ctx, fp)
	if err != nil {
		s.Forget(fp)
		return 0, fp, fmt.Errorf("dedup store lookup: %w", err)
	}
	if existing != nil {
		log.Debug().Str("title", r.Title).Str("uuid", existing.UUID).Msg("duplicate in store")
		metrics.RecordsDuplicate.WithLabelValues("store").Inc()
		return model.DecisionDuplicateInStore, fp, nil
	}

	return model.DecisionNew, fp, nil
}

// Forget removes a fingerprint from the session seen-set. The pipeline calls
// it when a New record's upsert fails, so a retry can re-admit the record.
func (s *Session) Forget(fp model.Fingerprint) {
	s.mu.Lock()
	delete(s.seen, fp)
	s.mu.Unlock()
}
