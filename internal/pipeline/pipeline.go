// Package pipeline drives one ingestion run: raw candidates are normalized
// and validated in parallel, admitted through a shared deduplication
// session, and persisted as new event nodes.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eventatlas/eventatlas/internal/dedupe"
	"github.com/eventatlas/eventatlas/internal/metrics"
	"github.com/eventatlas/eventatlas/internal/model"
	"github.com/eventatlas/eventatlas/internal/normalize"
	"github.com/eventatlas/eventatlas/internal/store"
	"github.com/eventatlas/eventatlas/internal/validate"
)

// Store is the slice of the graph store the pipeline writes through.
type Store interface {
	Upsert(ctx context.Context, r model.NormalizedRecord, fp model.Fingerprint) (model.EventNode, error)
}

// Config bounds the run's concurrency and store retry behavior.
type Config struct {
	Workers       int
	StoreTimeout  time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:       4,
		StoreTimeout:  5 * time.Second,
		RetryAttempts: 3,
		RetryBackoff:  250 * time.Millisecond,
	}
}

// Summary is the outcome of one ingestion run.
type Summary struct {
	Received            int                             `json:"received"`
	Saved               int                             `json:"saved"`
	Rejected            map[model.RejectionReason]int   `json:"rejected"`
	DuplicatesInSession int                             `json:"duplicates_in_session"`
	DuplicatesInStore   int                             `json:"duplicates_in_store"`
	Failed              int                             `json:"failed"`
}

// Run processes a batch of candidates through normalize, validate, dedupe
// and persist. Normalization and validation are stateless and fan out to
// cfg.Workers goroutines; admission is serialized by the session. A store
// failure removes the record's fingerprint from the session so a retry can
// re-admit it, and is retried with backoff before counting as failed.
// Cancelling ctx stops feeding new records; in-flight upserts complete.
func Run(ctx context.Context, session *dedupe.Session, st Store, records []model.CandidateRecord, cfg Config) Summary {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}

	summary := Summary{
		Received: len(records),
		Rejected: make(map[model.RejectionReason]int),
	}
	var mu sync.Mutex

	jobs := make(chan model.CandidateRecord)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range jobs {
				ingestOne(ctx, session, st, candidate, cfg, &summary, &mu)
			}
		}()
	}

feed:
	for _, candidate := range records {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- candidate:
		}
	}
	close(jobs)
	wg.Wait()

	log.Info().
		Int("received", summary.Received).
		Int("saved", summary.Saved).
		Int("duplicates_session", summary.DuplicatesInSession).
		Int("duplicates_store", summary.DuplicatesInStore).
		Int("failed", summary.Failed).
		Msg("ingestion run finished")
	return summary
}

func ingestOne(ctx context.Context, session *dedupe.Session, st Store, candidate model.CandidateRecord, cfg Config, summary *Summary, mu *sync.Mutex) {
	record := normalize.Record(candidate)

	if rejection := validate.Record(record); rejection != nil {
		mu.Lock()
		summary.Rejected[rejection.Reason]++
		mu.Unlock()
		return
	}

	var lastErr error
	for attempt := 0; attempt < cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(cfg.RetryBackoff * time.Duration(attempt))
		}

		// In-flight store calls outlive cancellation: upserts are idempotent
		// and finishing them is cheaper than reconciling a partial write.
		opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.StoreTimeout)
		decision, fp, err := session.Admit(opCtx, record)
		if err != nil {
			cancel()
			lastErr = err
			continue
		}

		switch decision {
		case model.DecisionDuplicateInSession:
			cancel()
			mu.Lock()
			summary.DuplicatesInSession++
			mu.Unlock()
			return
		case model.DecisionDuplicateInStore:
			cancel()
			mu.Lock()
			summary.DuplicatesInStore++
			mu.Unlock()
			return
		}

		_, err = st.Upsert(opCtx, record, fp)
		cancel()
		if err != nil {
			// The fingerprint must not stay admitted, or the retry (and any
			// later run sharing this session) would drop the record as a
			// session duplicate.
			session.Forget(fp)
			lastErr = err
			continue
		}

		metrics.RecordsIngested.Inc()
		mu.Lock()
		summary.Saved++
		mu.Unlock()
		return
	}

	metrics.StoreFailures.Inc()
	mu.Lock()
	summary.Failed++
	mu.Unlock()
	log.Error().Err(lastErr).Str("title", record.Title).
		Bool("store_unavailable", errors.Is(lastErr, store.ErrStoreUnavailable)).
		Msg("record not persisted after retries")
}
