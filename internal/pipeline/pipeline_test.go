package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventatlas/eventatlas/internal/dedupe"
	"github.com/eventatlas/eventatlas/internal/model"
)

// mockStore satisfies both pipeline.Store and dedupe.Lookup so a single
// instance can back a full run.
type mockStore struct {
	mu        sync.Mutex
	nodes     map[model.Fingerprint]model.EventNode
	upsertErr error
	upserts   int
	lookups   int
}

func newMockStore() *mockStore {
	return &mockStore{nodes: make(map[model.Fingerprint]model.EventNode)}
}

func (m *mockStore) Upsert(ctx context.Context, r model.NormalizedRecord, fp model.Fingerprint) (model.EventNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil {
		return model.EventNode{}, m.upsertErr
	}
	if node, ok := m.nodes[fp]; ok {
		return node, nil
	}
	node := model.EventNode{UUID: string(fp), Fingerprint: fp, Title: r.Title}
	m.nodes[fp] = node
	return node, nil
}

func (m *mockStore) FindByFingerprint(ctx context.Context, fp model.Fingerprint) (*model.EventNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if node, ok := m.nodes[fp]; ok {
		n := node
		return &n, nil
	}
	return nil, nil
}

func (m *mockStore) setUpsertErr(err error) {
	m.mu.Lock()
	m.upsertErr = err
	m.mu.Unlock()
}

func candidate(title string) model.CandidateRecord {
	return model.CandidateRecord{
		Title:     title,
		Venue:     "Zorlu PSM",
		DateText:  "2026-12-10",
		PriceText: "300 TL",
		Source:    "biletix",
	}
}

func fastConfig() Config {
	return Config{Workers: 1, StoreTimeout: time.Second, RetryAttempts: 1, RetryBackoff: 0}
}

func TestRunDeduplicatesWithinBatch(t *testing.T) {
	st := newMockStore()
	session := dedupe.NewSession(st)

	summary := Run(context.Background(), session, st,
		[]model.CandidateRecord{candidate("Hamlet"), candidate("Hamlet")}, fastConfig())

	assert.Equal(t, 2, summary.Received)
	assert.Equal(t, 1, summary.Saved)
	assert.Equal(t, 1, summary.DuplicatesInSession)
	assert.Equal(t, 1, st.upserts)
}

func TestRunSkipsRecordsAlreadyStored(t *testing.T) {
	st := newMockStore()

	// First run persists the record.
	first := Run(context.Background(), dedupe.NewSession(st), st,
		[]model.CandidateRecord{candidate("Hamlet")}, fastConfig())
	require.Equal(t, 1, first.Saved)

	// A later run with a fresh session sees the stored copy.
	second := Run(context.Background(), dedupe.NewSession(st), st,
		[]model.CandidateRecord{candidate("Hamlet")}, fastConfig())
	assert.Equal(t, 0, second.Saved)
	assert.Equal(t, 1, second.DuplicatesInStore)
	assert.Equal(t, 1, st.upserts)
}

func TestRunRejectsInvalidRecords(t *testing.T) {
	st := newMockStore()

	summary := Run(context.Background(), dedupe.NewSession(st), st,
		[]model.CandidateRecord{{Venue: "Zorlu PSM", Source: "biletix"}}, fastConfig())

	assert.Equal(t, 0, summary.Saved)
	assert.Equal(t, 1, summary.Rejected[model.MissingTitle])
	assert.Equal(t, 0, st.upserts, "rejected records never reach the store")
}

func TestRunStoreFailureThenRecovery(t *testing.T) {
	st := newMockStore()
	st.setUpsertErr(errors.New("bolt: connection refused"))
	session := dedupe.NewSession(st)

	cfg := fastConfig()
	cfg.RetryAttempts = 2

	summary := Run(context.Background(), session, st,
		[]model.CandidateRecord{candidate("Hamlet")}, cfg)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, st.upserts, "one retry before giving up")

	// The failed record's fingerprint was released, so once the store is
	// healthy the same session admits it again.
	st.setUpsertErr(nil)
	summary = Run(context.Background(), session, st,
		[]model.CandidateRecord{candidate("Hamlet")}, cfg)
	assert.Equal(t, 1, summary.Saved)
	assert.Equal(t, 0, summary.DuplicatesInSession)
}

func TestRunConcurrentIdenticalRecords(t *testing.T) {
	st := newMockStore()
	session := dedupe.NewSession(st)

	records := make([]model.CandidateRecord, 20)
	for i := range records {
		records[i] = candidate("Hamlet")
	}

	cfg := fastConfig()
	cfg.Workers = 8

	summary := Run(context.Background(), session, st, records, cfg)

	assert.Equal(t, 1, summary.Saved)
	assert.Equal(t, 19, summary.DuplicatesInSession)
	assert.Equal(t, 1, st.upserts)
}

func TestRunCancelledContextStopsFeeding(t *testing.T) {
	st := newMockStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := make([]model.CandidateRecord, 50)
	for i := range records {
		records[i] = candidate("Hamlet")
	}

	summary := Run(ctx, dedupe.NewSession(st), st, records, fastConfig())
	assert.Equal(t, 50, summary.Received)
	assert.LessOrEqual(t, summary.Saved, 1)
}

func TestRunMixedBatch(t *testing.T) {
	st := newMockStore()

	batch := []model.CandidateRecord{
		candidate("Hamlet"),
		candidate("Carmen"),
		candidate("Hamlet"),                     // session duplicate
		{Venue: "Zorlu PSM", Source: "biletix"}, // missing title
		{Title: "Orphan"},                       // missing source
	}

	summary := Run(context.Background(), dedupe.NewSession(st), st, batch, fastConfig())

	assert.Equal(t, 5, summary.Received)
	assert.Equal(t, 2, summary.Saved)
	assert.Equal(t, 1, summary.DuplicatesInSession)
	assert.Equal(t, 1, summary.Rejected[model.MissingTitle])
	assert.Equal(t, 1, summary.Rejected[model.MissingSource])
}
