package dedupe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventatlas/eventatlas/internal/model"
)

type mockLookup struct {
	mu       sync.Mutex
	existing map[model.Fingerprint]*model.EventNode
	err      error
	calls    int
}

func (m *mockLookup) FindByFingerprint(ctx context.Context, fp model.Fingerprint) (*model.EventNode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.existing[fp], nil
}

func record(title, venue string, date *time.Time) model.NormalizedRecord {
	return model.NormalizedRecord{
		Title:  title,
		Venue:  venue,
		Date:   date,
		Source: model.SourceBiletix,
	}
}

func TestFingerprintDayGranularity(t *testing.T) {
	morning := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.May, 1, 21, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)

	fp1 := FingerprintOf(record("Hamlet", "Zorlu PSM", &morning))
	fp2 := FingerprintOf(record("  HAMLET ", "zorlu psm", &evening))
	fp3 := FingerprintOf(record("Hamlet", "Zorlu PSM", &nextDay))

	assert.Equal(t, fp1, fp2, "case, whitespace and time of day must not matter")
	assert.NotEqual(t, fp1, fp3, "distinct days are distinct occurrences")
}

func TestFingerprintNilDate(t *testing.T) {
	// Unknown dates collapse into one occurrence per title+venue.
	fp1 := FingerprintOf(record("Hamlet", "Zorlu PSM", nil))
	fp2 := FingerprintOf(record("Hamlet", "Zorlu PSM", nil))
	assert.Equal(t, fp1, fp2)
}

func TestAdmitNewThenSessionDuplicate(t *testing.T) {
	session := NewSession(&mockLookup{})
	ctx := context.Background()
	r := record("Hamlet", "Zorlu PSM", nil)

	decision, _, err := session.Admit(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionNew, decision)

	decision, _, err = session.Admit(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionDuplicateInSession, decision)
}

func TestAdmitStoreDuplicate(t *testing.T) {
	r := record("Hamlet", "Zorlu PSM", nil)
	fp := FingerprintOf(r)

	lookup := &mockLookup{existing: map[model.Fingerprint]*model.EventNode{
		fp: {UUID: "existing-1", Fingerprint: fp},
	}}
	session := NewSession(lookup)

	decision, gotFP, err := session.Admit(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionDuplicateInStore, decision)
	assert.Equal(t, fp, gotFP)
}

func TestAdmitStoreErrorLeavesSessionClean(t *testing.T) {
	lookup := &mockLookup{err: errors.New("bolt: connection refused")}
	session := NewSession(lookup)
	r := record("Hamlet", "Zorlu PSM", nil)

	_, _, err := session.Admit(context.Background(), r)
	require.Error(t, err)

	// After the store recovers the same record is admitted as new.
	lookup.mu.Lock()
	lookup.err = nil
	lookup.mu.Unlock()

	decision, _, err := session.Admit(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionNew, decision)
}

func TestForgetAllowsReadmission(t *testing.T) {
	session := NewSession(&mockLookup{})
	r := record("Hamlet", "Zorlu PSM", nil)

	decision, fp, err := session.Admit(context.Background(), r)
	require.NoError(t, err)
	require.Equal(t, model.DecisionNew, decision)

	session.Forget(fp)

	decision, _, err = session.Admit(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionNew, decision)
}

func TestAdmitConcurrentSameFingerprint(t *testing.T) {
	session := NewSession(&mockLookup{})
	r := record("Hamlet", "Zorlu PSM", nil)

	const goroutines = 16
	decisions := make([]model.Decision, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, _, err := session.Admit(context.Background(), r)
			require.NoError(t, err)
			decisions[i] = d
		}(i)
	}
	wg.Wait()

	newCount := 0
	for _, d := range decisions {
		if d == model.DecisionNew {
			newCount++
		}
	}
	assert.Equal(t, 1, newCount, "exactly one concurrent admit may be new")
}
