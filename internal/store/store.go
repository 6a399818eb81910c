// Package store persists validated, unique event records as nodes in the
// graph and exposes the query primitives the rest of the pipeline needs.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/eventatlas/eventatlas/internal/driver"
	"github.com/eventatlas/eventatlas/internal/model"
)

// ErrStoreUnavailable wraps every failure to reach the underlying graph.
// Callers retry with backoff; the record is never silently dropped.
var ErrStoreUnavailable = errors.New("graph store unavailable")

// GraphStore owns the Event nodes. Events are created through Upsert, read
// through FindByFingerprint and Snapshot, and removed only by Wipe.
type GraphStore struct {
	Driver driver.GraphDriver

	// Injectable for deterministic tests.
	UUIDGenerator func() string
	Clock         func() time.Time
}

func New(d driver.GraphDriver) *GraphStore {
	return &GraphStore{
		Driver:        d,
		UUIDGenerator: func() string { return uuid.New().String() },
		Clock:         time.Now,
	}
}

// Upsert persists a record under its fingerprint. It is a conditional
// create: if a node with the fingerprint already exists the call is a no-op
// that returns the existing node's identity, so calling it twice never
// produces two nodes. The uuid and timestamps are assigned at creation and
// never altered afterwards.
func (s *GraphStore) Upsert(ctx context.Context, r model.NormalizedRecord, fp model.Fingerprint) (model.EventNode, error) {
	now := s.Clock().UTC()
	node := model.EventNode{
		UUID:        s.UUIDGenerator(),
		Title:       r.Title,
		Venue:       r.Venue,
		City:        r.City,
		Date:        r.Date,
		Price:       r.Price,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Source:      r.Source,
		Fingerprint: fp,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	params := map[string]interface{}{
		"fingerprint": string(fp),
		"uuid":        node.UUID,
		"title":       node.Title,
		"venue":       node.Venue,
		"city":        node.City,
		"date":        dateParam(node.Date),
		"price":       priceParam(node.Price),
		"category":    node.Category,
		"description": node.Description,
		"image_url":   node.ImageURL,
		"source":      string(node.Source),
		"created_at":  now.Format(time.RFC3339),
		"updated_at":  now.Format(time.RFC3339),
	}

	result, err := s.Driver.ExecuteQuery(ctx, driver.CreateEventQuery, params)
	if err != nil {
		return model.EventNode{}, fmt.Errorf("%w: upsert event: %s", ErrStoreUnavailable, err)
	}

	// MERGE returns the surviving node; if the fingerprint already existed
	// the stored identity wins over the one generated above.
	if len(result.Records) > 0 {
		rec := result.Records[0]
		if v, ok := rec.Get("uuid"); ok {
			if id, ok := v.(string); ok && id != "" {
				node.UUID = id
			}
		}
		if v, ok := rec.Get("created_at"); ok {
			if ts, ok := v.(string); ok {
				if t, err := time.Parse(time.RFC3339, ts); err == nil {
					node.CreatedAt = t
					node.UpdatedAt = t
				}
			}
		}
	}

	return node, nil
}

// FindByFingerprint returns the persisted event with the given fingerprint,
// or nil when none exists.
func (s *GraphStore) FindByFingerprint(ctx context.Context, fp model.Fingerprint) (*model.EventNode, error) {
	result, err := s.Driver.ExecuteQuery(ctx, driver.FindEventByFingerprintQuery, map[string]interface{}{
		"fingerprint": string(fp),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: find by fingerprint: %s", ErrStoreUnavailable, err)
	}
	if len(result.Records) == 0 {
		return nil, nil
	}

	rec := result.Records[0]
	node := model.EventNode{
		UUID:        getString(rec, "uuid"),
		Title:       getString(rec, "title"),
		Venue:       getString(rec, "venue"),
		City:        getString(rec, "city"),
		Date:        getDate(rec, "date"),
		Price:       getPrice(rec, "price"),
		Category:    getString(rec, "category"),
		Description: getString(rec, "description"),
		ImageURL:    getString(rec, "image_url"),
		Source:      model.Source(getString(rec, "source")),
		Fingerprint: fp,
	}
	if t, err := time.Parse(time.RFC3339, getString(rec, "created_at")); err == nil {
		node.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, getString(rec, "updated_at")); err == nil {
		node.UpdatedAt = t
	}
	return &node, nil
}

// Snapshot reads all persisted prices, categories and dates in a single
// eager query, giving the analysis engines one consistent point-in-time
// view. The read does not block ingestion.
func (s *GraphStore) Snapshot(ctx context.Context) (model.AnalysisSnapshot, error) {
	result, err := s.Driver.ExecuteQuery(ctx, driver.SnapshotQuery, nil)
	if err != nil {
		return model.AnalysisSnapshot{}, fmt.Errorf("%w: snapshot: %s", ErrStoreUnavailable, err)
	}

	snap := model.AnalysisSnapshot{
		TakenAt: s.Clock().UTC(),
		Records: make([]model.SnapshotRecord, 0, len(result.Records)),
	}
	for _, rec := range result.Records {
		snap.Records = append(snap.Records, model.SnapshotRecord{
			UUID:     getString(rec, "uuid"),
			Title:    getString(rec, "title"),
			Venue:    getString(rec, "venue"),
			Category: getString(rec, "category"),
			Price:    getPrice(rec, "price"),
			Date:     getDate(rec, "date"),
		})
	}
	return snap, nil
}

// Wipe removes every event node and its relationships. Administrative use
// only; nothing else in the system deletes events.
func (s *GraphStore) Wipe(ctx context.Context) error {
	if _, err := s.Driver.ExecuteQuery(ctx, driver.WipeEventsQuery, nil); err != nil {
		return fmt.Errorf("%w: wipe: %s", ErrStoreUnavailable, err)
	}
	return nil
}

func getString(rec *neo4j.Record, key string) string {
	if v, ok := rec.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getPrice(rec *neo4j.Record, key string) *float64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	switch p := v.(type) {
	case float64:
		return &p
	case int64:
		f := float64(p)
		return &f
	}
	return nil
}

func getDate(rec *neo4j.Record, key string) *time.Time {
	s := getString(rec, key)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func dateParam(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func priceParam(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
