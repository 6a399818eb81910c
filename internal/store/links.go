package store

import (
	"context"
	"fmt"

	"github.com/eventatlas/eventatlas/internal/driver"
)

// Relationship primitives for enrichment collaborators. They attach Venue,
// Artist and Tag nodes to an existing event by its uuid; the ingestion core
// itself never creates these edges.

func (s *GraphStore) LinkVenue(ctx context.Context, eventUUID, name string) error {
	return s.link(ctx, driver.LinkVenueQuery, eventUUID, name)
}

func (s *GraphStore) LinkArtist(ctx context.Context, eventUUID, name string) error {
	return s.link(ctx, driver.LinkArtistQuery, eventUUID, name)
}

func (s *GraphStore) LinkTag(ctx context.Context, eventUUID, name string) error {
	return s.link(ctx, driver.LinkTagQuery, eventUUID, name)
}

func (s *GraphStore) link(ctx context.Context, query, eventUUID, name string) error {
	_, err := s.Driver.ExecuteQuery(ctx, query, map[string]interface{}{
		"uuid": eventUUID,
		"name": name,
	})
	if err != nil {
		return fmt.Errorf("%w: link: %s", ErrStoreUnavailable, err)
	}
	return nil
}
