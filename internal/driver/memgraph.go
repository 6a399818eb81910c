package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// MemgraphDriver talks to a Memgraph (or Neo4j) instance over Bolt.
type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(uri, username, password string) (*MemgraphDriver, error) {
	d, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := d.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Info().Str("uri", uri).Msg("connected to graph database")
	return &MemgraphDriver{Driver: d}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	// The fingerprint index backs both dedup lookups and the conditional
	// create in the upsert path; the uuid index backs enrichment joins.
	queries := []string{
		"CREATE INDEX ON :Event(fingerprint);",
		"CREATE INDEX ON :Event(uuid);",
		"CREATE INDEX ON :Event(category);",
		"CREATE INDEX ON :Venue(name);",
		"CREATE INDEX ON :Artist(name);",
		"CREATE INDEX ON :Tag(name);",
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// Index might already exist.
			log.Warn().Err(err).Str("query", q).Msg("failed to create index")
		}
	}

	return nil
}
