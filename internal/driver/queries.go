package driver

const (
	// CreateEventQuery is a conditional create keyed on the fingerprint
	// index: calling it twice with the same fingerprint yields exactly one
	// node, and a concurrent duplicate admission from a separate ingestion
	// run cannot produce a second node. ON CREATE only — duplicates never
	// merge fields into an existing event.
	CreateEventQuery = `
		MERGE (e:Event {fingerprint: $fingerprint})
		ON CREATE SET
			e.uuid = $uuid,
			e.title = $title,
			e.venue = $venue,
			e.city = $city,
			e.date = $date,
			e.price = $price,
			e.category = $category,
			e.description = $description,
			e.image_url = $image_url,
			e.source = $source,
			e.created_at = $created_at,
			e.updated_at = $updated_at
		RETURN e.uuid AS uuid, e.created_at AS created_at, e.updated_at AS updated_at
	`

	FindEventByFingerprintQuery = `
		MATCH (e:Event {fingerprint: $fingerprint})
		RETURN e.uuid AS uuid, e.title AS title, e.venue AS venue, e.city AS city,
			e.date AS date, e.price AS price, e.category AS category,
			e.description AS description, e.image_url AS image_url,
			e.source AS source, e.created_at AS created_at, e.updated_at AS updated_at
	`

	SnapshotQuery = `
		MATCH (e:Event)
		RETURN e.uuid AS uuid, e.title AS title, e.venue AS venue,
			e.category AS category, e.price AS price, e.date AS date
	`

	WipeEventsQuery = `
		MATCH (e:Event)
		DETACH DELETE e
	`

	// Relationship primitives for enrichment collaborators, keyed by the
	// event uuid. The ingestion core never calls these itself.

	LinkVenueQuery = `
		MATCH (e:Event {uuid: $uuid})
		MERGE (v:Venue {name: $name})
		MERGE (e)-[:AT_VENUE]->(v)
		RETURN v.name AS name
	`

	LinkArtistQuery = `
		MATCH (e:Event {uuid: $uuid})
		MERGE (a:Artist {name: $name})
		MERGE (e)-[:FEATURES]->(a)
		RETURN a.name AS name
	`

	LinkTagQuery = `
		MATCH (e:Event {uuid: $uuid})
		MERGE (t:Tag {name: $name})
		MERGE (e)-[:TAGGED]->(t)
		RETURN t.name AS name
	`
)
