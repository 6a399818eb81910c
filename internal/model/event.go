package model

import "time"

// Fingerprint is the deduplication key for an event occurrence: normalized
// title + venue + day-granularity date. Equal fingerprints mean the same
// real-world occurrence.
type Fingerprint string

// EventNode is the persisted form of a unique event. It is owned by the graph
// store: created once per fingerprint, never field-merged with later
// duplicates, and deleted only through an administrative wipe.
type EventNode struct {
	UUID        string     `json:"uuid"`
	Title       string     `json:"title"`
	Venue       string     `json:"venue"`
	City        string     `json:"city"`
	Date        *time.Time `json:"date"`
	Price       *float64   `json:"price"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Source      Source     `json:"source"`
	Fingerprint Fingerprint `json:"fingerprint"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
