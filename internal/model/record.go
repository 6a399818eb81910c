package model

import "time"

// Source identifies the ticketing platform a record was scraped from.
type Source string

const (
	SourceBiletix    Source = "biletix"
	SourceBiletinial Source = "biletinial"
	SourceBiletino   Source = "biletino"
	SourcePasso      Source = "passo"
	SourceManual     Source = "manual"
)

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceBiletix, SourceBiletinial, SourceBiletino, SourcePasso, SourceManual:
		return true
	}
	return false
}

// CandidateRecord is a raw listing as delivered by a scraper. Every field is
// an untrusted string; any of them may be empty or malformed.
type CandidateRecord struct {
	Title       string `json:"title"`
	Venue       string `json:"venue"`
	City        string `json:"city"`
	DateText    string `json:"date_text"`
	PriceText   string `json:"price_text"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
}

// NormalizedRecord is the canonical, typed form of a candidate. Date and
// Price are nil when the raw text was missing or unparseable; a Price of 0
// means the event is free.
type NormalizedRecord struct {
	Title       string     `json:"title"`
	Venue       string     `json:"venue"`
	City        string     `json:"city"`
	Date        *time.Time `json:"date"`
	Price       *float64   `json:"price"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Source      Source     `json:"source"`
}
