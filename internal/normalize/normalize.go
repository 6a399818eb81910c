// Package normalize turns raw scraped fields into canonical typed values.
// Every function here is total: unparseable input degrades to a nil or
// default value, never an error.
package normalize

import (
	"html"
	"strings"

	"github.com/eventatlas/eventatlas/internal/model"
)

const defaultCity = "Istanbul"

// Record normalizes a raw candidate into its canonical typed form.
func Record(c model.CandidateRecord) model.NormalizedRecord {
	city := CleanText(c.City)
	if city == "" {
		city = defaultCity
	}

	return model.NormalizedRecord{
		Title:       CleanText(c.Title),
		Venue:       CleanText(c.Venue),
		City:        city,
		Date:        ParseDate(c.DateText),
		Price:       ParsePrice(c.PriceText),
		Category:    MapCategory(c.Category),
		Description: CleanText(c.Description),
		ImageURL:    strings.TrimSpace(c.ImageURL),
		Source:      model.Source(strings.ToLower(strings.TrimSpace(c.Source))),
	}
}

// CleanText decodes HTML entities, collapses whitespace runs to single
// spaces, and trims the result.
func CleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
