package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// maxPlausiblePrice guards against scrape artifacts; anything above it is
// treated as unparseable rather than skewing the analysis.
const maxPlausiblePrice = 100000.0

var freeMarkers = []string{"ücretsiz", "ucretsiz", "bedava", "free"}

var numberRe = regexp.MustCompile(`\d[\d.,]*`)

var thousandsRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// ParsePrice extracts a non-negative price from decorated text.
// "150 TL" -> 150, "1.250,50 ₺" -> 1250.5, "Ücretsiz" -> 0, a range
// "150 - 250 TL" -> 150 (the minimum). Missing or unparseable text yields
// nil, meaning the price is unknown.
func ParsePrice(raw string) *float64 {
	s := strings.ToLower(CleanText(raw))
	if s == "" {
		return nil
	}

	for _, marker := range freeMarkers {
		if strings.Contains(s, marker) {
			zero := 0.0
			return &zero
		}
	}

	var min float64
	found := false
	for _, tok := range numberRe.FindAllString(s, -1) {
		v, ok := parseNumber(tok)
		if !ok {
			continue
		}
		if !found || v < min {
			min = v
			found = true
		}
	}

	if !found || min < 0 || min > maxPlausiblePrice {
		return nil
	}
	return &min
}

// parseNumber handles Turkish digit grouping: "1.250,50" and "1.250" use the
// dot as a thousands separator, while "150,50" uses the comma as the decimal
// mark.
func parseNumber(tok string) (float64, bool) {
	tok = strings.Trim(tok, ".,")
	switch {
	case strings.Contains(tok, ".") && strings.Contains(tok, ","):
		tok = strings.ReplaceAll(tok, ".", "")
		tok = strings.ReplaceAll(tok, ",", ".")
	case strings.Contains(tok, ","):
		tok = strings.ReplaceAll(tok, ",", ".")
	case thousandsRe.MatchString(tok):
		tok = strings.ReplaceAll(tok, ".", "")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
