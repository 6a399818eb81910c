package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// now is swapped out by tests that exercise relative terms and the
// year-rollover heuristic.
var now = time.Now

var turkishMonths = map[string]time.Month{
	"ocak": time.January, "şubat": time.February, "mart": time.March,
	"nisan": time.April, "mayıs": time.May, "haziran": time.June,
	"temmuz": time.July, "ağustos": time.August, "eylül": time.September,
	"ekim": time.October, "kasım": time.November, "aralık": time.December,
	// abbreviated forms used by listing pages
	"oca": time.January, "şub": time.February, "mar": time.March,
	"nis": time.April, "may": time.May, "haz": time.June,
	"tem": time.July, "ağu": time.August, "eyl": time.September,
	"eki": time.October, "kas": time.November, "ara": time.December,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
}

var yearRe = regexp.MustCompile(`\b(20\d{2})\b`)

// ParseDate parses localized event date text into a UTC timestamp.
// Recognized forms: ISO timestamps and dates, numeric Turkish dates
// ("02.01.2026"), "10 Aralık 2025", "Aralık - 10 - 16" ranges (the earliest
// day wins), and the relative terms "bugün"/"today" and "yarın"/"tomorrow".
// Anything else yields nil.
func ParseDate(raw string) *time.Time {
	s := CleanText(raw)
	if s == "" {
		return nil
	}

	switch strings.ToLower(s) {
	case "bugün", "bugun", "today":
		t := dayOf(now())
		return &t
	case "yarın", "yarin", "tomorrow":
		t := dayOf(now().AddDate(0, 0, 1))
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return parseTurkishDate(s)
}

// parseTurkishDate handles "10 Aralık [2025]", "Aralık - 15" and
// "Aralık - 10 - 16" style strings. Ranges resolve to their first day.
func parseTurkishDate(s string) *time.Time {
	year := 0
	if m := yearRe.FindString(s); m != "" {
		year, _ = strconv.Atoi(m)
		s = strings.TrimSpace(strings.Replace(s, m, "", 1))
	}

	parts := strings.Fields(s)
	for i := 0; i < len(parts); i++ {
		if month, ok := turkishMonths[strings.ToLower(parts[i])]; ok {
			// "Month - Day" or "Month Day"
			j := i + 1
			if j < len(parts) && parts[j] == "-" {
				j++
			}
			if j < len(parts) {
				if day, err := strconv.Atoi(parts[j]); err == nil {
					return buildDate(year, month, day)
				}
			}
			continue
		}
		// "Day Month"
		if day, err := strconv.Atoi(strings.TrimSuffix(parts[i], ",")); err == nil && i+1 < len(parts) {
			if month, ok := turkishMonths[strings.ToLower(parts[i+1])]; ok {
				return buildDate(year, month, day)
			}
		}
	}
	return nil
}

func buildDate(year int, month time.Month, day int) *time.Time {
	if day < 1 || day > 31 {
		return nil
	}
	ref := now()
	if year == 0 {
		year = ref.Year()
		// Listings drop the year; a Jan-Mar date seen in Nov-Dec belongs to
		// the next calendar year.
		if month <= time.March && ref.Month() >= time.November {
			year++
		}
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
