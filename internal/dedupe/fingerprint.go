package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/eventatlas/eventatlas/internal/model"
)

// FingerprintOf derives the deduplication key for a record: SHA-256 over the
// lowercased, trimmed title and venue plus the date floored to day
// granularity. A nil date contributes an empty component, so same-titled
// events at the same venue with unknown dates collapse into one occurrence.
func FingerprintOf(r model.NormalizedRecord) model.Fingerprint {
	day := ""
	if r.Date != nil {
		day = r.Date.UTC().Format("2006-01-02")
	}

	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(r.Title))))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(r.Venue))))
	h.Write([]byte{'|'})
	h.Write([]byte(day))

	return model.Fingerprint(hex.EncodeToString(h.Sum(nil)))
}
