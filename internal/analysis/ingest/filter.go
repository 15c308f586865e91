// Package ingest screens raw keyword records before scoring: sanity checks
// first, then the configured business filters.
package ingest

import (
	"strings"

	"keyword-insights/internal/models"
)

// Result carries the surviving records plus accounting for everything that
// was dropped. Survivors keep their input order.
type Result struct {
	Kept      []models.KeywordRecord
	Rejected  int // dropped by brand/position/impression filters
	Malformed int // dropped by sanity checks
}

// Filter applies sanity checks and the configured filters to records. The
// input slice is never mutated; a malformed record is counted, not fatal,
// and an empty input is a valid empty result.
func Filter(records []models.KeywordRecord, cfg models.ScoringConfig) Result {
	res := Result{Kept: make([]models.KeywordRecord, 0, len(records))}

	brands := make([]string, 0, len(cfg.BrandTerms))
	for _, b := range cfg.BrandTerms {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" {
			brands = append(brands, b)
		}
	}

	for _, rec := range records {
		if !wellFormed(rec) {
			res.Malformed++
			continue
		}
		if isBranded(rec.Query, brands) ||
			rec.Position > cfg.MaxPosition ||
			rec.Impressions < cfg.MinImpressions {
			res.Rejected++
			continue
		}
		res.Kept = append(res.Kept, rec)
	}

	return res
}

func wellFormed(rec models.KeywordRecord) bool {
	if strings.TrimSpace(rec.Query) == "" {
		return false
	}
	if rec.Impressions < 0 || rec.Clicks < 0 || rec.Clicks > rec.Impressions {
		return false
	}
	if rec.Position < 1 {
		return false
	}
	if rec.CTR < 0 || rec.CTR > 1 {
		return false
	}
	return true
}

func isBranded(query string, brands []string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, b := range brands {
		if strings.Contains(q, b) {
			return true
		}
	}
	return false
}
