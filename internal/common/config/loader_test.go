package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-insights/internal/models"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: keyword-insights
gsc:
  site_url: sc-domain:example.com
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sc-domain:example.com", cfg.GSC.SiteURL)
	assert.Equal(t, "https://www.googleapis.com/webmasters/v3", cfg.GSC.BaseURL)
	assert.Equal(t, 25000, cfg.GSC.PageSize)
	assert.Equal(t, []string{"search"}, cfg.Analysis.Channels)
	assert.Equal(t, 90, cfg.Analysis.FetchDays)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "reports", cfg.Export.Directory)

	// Absent scoring block means production defaults, which must validate.
	assert.Equal(t, models.DefaultScoringConfig().Weights, cfg.Scoring.Weights)
	assert.NoError(t, cfg.Scoring.Validate())
}

func TestLoadFromFileScoringOverride(t *testing.T) {
	path := writeConfig(t, `
gsc:
  site_url: sc-domain:example.com
scoring:
  weights:
    position: 0.25
    volume: 0.25
    ctr_gap: 0.25
    traffic_potential: 0.25
  brand_terms: ["acme"]
  min_impressions: 25
  max_position: 100
  priority_thresholds:
    high: 80
    medium: 40
  position_buckets:
    - {lower: 1, upper: 11, type: top_10_push}
    - {lower: 11, upper: 21, type: first_page_push}
    - {lower: 21, upper: 51, type: content_optimization}
    - {lower: 51, upper: 100, type: long_term_target}
  ctr_gap_significance_threshold: 0.04
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.25, cfg.Scoring.Weights.Position, 1e-9)
	assert.Equal(t, []string{"acme"}, cfg.Scoring.BrandTerms)
	assert.Equal(t, 25, cfg.Scoring.MinImpressions)
	assert.InDelta(t, 80, cfg.Scoring.PriorityThresholds.High, 1e-9)
	require.Len(t, cfg.Scoring.PositionBuckets, 4)
	assert.Equal(t, models.TypeFirstPagePush, cfg.Scoring.PositionBuckets[1].Type)
}

func TestLoadFromFileRejectsBadScoring(t *testing.T) {
	path := writeConfig(t, `
gsc:
  site_url: sc-domain:example.com
scoring:
  weights:
    position: 0.9
    volume: 0.9
    ctr_gap: 0.1
    traffic_potential: 0.1
  min_impressions: 10
  max_position: 100
  priority_thresholds:
    high: 70
    medium: 30
  position_buckets:
    - {lower: 1, upper: 100, type: top_10_push}
  ctr_gap_significance_threshold: 0.05
`)

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFileRequiresSiteURL(t *testing.T) {
	path := writeConfig(t, `
app:
  name: keyword-insights
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gsc.site_url")
}

func TestLoadFromFileRejectsUnknownChannel(t *testing.T) {
	path := writeConfig(t, `
gsc:
  site_url: sc-domain:example.com
analysis:
  channels: ["search", "podcast"]
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel")
}

func TestLoadFromFileRequiresEnabledCollaborators(t *testing.T) {
	path := writeConfig(t, `
gsc:
  site_url: sc-domain:example.com
database:
  postgres:
    enabled: true
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.postgres.host")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, int64(1500), GetDuration(1500).Milliseconds())
}
