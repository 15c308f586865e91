package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-insights/internal/models"
)

func sampleReport(channel models.Channel) *models.Report {
	howTo := models.IntentHowTo
	opps := []models.ScoredOpportunity{
		{
			Rank: 1, Query: "how to teach fractions",
			Impressions: 1200, Clicks: 24, CTR: 0.02, Position: 9,
			ExpectedCTR: 0.025, CTRGap: 0.005,
			PositionScore: 91.9, VolumeScore: 75, CTRGapScore: 20, TrafficPotentialScore: 75,
			OpportunityScore: 70.26, OpportunityType: models.TypeTop10Push,
			Priority: models.PriorityHigh, EstimatedAdditionalClicks: 6,
		},
		{
			Rank: 2, Query: "math tutor near me",
			Impressions: 400, Clicks: 4, CTR: 0.01, Position: 15,
			ExpectedCTR: 0.015, CTRGap: 0.005,
			PositionScore: 85.9, VolumeScore: 25, CTRGapScore: 33.3, TrafficPotentialScore: 25,
			OpportunityScore: 51.12, OpportunityType: models.TypeFirstPagePush,
			Priority: models.PriorityMedium, EstimatedAdditionalClicks: 2,
		},
	}
	if channel.WantsIntent() {
		opps[0].IntentCategory = &howTo
	}
	return &models.Report{Channel: channel, Opportunities: opps}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(models.ChannelAnswer)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "how to teach fractions", rows[1][1])
	assert.Equal(t, "top_10_push", rows[1][13])
	assert.Equal(t, "high", rows[1][14])
	assert.Equal(t, "how_to", rows[1][16])

	// No intent set on the second row.
	assert.Equal(t, "", rows[2][16])
}

func TestWriteCSVEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &models.Report{Channel: models.ChannelSearch}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	path, err := WriteFile(dir, sampleReport(models.ChannelSearch), now)
	require.NoError(t, err)
	assert.Contains(t, path, "keyword_opportunities_search_2026-08-20.csv")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "math tutor near me")
}
