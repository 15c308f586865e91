package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-insights/internal/common/errors"
)

func TestDefaultScoringConfigIsValid(t *testing.T) {
	cfg := DefaultScoringConfig()
	require.NoError(t, cfg.Validate())
}

func TestScoringConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScoringConfig)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *ScoringConfig) {},
		},
		{
			name: "weights sum above one",
			mutate: func(c *ScoringConfig) {
				c.Weights.Position = 0.5
			},
			wantErr: true,
		},
		{
			name: "weights sum below one",
			mutate: func(c *ScoringConfig) {
				c.Weights.TrafficPotential = 0
			},
			wantErr: true,
		},
		{
			name: "weight sum within tolerance",
			mutate: func(c *ScoringConfig) {
				c.Weights.Position = 0.4 + 5e-7
			},
		},
		{
			name: "negative weight",
			mutate: func(c *ScoringConfig) {
				c.Weights.Volume = -0.3
				c.Weights.Position = 1.0
			},
			wantErr: true,
		},
		{
			name: "negative min impressions",
			mutate: func(c *ScoringConfig) {
				c.MinImpressions = -1
			},
			wantErr: true,
		},
		{
			name: "max position at lower bound",
			mutate: func(c *ScoringConfig) {
				c.MaxPosition = 1
			},
			wantErr: true,
		},
		{
			name: "medium threshold above high",
			mutate: func(c *ScoringConfig) {
				c.PriorityThresholds.Medium = 80
			},
			wantErr: true,
		},
		{
			name: "equal thresholds allowed",
			mutate: func(c *ScoringConfig) {
				c.PriorityThresholds.Medium = 70
			},
		},
		{
			name: "bucket gap",
			mutate: func(c *ScoringConfig) {
				c.PositionBuckets[1].Lower = 12
			},
			wantErr: true,
		},
		{
			name: "inverted bucket",
			mutate: func(c *ScoringConfig) {
				c.PositionBuckets[0].Upper = 0.5
			},
			wantErr: true,
		},
		{
			name: "first bucket does not start at 1",
			mutate: func(c *ScoringConfig) {
				c.PositionBuckets[0].Lower = 2
			},
			wantErr: true,
		},
		{
			name: "buckets stop short of max position",
			mutate: func(c *ScoringConfig) {
				c.PositionBuckets[len(c.PositionBuckets)-1].Upper = 60
			},
			wantErr: true,
		},
		{
			name: "no buckets",
			mutate: func(c *ScoringConfig) {
				c.PositionBuckets = nil
			},
			wantErr: true,
		},
		{
			name: "gap threshold above one",
			mutate: func(c *ScoringConfig) {
				c.CTRGapSignificanceThreshold = 1.5
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultScoringConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
				assert.False(t, errors.IsRetryable(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBucketFor(t *testing.T) {
	cfg := DefaultScoringConfig()

	tests := []struct {
		position float64
		want     OpportunityType
	}{
		{1, TypeTop10Push},
		{6.5, TypeTop10Push},
		{10.9, TypeTop10Push},
		{11, TypeFirstPagePush},
		{13.9, TypeFirstPagePush},
		{21, TypeContentOptimization},
		{50.999, TypeContentOptimization},
		{51, TypeLongTermTarget},
		{100, TypeLongTermTarget},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.BucketFor(tt.position), "position %v", tt.position)
	}
}

func TestChannelWantsIntent(t *testing.T) {
	assert.False(t, ChannelSearch.WantsIntent())
	assert.True(t, ChannelAnswer.WantsIntent())
	assert.True(t, ChannelGenerative.WantsIntent())
	assert.False(t, Channel("bogus").Valid())
	assert.True(t, ChannelSearch.Valid())
}
