// Package analysis runs the opportunity scoring pipeline: filter, dataset
// reduction, concurrent per-record scoring, classification and ranking.
package analysis

import (
	"context"
	"runtime"
	"sync"
	"time"

	"keyword-insights/internal/analysis/benchmark"
	"keyword-insights/internal/analysis/classify"
	"keyword-insights/internal/analysis/ingest"
	"keyword-insights/internal/analysis/intent"
	"keyword-insights/internal/analysis/rank"
	"keyword-insights/internal/analysis/scoring"
	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/models"
)

const slowRunThreshold = 1 * time.Second

// Engine scores one batch of keyword records per Run call. It holds no
// state between runs; identical inputs produce identical reports.
type Engine struct {
	cfg     models.ScoringConfig
	curve   *benchmark.Curve
	workers int
	log     logger.Logger
}

// NewEngine validates the config once up front. A nil curve falls back to
// the embedded industry benchmarks; workers <= 0 uses one per CPU.
func NewEngine(cfg models.ScoringConfig, curve *benchmark.Curve, workers int, log logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if curve == nil {
		curve = benchmark.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Engine{cfg: cfg, curve: curve, workers: workers, log: log}, nil
}

// Run filters, scores, classifies and ranks records for one channel. An
// empty surviving set is a valid empty report, not an error.
func (e *Engine) Run(ctx context.Context, channel models.Channel, records []models.KeywordRecord) (*models.Report, error) {
	start := time.Now()

	if !channel.Valid() {
		return nil, errors.NewInvalidConfigError("unknown channel: " + string(channel))
	}

	filtered := ingest.Filter(records, e.cfg)
	e.log.Debug("ingestion filter applied", map[string]interface{}{
		"channel":   channel,
		"input":     len(records),
		"kept":      len(filtered.Kept),
		"rejected":  filtered.Rejected,
		"malformed": filtered.Malformed,
	})

	stats := scoring.BuildStats(filtered.Kept, e.curve)

	scored, err := e.scoreAll(ctx, channel, filtered.Kept, stats)
	if err != nil {
		return nil, err
	}

	ordered, summary := rank.Rank(scored)

	elapsed := time.Since(start)
	fields := map[string]interface{}{
		"channel":       channel,
		"opportunities": summary.TotalOpportunities,
		"highPriority":  summary.ByPriority[models.PriorityHigh],
		"durationMs":    elapsed.Milliseconds(),
	}
	if elapsed > slowRunThreshold {
		e.log.Warn("analysis run exceeded expected duration", fields)
	} else {
		e.log.Info("analysis run complete", fields)
	}

	return &models.Report{
		Channel:       channel,
		Opportunities: ordered,
		Summary:       summary,
		Rejected:      filtered.Rejected,
		Malformed:     filtered.Malformed,
	}, nil
}

// scoreAll fans per-record scoring out over the worker pool and waits for
// the merge barrier. Results land at their input index so worker timing
// never changes the pre-sort order.
func (e *Engine) scoreAll(ctx context.Context, channel models.Channel, records []models.KeywordRecord, stats *scoring.Stats) ([]models.ScoredOpportunity, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.ScoredOpportunity, len(records))
	indexes := make(chan int)

	var wg sync.WaitGroup
	workers := e.workers
	if workers > len(records) {
		workers = len(records)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				out[i] = e.scoreOne(channel, records[i], stats)
			}
		}()
	}

	var ctxErr error
feed:
	for i := range records {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	return out, nil
}

func (e *Engine) scoreOne(channel models.Channel, rec models.KeywordRecord, stats *scoring.Stats) models.ScoredOpportunity {
	expected := e.curve.ExpectedCTR(rec.Position)
	gap := expected - rec.CTR
	sub := scoring.Score(rec, e.curve, stats, e.cfg)
	total := scoring.Composite(sub, e.cfg.Weights)

	opp := models.ScoredOpportunity{
		Query:       rec.Query,
		Impressions: rec.Impressions,
		Clicks:      rec.Clicks,
		CTR:         rec.CTR,
		Position:    rec.Position,

		ExpectedCTR: expected,
		CTRGap:      gap,

		PositionScore:         sub.Position,
		VolumeScore:           sub.Volume,
		CTRGapScore:           sub.CTRGap,
		TrafficPotentialScore: sub.TrafficPotential,
		OpportunityScore:      total,

		OpportunityType:           classify.OpportunityType(rec.Position, gap, e.cfg),
		Priority:                  classify.Priority(total, e.cfg.PriorityThresholds),
		EstimatedAdditionalClicks: scoring.EstimatedAdditionalClicks(rec, e.curve),
	}

	if channel.WantsIntent() {
		cat := intent.Classify(rec.Query)
		opp.IntentCategory = &cat
	}

	return opp
}
