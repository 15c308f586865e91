// Package analyzer orchestrates one end-to-end cycle: fetch Search Console
// rows, run the scoring engine per channel, then hand the report to the
// persistence, indexing, export and notification collaborators.
package analyzer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"keyword-insights/internal/analysis"
	"keyword-insights/internal/common/config"
	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/common/metrics"
	"keyword-insights/internal/common/observability"
	"keyword-insights/internal/export"
	"keyword-insights/internal/models"
)

// Fetcher yields the raw records for a date range.
type Fetcher interface {
	FetchSearchAnalytics(ctx context.Context, start, end time.Time) ([]models.KeywordRecord, error)
}

// RunStore persists a completed run.
type RunStore interface {
	SaveRun(ctx context.Context, runID string, startedAt, completedAt time.Time, totalRecords int, report *models.Report) error
}

// RunIndexer pushes a run's entries to the dashboard index.
type RunIndexer interface {
	IndexRun(ctx context.Context, runID string, report *models.Report) error
}

// RunNotifier delivers the run digest.
type RunNotifier interface {
	NotifyRun(ctx context.Context, runID string, report *models.Report) error
}

// Exporter writes the report file and returns its path.
type Exporter interface {
	Export(report *models.Report, now time.Time) (string, error)
}

// RunResult summarizes one channel cycle for the caller.
type RunResult struct {
	RunID      string
	Channel    models.Channel
	Report     *models.Report
	ExportPath string
}

// Service wires the engine to its collaborators. Any collaborator may be
// nil; the corresponding step is skipped. Collaborator failures after a
// successful engine run are logged and counted, never fatal: the computed
// report is still returned.
type Service struct {
	engine    *analysis.Engine
	fetcher   Fetcher
	store     RunStore
	indexer   RunIndexer
	notifier  RunNotifier
	exporter  Exporter
	obs       *observability.Observability
	log       logger.Logger
	errs      *errors.Handler
	channels  []models.Channel
	fetchDays int
	now       func() time.Time
}

func NewService(
	engine *analysis.Engine,
	fetcher Fetcher,
	store RunStore,
	indexer RunIndexer,
	notifier RunNotifier,
	exporter Exporter,
	obs *observability.Observability,
	cfg config.AnalysisConfig,
	log logger.Logger,
) *Service {
	channels := make([]models.Channel, 0, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		channels = append(channels, models.Channel(ch))
	}
	return &Service{
		engine:    engine,
		fetcher:   fetcher,
		store:     store,
		indexer:   indexer,
		notifier:  notifier,
		exporter:  exporter,
		obs:       obs,
		log:       log,
		errs:      errors.NewHandler(log),
		channels:  channels,
		fetchDays: cfg.FetchDays,
		now:       time.Now,
	}
}

// RunAll executes every configured channel. The first failure stops the
// cycle; completed channels keep their side effects.
func (s *Service) RunAll(ctx context.Context) ([]*RunResult, error) {
	results := make([]*RunResult, 0, len(s.channels))
	for _, ch := range s.channels {
		res, err := s.RunChannel(ctx, ch)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunChannel fetches, scores and distributes one channel's report.
func (s *Service) RunChannel(ctx context.Context, channel models.Channel) (*RunResult, error) {
	startedAt := s.now()
	end := startedAt.Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -s.fetchDays)

	records, err := s.fetcher.FetchSearchAnalytics(ctx, start, end)
	if err != nil {
		s.failRun(channel, err)
		return nil, err
	}

	report, err := s.engine.Run(ctx, channel, records)
	if err != nil {
		s.failRun(channel, err)
		return nil, err
	}
	completedAt := s.now()

	ch := string(channel)
	metrics.AnalysisRunsCompleted.WithLabelValues(ch).Inc()
	metrics.AnalysisRunDuration.WithLabelValues(ch).Observe(completedAt.Sub(startedAt).Seconds())
	metrics.RecordsScored.WithLabelValues(ch).Add(float64(report.Summary.TotalOpportunities))
	metrics.RecordsDropped.WithLabelValues(ch, "filtered").Add(float64(report.Rejected))
	metrics.RecordsDropped.WithLabelValues(ch, "malformed").Add(float64(report.Malformed))
	if s.obs != nil {
		s.obs.RecordRunProcessed(ctx, ch, "completed")
		s.obs.RecordRunDuration(ctx, completedAt.Sub(startedAt), ch)
	}

	result := &RunResult{
		RunID:   uuid.NewString(),
		Channel: channel,
		Report:  report,
	}

	if s.store != nil {
		if err := s.store.SaveRun(ctx, result.RunID, startedAt, completedAt, len(records), report); err != nil {
			s.errs.Handle(err, "persist", map[string]interface{}{"runId": result.RunID})
		}
	}
	if s.indexer != nil {
		if err := s.indexer.IndexRun(ctx, result.RunID, report); err != nil {
			s.errs.Handle(err, "index", map[string]interface{}{"runId": result.RunID})
		}
	}
	if s.exporter != nil {
		path, err := s.exporter.Export(report, completedAt)
		if err != nil {
			s.errs.Handle(err, "export", map[string]interface{}{"runId": result.RunID})
		} else {
			result.ExportPath = path
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyRun(ctx, result.RunID, report); err != nil {
			s.errs.Handle(err, "notify", map[string]interface{}{"runId": result.RunID})
		}
	}

	s.log.Info("channel run finished", map[string]interface{}{
		"runId":         result.RunID,
		"channel":       channel,
		"opportunities": report.Summary.TotalOpportunities,
		"rejected":      report.Rejected,
		"malformed":     report.Malformed,
	})
	return result, nil
}

func (s *Service) failRun(channel models.Channel, err error) {
	metrics.AnalysisRunsFailed.WithLabelValues(string(channel), string(errors.CodeOf(err))).Inc()
	if s.obs != nil {
		s.obs.RecordRunProcessed(context.Background(), string(channel), "failed")
	}
	s.log.WithError(err).Error("channel run failed", map[string]interface{}{"channel": channel})
}

// CSVExporter adapts the export package to the Exporter interface.
type CSVExporter struct {
	Directory string
}

func (e CSVExporter) Export(report *models.Report, now time.Time) (string, error) {
	return export.WriteFile(e.Directory, report, now)
}
