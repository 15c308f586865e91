package analyzer

import (
	"context"
	"database/sql"
	"time"

	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/models"
)

const insertRunQuery = `
	INSERT INTO analysis_runs (
		id, channel, started_at, completed_at,
		total_records, rejected, malformed,
		total_opportunities, high_priority, estimated_additional_clicks
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const insertOpportunityQuery = `
	INSERT INTO keyword_opportunities (
		run_id, rank, query, impressions, clicks, ctr, position,
		expected_ctr, ctr_gap,
		position_score, volume_score, ctr_gap_score, traffic_potential_score,
		opportunity_score, opportunity_type, priority,
		estimated_additional_clicks, intent_category
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

// PostgresStore persists runs and their ranked opportunities.
type PostgresStore struct {
	db  *sql.DB
	log logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// SaveRun writes the run row and every opportunity in one transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, runID string, startedAt, completedAt time.Time, totalRecords int, report *models.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreInsertFailedError(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertRunQuery,
		runID,
		string(report.Channel),
		startedAt,
		completedAt,
		totalRecords,
		report.Rejected,
		report.Malformed,
		report.Summary.TotalOpportunities,
		report.Summary.ByPriority[models.PriorityHigh],
		report.Summary.EstimatedAdditionalClicks,
	)
	if err != nil {
		return errors.NewStoreInsertFailedError(err)
	}

	stmt, err := tx.PrepareContext(ctx, insertOpportunityQuery)
	if err != nil {
		return errors.NewStoreInsertFailedError(err)
	}
	defer stmt.Close()

	for _, o := range report.Opportunities {
		var intentCol sql.NullString
		if o.IntentCategory != nil {
			intentCol = sql.NullString{String: string(*o.IntentCategory), Valid: true}
		}
		_, err = stmt.ExecContext(ctx,
			runID, o.Rank, o.Query, o.Impressions, o.Clicks, o.CTR, o.Position,
			o.ExpectedCTR, o.CTRGap,
			o.PositionScore, o.VolumeScore, o.CTRGapScore, o.TrafficPotentialScore,
			o.OpportunityScore, string(o.OpportunityType), string(o.Priority),
			o.EstimatedAdditionalClicks, intentCol,
		)
		if err != nil {
			return errors.NewStoreInsertFailedError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreInsertFailedError(err)
	}

	s.log.Debug("analysis run persisted", map[string]interface{}{
		"runId":         runID,
		"opportunities": len(report.Opportunities),
	})
	return nil
}
