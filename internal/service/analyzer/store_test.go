package analyzer

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/models"
)

func storedReport() *models.Report {
	howTo := models.IntentHowTo
	return &models.Report{
		Channel: models.ChannelAnswer,
		Opportunities: []models.ScoredOpportunity{
			{
				Rank: 1, Query: "how to teach fractions",
				Impressions: 1200, Clicks: 24, CTR: 0.02, Position: 9,
				ExpectedCTR: 0.025, CTRGap: 0.005,
				OpportunityScore: 70.2, OpportunityType: models.TypeTop10Push,
				Priority: models.PriorityHigh, EstimatedAdditionalClicks: 6,
				IntentCategory: &howTo,
			},
			{
				Rank: 2, Query: "math tutor near me",
				Impressions: 400, Clicks: 4, CTR: 0.01, Position: 15,
				ExpectedCTR: 0.015, CTRGap: 0.005,
				OpportunityScore: 51.1, OpportunityType: models.TypeFirstPagePush,
				Priority: models.PriorityMedium, EstimatedAdditionalClicks: 2,
			},
		},
		Summary: models.ReportSummary{
			TotalOpportunities: 2,
			ByPriority: map[models.Priority]int{
				models.PriorityHigh:   1,
				models.PriorityMedium: 1,
			},
			EstimatedAdditionalClicks: 8,
		},
		Rejected:  3,
		Malformed: 1,
	}
}

func TestSaveRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	report := storedReport()
	startedAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(3 * time.Second)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analysis_runs").
		WithArgs("run-1", "answer", startedAt, completedAt, 6, 3, 1, 2, 1, 8.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare("INSERT INTO keyword_opportunities")
	mock.ExpectExec("INSERT INTO keyword_opportunities").
		WithArgs("run-1", 1, "how to teach fractions", 1200, 24, 0.02, 9.0,
			0.025, 0.005, 0.0, 0.0, 0.0, 0.0, 70.2, "top_10_push", "high", 6.0, "how_to").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO keyword_opportunities").
		WithArgs("run-1", 2, "math tutor near me", 400, 4, 0.01, 15.0,
			0.015, 0.005, 0.0, 0.0, 0.0, 0.0, 51.1, "first_page_push", "medium", 2.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	err = store.SaveRun(t.Context(), "run-1", startedAt, completedAt, 6, report)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRunInsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	report := storedReport()
	startedAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analysis_runs").
		WillReturnError(fmt.Errorf("relation does not exist"))
	mock.ExpectRollback()

	store := NewPostgresStore(db, logger.NewNoOpLogger())
	err = store.SaveRun(t.Context(), "run-1", startedAt, startedAt, 6, report)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStoreInsertFailed, errors.CodeOf(err))
	assert.True(t, errors.IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
