package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retries   int
		retryable bool
	}{
		{ErrCodeInvalidConfig, 0, false},
		{ErrCodeMalformedRecord, 0, false},
		{ErrCodeGSCAuthFailed, 0, false},
		{ErrCodeGSCBadResponse, 0, false},
		{ErrCodeGSCFetchFailed, 3, true},
		{ErrCodeGSCRateLimited, 5, true},
		{ErrCodeStoreInsertFailed, 3, true},
		{ErrCodeIndexFailed, 3, true},
		{ErrCodeNotificationSendFailed, 3, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
			assert.Equal(t, tt.retryable, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestCodeOfUnwrapsWrappedErrors(t *testing.T) {
	inner := NewGSCRateLimitedError("status 429")
	wrapped := fmt.Errorf("channel search: %w", inner)

	assert.Equal(t, ErrCodeGSCRateLimited, CodeOf(wrapped))
	assert.True(t, IsRetryable(wrapped))
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
	assert.False(t, IsRetryable(stderrors.New("plain")))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SEARCH_CONSOLE", GetErrorCategory(ErrCodeGSCFetchFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeStoreInsertFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidConfig))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeExportFailed))
}

type recordingLogger struct {
	msg    string
	fields map[string]interface{}
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.msg = msg
	r.fields = fields
}

func TestHandlerNormalizesAndLogs(t *testing.T) {
	rec := &recordingLogger{}
	h := NewHandler(rec)

	stdErr := h.Handle(NewStoreInsertFailedError(stderrors.New("deadlock")), "persist",
		map[string]interface{}{"runId": "run-1"})

	require.NotNil(t, stdErr)
	assert.Equal(t, ErrCodeStoreInsertFailed, stdErr.Code)
	assert.Equal(t, "Failed to persist analysis run", rec.msg)
	assert.Equal(t, "persist", rec.fields["step"])
	assert.Equal(t, "run-1", rec.fields["runId"])
	assert.Equal(t, "DATABASE", rec.fields["errorCategory"])
	assert.Equal(t, 3, rec.fields["retries"])
}

func TestNormalizeForeignError(t *testing.T) {
	stdErr := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
	assert.False(t, stdErr.Retryable)
}
