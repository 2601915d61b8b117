package utils

import (
	"testing"
	"time"

	"github.com/peklos/nextbank/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordOperation(t *testing.T) {
	m := NewMetrics()

	m.RecordOperation(models.TransactionTypeDeposit, 1000)
	m.RecordOperation(models.TransactionTypeDeposit, 500)
	m.RecordOperation(models.TransactionTypeTransfer, 200)

	deposits := m.Operations[models.TransactionTypeDeposit]
	require.NotNil(t, deposits)
	assert.Equal(t, int64(2), deposits.Count)
	assert.Equal(t, 1500.0, deposits.TotalAmount)

	transfers := m.Operations[models.TransactionTypeTransfer]
	require.NotNil(t, transfers)
	assert.Equal(t, int64(1), transfers.Count)
}

func TestMetricsRecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest(10*time.Millisecond, 200)
	m.RecordRequest(30*time.Millisecond, 500)

	assert.Equal(t, int64(2), m.TotalRequests)
	assert.Equal(t, int64(1), m.FailedRequests)
	assert.Equal(t, 20*time.Millisecond, m.AverageLatency)
}

func TestMetricsSnapshotAndReset(t *testing.T) {
	m := NewMetrics()
	m.RecordOperation(models.TransactionTypeWithdraw, 100)
	m.RecordError(assert.AnError)

	snapshot := m.GetMetricsSnapshot()
	assert.Equal(t, int64(1), snapshot["error_count"])

	operations, ok := snapshot["operations"].(map[string]OperationStats)
	require.True(t, ok)
	assert.Equal(t, int64(1), operations["withdraw"].Count)

	m.ResetMetrics()
	assert.Empty(t, m.Operations)
	assert.Equal(t, int64(0), m.TotalRequests)
}
