package utils

import (
	"sync"
	"time"

	"github.com/peklos/nextbank/models"
)

// OperationStats агрегирует денежные операции одного типа
type OperationStats struct {
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики денежных операций по типам
	Operations        map[models.TransactionType]*OperationStats
	LastOperationTime time.Time

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

// NewMetrics создает новый экземпляр метрик
func NewMetrics() *Metrics {
	return &Metrics{
		Operations: make(map[models.TransactionType]*OperationStats),
		ErrorTypes: make(map[string]int64),
	}
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if statusCode >= 500 {
		m.FailedRequests++
	}
}

// RecordOperation записывает проведённую денежную операцию
func (m *Metrics) RecordOperation(kind models.TransactionType, amount float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats, ok := m.Operations[kind]
	if !ok {
		stats = &OperationStats{}
		m.Operations[kind] = stats
	}
	stats.Count++
	stats.TotalAmount += amount
	m.LastOperationTime = time.Now()
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}
	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	operations := make(map[string]OperationStats, len(m.Operations))
	for kind, stats := range m.Operations {
		operations[string(kind)] = *stats
	}

	return map[string]interface{}{
		"total_requests":      m.TotalRequests,
		"failed_requests":     m.FailedRequests,
		"average_latency":     m.AverageLatency.String(),
		"last_request_time":   m.LastRequestTime,
		"operations":          operations,
		"last_operation_time": m.LastOperationTime,
		"error_count":         m.ErrorCount,
		"last_error_time":     m.LastErrorTime,
		"error_types":         m.ErrorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.Operations = make(map[models.TransactionType]*OperationStats)
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
