package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCollectorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Only the columns the collector queries
	db.Exec(`CREATE TABLE issue_types (
		id TEXT PRIMARY KEY,
		deleted_at DATETIME
	)`)
	db.Exec(`CREATE TABLE custom_fields (
		id TEXT PRIMARY KEY,
		deleted_at DATETIME
	)`)
	db.Exec(`CREATE TABLE workflows (
		id TEXT PRIMARY KEY,
		deleted_at DATETIME
	)`)

	return db
}

// Helper function to get gauge value
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := gauge.Write(metric); err != nil {
		t.Fatalf("Failed to write gauge metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestBusinessMetricsCollector_CollectSetsGauges(t *testing.T) {
	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, logger)
	db := setupCollectorTestDB(t)

	require.NoError(t, db.Exec(`INSERT INTO issue_types (id) VALUES ('it-1'), ('it-2')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO custom_fields (id) VALUES ('cf-1')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO workflows (id) VALUES ('wf-1'), ('wf-2'), ('wf-3')`).Error)

	collector := NewBusinessMetricsCollector(db, m, logger)
	collector.collect()

	assert.Equal(t, float64(2), getGaugeValue(t, m.IssueTypesTotal))
	assert.Equal(t, float64(1), getGaugeValue(t, m.CustomFieldsTotal))
	assert.Equal(t, float64(3), getGaugeValue(t, m.WorkflowEdgesTotal))
}

func TestBusinessMetricsCollector_IgnoresSoftDeletedRows(t *testing.T) {
	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, logger)
	db := setupCollectorTestDB(t)

	require.NoError(t, db.Exec(`INSERT INTO issue_types (id, deleted_at)
		VALUES ('live', NULL), ('gone', CURRENT_TIMESTAMP)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO workflows (id, deleted_at)
		VALUES ('gone', CURRENT_TIMESTAMP)`).Error)

	collector := NewBusinessMetricsCollector(db, m, logger)
	collector.collect()

	assert.Equal(t, float64(1), getGaugeValue(t, m.IssueTypesTotal))
	assert.Equal(t, float64(0), getGaugeValue(t, m.WorkflowEdgesTotal))
}

func TestBusinessMetricsCollector_StartAndStop(t *testing.T) {
	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, logger)
	db := setupCollectorTestDB(t)

	require.NoError(t, db.Exec(`INSERT INTO custom_fields (id) VALUES ('cf-1')`).Error)

	collector := NewBusinessMetricsCollector(db, m, logger)
	collector.Start()
	collector.Stop()

	assert.Equal(t, float64(1), getGaugeValue(t, m.CustomFieldsTotal))
}

// TestBusinessMetricsCollector_PanicRecovery tests that collection errors never crash the process
func TestBusinessMetricsCollector_PanicRecovery(t *testing.T) {
	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, logger)

	collector := &BusinessMetricsCollector{
		db:      nil,
		metrics: m,
		logger:  logger,
	}

	assert.NotPanics(t, func() {
		collector.collect()
	}, "Collector should handle errors gracefully")
}
