package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
	"github.com/andrescamacho/annocalc-go/internal/application/production/queries"
	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/test/helpers"
)

func newInstrumentedMediator(t *testing.T) (mediator.Mediator, *QueryMetricsCollector, *ChainMetricsCollector, *Registry) {
	t.Helper()

	registry := NewRegistry("")
	queryMetrics := NewQueryMetricsCollector(registry.Namespace())
	chainMetrics := NewChainMetricsCollector(registry.Namespace())
	require.NoError(t, queryMetrics.Register(registry))
	require.NoError(t, chainMetrics.Register(registry))

	resolver := services.NewChainResolver(helpers.NewDemoCatalog(t), nil)
	analyzer := services.NewChainAnalyzer()
	m := mediator.NewMediator()
	m.RegisterMiddleware(PrometheusMiddleware(queryMetrics, chainMetrics))
	require.NoError(t, mediator.RegisterHandler[*queries.CalculateChainQuery](m, queries.NewCalculateChainHandler(resolver, analyzer)))
	require.NoError(t, mediator.RegisterHandler[*queries.CompareScenariosQuery](m, queries.NewCompareScenariosHandler(resolver, analyzer)))

	return m, queryMetrics, chainMetrics, registry
}

func TestPrometheusMiddleware_RecordsQueriesAndChains(t *testing.T) {
	// Arrange
	m, queryMetrics, chainMetrics, _ := newInstrumentedMediator(t)

	// Act
	_, err := m.Send(context.Background(), &queries.CalculateChainQuery{Good: "Chocolate", Rate: decimal.NewFromInt(8), Optimized: true})
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &queries.CalculateChainQuery{Good: "Steel", Rate: decimal.NewFromInt(1)})
	require.Error(t, err)

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(queryMetrics.queriesTotal.WithLabelValues("CalculateChainQuery", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(queryMetrics.queriesTotal.WithLabelValues("CalculateChainQuery", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(chainMetrics.chainsTotal.WithLabelValues("Chocolate", "true")))
	assert.Equal(t, 6.0, testutil.ToFloat64(chainMetrics.chainBuildings.WithLabelValues("Chocolate", "true")))
	assert.Equal(t, 60.0, testutil.ToFloat64(chainMetrics.chainWorkforce.WithLabelValues("Chocolate", "true", "Engineers")))
	assert.Equal(t, 2.0, testutil.ToFloat64(chainMetrics.chainDepth.WithLabelValues("Chocolate", "true")))
	assert.Equal(t, 6.0, testutil.ToFloat64(chainMetrics.buildingCount.WithLabelValues("Chocolate", "true", "Chocolate Factory")))
}

func TestPrometheusMiddleware_RecordsBothScenarios(t *testing.T) {
	// Arrange
	m, _, chainMetrics, _ := newInstrumentedMediator(t)

	// Act
	_, err := m.Send(context.Background(), &queries.CompareScenariosQuery{Good: "Chocolate", Rate: decimal.NewFromInt(8)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8.0, testutil.ToFloat64(chainMetrics.chainBuildings.WithLabelValues("Chocolate", "false")))
	assert.Equal(t, 6.0, testutil.ToFloat64(chainMetrics.chainBuildings.WithLabelValues("Chocolate", "true")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	middleware := PrometheusMiddleware(nil, nil)
	called := false

	_, err := middleware(context.Background(), &queries.CalculateChainQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		called = true
		return nil, errors.New("boom")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "boom")
}

func TestExtractQueryName(t *testing.T) {
	assert.Equal(t, "CalculateChainQuery", extractQueryName(&queries.CalculateChainQuery{}))
	assert.Equal(t, "CompareScenariosQuery", extractQueryName(queries.CompareScenariosQuery{}))
	assert.Equal(t, "UnknownQuery", extractQueryName(nil))
}

func TestRegistry_WriteTextfile(t *testing.T) {
	// Arrange
	m, _, _, registry := newInstrumentedMediator(t)
	_, err := m.Send(context.Background(), &queries.CalculateChainQuery{Good: "Bread", Rate: decimal.NewFromInt(2)})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "annocalc.prom")

	// Act
	err = registry.WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `annocalc_calculator_chains_total{good="Bread",optimized="false"} 1`)
	assert.Contains(t, string(data), "annocalc_calculator_query_duration_seconds_bucket")
}

func TestRegistry_Disabled(t *testing.T) {
	var registry *Registry

	assert.False(t, registry.IsEnabled())
	assert.Equal(t, DefaultNamespace, registry.Namespace())
	assert.NoError(t, registry.Register(NewQueryMetricsCollector(DefaultNamespace).queriesTotal))
	assert.NoError(t, registry.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))

	families, err := registry.Gatherer().Gather()
	assert.NoError(t, err)
	assert.Empty(t, families)
}

func TestRegistry_RejectsDuplicateRegistration(t *testing.T) {
	registry := NewRegistry("anno")
	collector := NewQueryMetricsCollector(registry.Namespace())
	require.NoError(t, collector.Register(registry))

	assert.Error(t, NewQueryMetricsCollector(registry.Namespace()).Register(registry))
}
