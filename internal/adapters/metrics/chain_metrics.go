package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/annocalc-go/internal/domain/production"
)

// ChainMetricsCollector records the size of calculated production chains
type ChainMetricsCollector struct {
	chainsTotal    *prometheus.CounterVec
	chainBuildings *prometheus.GaugeVec
	chainWorkforce *prometheus.GaugeVec
	chainDepth     *prometheus.GaugeVec
	buildingCount  *prometheus.GaugeVec
}

// NewChainMetricsCollector creates a new chain metrics collector
func NewChainMetricsCollector(namespace string) *ChainMetricsCollector {
	return &ChainMetricsCollector{
		chainsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chains_total",
				Help:      "Total number of production chains calculated",
			},
			[]string{"good", "optimized"},
		),
		chainBuildings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chain_buildings",
				Help:      "Total buildings in the last chain calculated for a good",
			},
			[]string{"good", "optimized"},
		),
		chainWorkforce: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chain_workforce",
				Help:      "Workforce of the last chain calculated for a good, by type",
			},
			[]string{"good", "optimized", "workforce_type"},
		),
		chainDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chain_depth",
				Help:      "Depth of the last chain calculated for a good",
			},
			[]string{"good", "optimized"},
		),
		buildingCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "building_count",
				Help:      "Buildings of each type in the last chain calculated for a good",
			},
			[]string{"good", "optimized", "building"},
		),
	}
}

// Register registers all chain metrics with the registry
func (c *ChainMetricsCollector) Register(registry *Registry) error {
	return registry.Register(
		c.chainsTotal,
		c.chainBuildings,
		c.chainWorkforce,
		c.chainDepth,
		c.buildingCount,
	)
}

// RecordChain records the totals of a resolved chain
func (c *ChainMetricsCollector) RecordChain(root *production.ChainNode, optimized bool) {
	if root == nil {
		return
	}
	opt := strconv.FormatBool(optimized)

	c.chainsTotal.WithLabelValues(root.Good, opt).Inc()
	c.chainBuildings.WithLabelValues(root.Good, opt).Set(float64(root.TotalBuildings()))
	c.chainDepth.WithLabelValues(root.Good, opt).Set(float64(root.TotalDepth()))

	for workforceType, count := range root.WorkforceByType() {
		c.chainWorkforce.WithLabelValues(root.Good, opt, workforceType).Set(float64(count))
	}
	for building, count := range root.BuildingsByType() {
		c.buildingCount.WithLabelValues(root.Good, opt, building).Set(float64(count))
	}
}
