package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
	"github.com/andrescamacho/annocalc-go/internal/application/production/queries"
)

// PrometheusMiddleware creates a middleware that records query execution metrics
//
// This middleware wraps all query execution and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
// - Chain size of every successful calculation (when chains is non-nil)
//
// Query names are extracted via reflection and simplified to remove package prefixes.
// For example: "*queries.CalculateChainQuery" becomes "CalculateChainQuery"
func PrometheusMiddleware(collector *QueryMetricsCollector, chains *ChainMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		queryName := extractQueryName(request)
		start := time.Now()

		response, err := next(ctx, request)

		duration := time.Since(start).Seconds()
		collector.RecordQueryExecution(queryName, duration, err == nil)

		if err == nil && chains != nil {
			recordChains(chains, request, response)
		}

		return response, err
	}
}

func recordChains(chains *ChainMetricsCollector, request mediator.Request, response mediator.Response) {
	switch resp := response.(type) {
	case *queries.CalculateChainResponse:
		optimized := false
		if query, ok := request.(*queries.CalculateChainQuery); ok {
			optimized = query.Optimized
		}
		chains.RecordChain(resp.Root, optimized)
	case *queries.CompareScenariosResponse:
		chains.RecordChain(resp.Base, false)
		chains.RecordChain(resp.Optimized, true)
	}
}

// extractQueryName extracts a clean query name from the request using reflection
// Examples:
//   - "*queries.CalculateChainQuery" → "CalculateChainQuery"
//   - "queries.CompareScenariosQuery" → "CompareScenariosQuery"
func extractQueryName(request mediator.Request) string {
	if request == nil {
		return "UnknownQuery"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
