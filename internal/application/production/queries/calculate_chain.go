package queries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/annocalc-go/internal/application/common"
	"github.com/andrescamacho/annocalc-go/internal/application/logging"
	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
	"github.com/andrescamacho/annocalc-go/internal/application/production/services"
	"github.com/andrescamacho/annocalc-go/internal/domain/production"
	"github.com/andrescamacho/annocalc-go/pkg/utils"
)

// CalculateChainQuery asks for the production chain sustaining Rate t/min of Good
type CalculateChainQuery struct {
	Good      string          `validate:"required"`
	Rate      decimal.Decimal `validate:"gt=0"`
	Optimized bool
}

// CalculateChainResponse carries the resolved tree and its aggregated totals
type CalculateChainResponse struct {
	CalculationID string
	Root          *production.ChainNode
	Summary       services.ChainSummary
}

// CalculateChainHandler handles the CalculateChain query
type CalculateChainHandler struct {
	resolver  *services.ChainResolver
	analyzer  *services.ChainAnalyzer
	validator *common.RequestValidator
}

// NewCalculateChainHandler creates a new CalculateChainHandler
func NewCalculateChainHandler(resolver *services.ChainResolver, analyzer *services.ChainAnalyzer) *CalculateChainHandler {
	return &CalculateChainHandler{
		resolver:  resolver,
		analyzer:  analyzer,
		validator: common.NewRequestValidator(),
	}
}

// Handle executes the CalculateChain query
func (h *CalculateChainHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CalculateChainQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CalculateChainQuery")
	}

	if err := h.validator.Validate(query); err != nil {
		return nil, err
	}

	calculationID := utils.GenerateCalculationID("chain", query.Good)
	logger := logging.LoggerFromContext(ctx)

	root, err := h.resolver.Resolve(ctx, query.Good, query.Rate, query.Optimized)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chain for %s: %w", query.Good, err)
	}

	summary := h.analyzer.Summarize(root)
	logger.Log(logging.LevelInfo, "Production chain calculated", map[string]interface{}{
		"calculation_id":  calculationID,
		"good":            query.Good,
		"rate":            query.Rate.String(),
		"optimized":       query.Optimized,
		"total_buildings": summary.TotalBuildings,
		"total_workforce": summary.TotalWorkforce,
	})

	return &CalculateChainResponse{
		CalculationID: calculationID,
		Root:          root,
		Summary:       summary,
	}, nil
}
