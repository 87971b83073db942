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

// CompareScenariosQuery resolves the same target with and without modifiers
type CompareScenariosQuery struct {
	Good string          `validate:"required"`
	Rate decimal.Decimal `validate:"gt=0"`
}

// CompareScenariosResponse carries both chains and what optimization saves
type CompareScenariosResponse struct {
	CalculationID string
	Base          *production.ChainNode
	Optimized     *production.ChainNode
	Comparison    services.ScenarioComparison
}

// CompareScenariosHandler handles the CompareScenarios query
type CompareScenariosHandler struct {
	resolver  *services.ChainResolver
	analyzer  *services.ChainAnalyzer
	validator *common.RequestValidator
}

// NewCompareScenariosHandler creates a new CompareScenariosHandler
func NewCompareScenariosHandler(resolver *services.ChainResolver, analyzer *services.ChainAnalyzer) *CompareScenariosHandler {
	return &CompareScenariosHandler{
		resolver:  resolver,
		analyzer:  analyzer,
		validator: common.NewRequestValidator(),
	}
}

// Handle executes the CompareScenarios query
func (h *CompareScenariosHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CompareScenariosQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompareScenariosQuery")
	}

	if err := h.validator.Validate(query); err != nil {
		return nil, err
	}

	base, err := h.resolver.Resolve(ctx, query.Good, query.Rate, false)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base chain for %s: %w", query.Good, err)
	}

	optimized, err := h.resolver.Resolve(ctx, query.Good, query.Rate, true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve optimized chain for %s: %w", query.Good, err)
	}

	comparison := h.analyzer.Compare(base, optimized)
	calculationID := utils.GenerateCalculationID("compare", query.Good)

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Scenarios compared", map[string]interface{}{
		"calculation_id":  calculationID,
		"good":            query.Good,
		"rate":            query.Rate.String(),
		"buildings_saved": comparison.BuildingsSaved,
		"workforce_saved": comparison.WorkforceSaved,
	})

	return &CompareScenariosResponse{
		CalculationID: calculationID,
		Base:          base,
		Optimized:     optimized,
		Comparison:    comparison,
	}, nil
}
