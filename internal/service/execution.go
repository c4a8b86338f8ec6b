package service

import (
	"log/slog"
	"time"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/efreitasn/metaexchange/internal/engine"
	"github.com/efreitasn/metaexchange/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExecuteRequest represents the input for a best-execution estimate.
type ExecuteRequest struct {
	OrderType string
	Amount    decimal.Decimal
}

// ExecutionResponse wraps an execution result with the identity of the run.
type ExecutionResponse struct {
	ExecutionID string
	ExecutedAt  time.Time
	Result      domain.ExecutionResult
}

// ExecutionService validates execution requests and runs them against the
// current venue snapshot.
type ExecutionService struct {
	venues   *store.VenueStore
	executor *engine.Executor
	logger   *slog.Logger
}

// NewExecutionService creates a new ExecutionService with the given dependencies.
func NewExecutionService(venues *store.VenueStore, executor *engine.Executor, logger *slog.Logger) *ExecutionService {
	return &ExecutionService{
		venues:   venues,
		executor: executor,
		logger:   logger,
	}
}

// Execute validates the request and computes the best execution against the
// loaded snapshot. Execution outcomes such as a partial fill are reported on
// the result, not as errors.
func (s *ExecutionService) Execute(req ExecuteRequest) (*ExecutionResponse, error) {
	side, ok := domain.ParseSide(req.OrderType)
	if !ok {
		return nil, &domain.ValidationError{
			Message: "Order type must be either 'buy' or 'sell'.",
		}
	}
	if !req.Amount.IsPositive() {
		return nil, &domain.ValidationError{
			Message: "BTC amount must be greater than 0.",
		}
	}

	venues, err := s.venues.Snapshot()
	if err != nil {
		return nil, err
	}

	result := s.executor.Execute(side, req.Amount, venues)
	resp := &ExecutionResponse{
		ExecutionID: uuid.New().String(),
		ExecutedAt:  time.Now().UTC(),
		Result:      result,
	}

	s.logger.Info("execution computed",
		slog.String("execution_id", resp.ExecutionID),
		slog.String("side", string(side)),
		slog.String("requested", req.Amount.String()),
		slog.String("outcome", string(result.Outcome)),
		slog.Int("fills", len(result.Fills)),
		slog.String("filled", result.Summary.FilledQuantity.String()),
	)

	return resp, nil
}
