package handler

import (
	"net/http"
	"time"

	"github.com/efreitasn/metaexchange/internal/service"
	"github.com/shopspring/decimal"
)

// ExecutionHandler handles HTTP requests for trade execution.
type ExecutionHandler struct {
	execSvc *service.ExecutionService
}

// NewExecutionHandler creates a new ExecutionHandler.
func NewExecutionHandler(execSvc *service.ExecutionService) *ExecutionHandler {
	return &ExecutionHandler{execSvc: execSvc}
}

// executeRequest is the JSON request body for POST /api/trade/execute.
// Amount accepts a JSON number or a decimal string.
type executeRequest struct {
	OrderType string          `json:"orderType"`
	Amount    decimal.Decimal `json:"amount"`
}

// fillResponse is a single fill in the execution response.
type fillResponse struct {
	Exchange    string          `json:"exchange"`
	Action      string          `json:"action"`
	BTCAmount   decimal.Decimal `json:"btc_amount"`
	PricePerBTC decimal.Decimal `json:"price_per_btc"`
	TotalEUR    decimal.Decimal `json:"total_eur"`
}

// summaryResponse aggregates the fills of an execution.
type summaryResponse struct {
	BTCVolume       decimal.Decimal `json:"btc_volume"`
	AverageBTCPrice decimal.Decimal `json:"average_btc_price"`
	TotalEUR        decimal.Decimal `json:"total_eur"`
}

// executionResponse is the JSON response for POST /api/trade/execute.
// Every outcome, including partial and failed executions, is a 200.
type executionResponse struct {
	ExecutionID  string          `json:"execution_id"`
	ExecutedAt   string          `json:"executed_at"`
	OrderType    string          `json:"order_type"`
	RequestedBTC decimal.Decimal `json:"requested_btc"`
	Execution    []fillResponse  `json:"execution"`
	Summary      summaryResponse `json:"summary"`
	Success      bool            `json:"success"`
	Outcome      string          `json:"outcome"`
	ErrorMessage *string         `json:"error_message"`
}

// Execute handles POST /api/trade/execute.
func (h *ExecutionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := h.execSvc.Execute(service.ExecuteRequest{
		OrderType: req.OrderType,
		Amount:    req.Amount,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toExecutionResponse(resp))
}

func toExecutionResponse(resp *service.ExecutionResponse) executionResponse {
	res := resp.Result

	fills := make([]fillResponse, len(res.Fills))
	for i, f := range res.Fills {
		fills[i] = fillResponse{
			Exchange:    f.VenueID,
			Action:      f.Side.Title(),
			BTCAmount:   f.Quantity,
			PricePerBTC: f.Price,
			TotalEUR:    f.Cost,
		}
	}

	out := executionResponse{
		ExecutionID:  resp.ExecutionID,
		ExecutedAt:   resp.ExecutedAt.UTC().Format(time.RFC3339Nano),
		OrderType:    string(res.Request.Side),
		RequestedBTC: res.Request.Quantity,
		Execution:    fills,
		Summary: summaryResponse{
			BTCVolume:       res.Summary.FilledQuantity,
			AverageBTCPrice: res.Summary.AveragePrice,
			TotalEUR:        res.Summary.TotalFlow,
		},
		Success: res.Success,
		Outcome: string(res.Outcome),
	}
	if res.Message != "" {
		msg := res.Message
		out.ErrorMessage = &msg
	}
	return out
}

