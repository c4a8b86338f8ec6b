package handler

import (
	"net/http"
	"strconv"

	"github.com/efreitasn/metaexchange/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// VenueHandler handles HTTP requests for venue and snapshot endpoints.
type VenueHandler struct {
	venueSvc *service.VenueService
}

// NewVenueHandler creates a new VenueHandler.
func NewVenueHandler(venueSvc *service.VenueService) *VenueHandler {
	return &VenueHandler{venueSvc: venueSvc}
}

type balanceResponse struct {
	EUR decimal.Decimal `json:"EUR"`
	BTC decimal.Decimal `json:"BTC"`
}

// venueResponse is the JSON representation of a venue summary.
type venueResponse struct {
	VenueID    string           `json:"venue_id"`
	Balances   balanceResponse  `json:"balances"`
	BestBid    *decimal.Decimal `json:"best_bid"`
	BestAsk    *decimal.Decimal `json:"best_ask"`
	BidCount   int              `json:"bid_count"`
	AskCount   int              `json:"ask_count"`
	AcquiredAt *string          `json:"acquired_at"`
}

// listVenuesResponse is the JSON response for GET /api/venues.
type listVenuesResponse struct {
	Data []venueResponse `json:"data"`
}

// bookLevelResponse is a single price level in the book response.
type bookLevelResponse struct {
	Price         decimal.Decimal `json:"price"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	OrderCount    int             `json:"order_count"`
}

// bookResponse is the JSON response for GET /api/venues/{venue_id}/book.
type bookResponse struct {
	VenueID    string              `json:"venue_id"`
	Bids       []bookLevelResponse `json:"bids"`
	Asks       []bookLevelResponse `json:"asks"`
	Spread     *decimal.Decimal    `json:"spread"`
	AcquiredAt *string             `json:"acquired_at"`
}

// reloadResponse is the JSON response for POST /api/snapshot/reload.
type reloadResponse struct {
	Path       string `json:"path"`
	VenueCount int    `json:"venue_count"`
	LoadedAt   string `json:"loaded_at"`
}

// List handles GET /api/venues.
func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueSvc.List()
	if err != nil {
		mapError(w, err)
		return
	}

	data := make([]venueResponse, len(venues))
	for i := range venues {
		data[i] = toVenueResponse(&venues[i])
	}

	WriteJSON(w, http.StatusOK, listVenuesResponse{Data: data})
}

// Get handles GET /api/venues/{venue_id}.
func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venue_id")

	venue, err := h.venueSvc.Get(venueID)
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toVenueResponse(venue))
}

// GetBook handles GET /api/venues/{venue_id}/book.
func (h *VenueHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venue_id")

	// Parse depth query param (default 10, max 50).
	depth := 10
	if d := r.URL.Query().Get("depth"); d != "" {
		var err error
		depth, err = strconv.Atoi(d)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "depth must be a valid integer")
			return
		}
	}

	book, err := h.venueSvc.GetBook(venueID, depth)
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, bookResponse{
		VenueID:    book.VenueID,
		Bids:       toBookLevels(book.Bids),
		Asks:       toBookLevels(book.Asks),
		Spread:     book.Spread,
		AcquiredAt: formatTime(book.AcquiredAt),
	})
}

// Reload handles POST /api/snapshot/reload.
func (h *VenueHandler) Reload(w http.ResponseWriter, r *http.Request) {
	resp, err := h.venueSvc.Reload()
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, reloadResponse{
		Path:       resp.Path,
		VenueCount: resp.VenueCount,
		LoadedAt:   *formatTime(&resp.LoadedAt),
	})
}

func toVenueResponse(v *service.VenueSummary) venueResponse {
	return venueResponse{
		VenueID: v.ID,
		Balances: balanceResponse{
			EUR: v.Balance.Quote,
			BTC: v.Balance.Asset,
		},
		BestBid:    v.BestBid,
		BestAsk:    v.BestAsk,
		BidCount:   v.BidCount,
		AskCount:   v.AskCount,
		AcquiredAt: formatTime(v.AcquiredAt),
	}
}

func toBookLevels(levels []service.BookPriceLevel) []bookLevelResponse {
	out := make([]bookLevelResponse, len(levels))
	for i, l := range levels {
		out[i] = bookLevelResponse{
			Price:         l.Price,
			TotalQuantity: l.TotalQuantity,
			OrderCount:    l.OrderCount,
		}
	}
	return out
}
