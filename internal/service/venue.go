package service

import (
	"log/slog"
	"time"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/efreitasn/metaexchange/internal/engine"
	"github.com/efreitasn/metaexchange/internal/store"
	"github.com/shopspring/decimal"
)

// VenueSummary describes a venue's balances and the top of its book.
type VenueSummary struct {
	ID         string
	Balance    domain.Balance
	BestBid    *decimal.Decimal // nil when there are no eligible bids
	BestAsk    *decimal.Decimal // nil when there are no eligible asks
	BidCount   int
	AskCount   int
	AcquiredAt *time.Time
}

// BookPriceLevel is the aggregated quantity of a venue's orders at one price.
type BookPriceLevel struct {
	Price         decimal.Decimal
	TotalQuantity decimal.Decimal
	OrderCount    int
}

// BookResponse represents the response for GET /api/venues/{venue_id}/book.
type BookResponse struct {
	VenueID    string
	Bids       []BookPriceLevel
	Asks       []BookPriceLevel
	Spread     *decimal.Decimal // nil if either side empty
	AcquiredAt *time.Time
}

// ReloadResponse reports the result of a snapshot reload.
type ReloadResponse struct {
	Path       string
	VenueCount int
	LoadedAt   time.Time
}

// VenueService handles venue queries and snapshot reloads.
type VenueService struct {
	store        *store.VenueStore
	snapshotPath string
	logger       *slog.Logger
}

// NewVenueService creates a new VenueService. snapshotPath is the file read
// by Reload.
func NewVenueService(store *store.VenueStore, snapshotPath string, logger *slog.Logger) *VenueService {
	return &VenueService{
		store:        store,
		snapshotPath: snapshotPath,
		logger:       logger,
	}
}

// Reload reads the snapshot file and installs it. On failure the previous
// snapshot stays in place.
func (s *VenueService) Reload() (*ReloadResponse, error) {
	venues, err := store.LoadSnapshot(s.snapshotPath)
	if err != nil {
		s.logger.Error("snapshot load failed",
			slog.String("path", s.snapshotPath),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if err := s.store.Replace(venues); err != nil {
		return nil, err
	}

	resp := &ReloadResponse{
		Path:       s.snapshotPath,
		VenueCount: len(venues),
		LoadedAt:   s.store.LoadedAt(),
	}
	s.logger.Info("snapshot loaded",
		slog.String("path", s.snapshotPath),
		slog.Int("venues", resp.VenueCount),
	)
	return resp, nil
}

// List returns a summary of every venue in snapshot order.
func (s *VenueService) List() ([]VenueSummary, error) {
	venues, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}

	summaries := make([]VenueSummary, len(venues))
	for i, v := range venues {
		summaries[i] = summarize(v)
	}
	return summaries, nil
}

// Get returns the summary of a single venue.
func (s *VenueService) Get(venueID string) (*VenueSummary, error) {
	v, err := s.store.Get(venueID)
	if err != nil {
		return nil, err
	}
	summary := summarize(v)
	return &summary, nil
}

// GetBook returns the top depth price levels of a venue's book, best price
// first on each side.
func (s *VenueService) GetBook(venueID string, depth int) (*BookResponse, error) {
	if depth < 1 || depth > 50 {
		return nil, &domain.ValidationError{
			Message: "depth must be between 1 and 50",
		}
	}

	v, err := s.store.Get(venueID)
	if err != nil {
		return nil, err
	}

	resp := &BookResponse{
		VenueID: v.ID,
		Bids:    priceLevels(domain.SideSell, v, depth),
		Asks:    priceLevels(domain.SideBuy, v, depth),
	}
	if v.Book != nil && !v.Book.AcquiredAt.IsZero() {
		acq := v.Book.AcquiredAt
		resp.AcquiredAt = &acq
	}

	// Spread = best ask - best bid (null if either side empty).
	if len(resp.Bids) > 0 && len(resp.Asks) > 0 {
		spread := resp.Asks[0].Price.Sub(resp.Bids[0].Price)
		resp.Spread = &spread
	}

	return resp, nil
}

func summarize(v domain.Venue) VenueSummary {
	summary := VenueSummary{
		ID:      v.ID,
		Balance: v.Balance,
	}
	if v.Book == nil {
		return summary
	}

	summary.BidCount = len(v.Book.Bids)
	summary.AskCount = len(v.Book.Asks)
	if o, ok := v.Book.BestBid(); ok {
		summary.BestBid = &o.Price
	}
	if o, ok := v.Book.BestAsk(); ok {
		summary.BestAsk = &o.Price
	}
	if !v.Book.AcquiredAt.IsZero() {
		acq := v.Book.AcquiredAt
		summary.AcquiredAt = &acq
	}
	return summary
}

// priceLevels groups the orders a request on side would consume, in the
// order the engine would visit them, into at most depth price levels.
func priceLevels(side domain.Side, v domain.Venue, depth int) []BookPriceLevel {
	ranked := engine.Rank(side, engine.Aggregate(side, []domain.Venue{v}))

	levels := make([]BookPriceLevel, 0, depth)
	for _, c := range ranked {
		n := len(levels)
		if n > 0 && levels[n-1].Price.Equal(c.Order.Price) {
			levels[n-1].TotalQuantity = levels[n-1].TotalQuantity.Add(c.Order.Quantity)
			levels[n-1].OrderCount++
			continue
		}
		if n == depth {
			break
		}
		levels = append(levels, BookPriceLevel{
			Price:         c.Order.Price,
			TotalQuantity: c.Order.Quantity,
			OrderCount:    1,
		})
	}
	return levels
}

