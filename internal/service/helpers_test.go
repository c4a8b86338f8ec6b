package service

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/efreitasn/metaexchange/internal/engine"
	"github.com/efreitasn/metaexchange/internal/store"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func order(side domain.Side, qty, price string) domain.Order {
	return domain.Order{
		Side:     side,
		Kind:     domain.OrderKindLimit,
		Quantity: dec(qty),
		Price:    dec(price),
	}
}

// testVenues is a two-venue snapshot: A is cheaper but holds little EUR.
func testVenues() []domain.Venue {
	return []domain.Venue{
		{
			ID:      "A",
			Balance: domain.Balance{Quote: dec("3000"), Asset: dec("1")},
			Book: &domain.OrderBook{
				Bids: []domain.Order{order(domain.SideBuy, "0.5", "2900"), order(domain.SideBuy, "0.5", "2900"), order(domain.SideBuy, "1", "2800")},
				Asks: []domain.Order{order(domain.SideSell, "1", "3000"), order(domain.SideSell, "1", "3100")},
			},
		},
		{
			ID:      "B",
			Balance: domain.Balance{Quote: dec("100000"), Asset: dec("0")},
			Book: &domain.OrderBook{
				Bids: []domain.Order{order(domain.SideBuy, "2", "2950")},
				Asks: []domain.Order{order(domain.SideSell, "2", "3050")},
			},
		},
	}
}

type testEnv struct {
	store    *store.VenueStore
	execSvc  *ExecutionService
	venueSvc *VenueService
}

func newTestEnv(t *testing.T, venues []domain.Venue) *testEnv {
	t.Helper()
	vs := store.NewVenueStore()
	if venues != nil {
		if err := vs.Replace(venues); err != nil {
			t.Fatalf("failed to load venues: %v", err)
		}
	}
	logger := discardLogger()
	return &testEnv{
		store:    vs,
		execSvc:  NewExecutionService(vs, engine.NewExecutor(1000, nil), logger),
		venueSvc: NewVenueService(vs, filepath.Join(t.TempDir(), "snapshot.json"), logger),
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func decFromInt(i int) decimal.Decimal {
	return decimal.NewFromInt(int64(i))
}
