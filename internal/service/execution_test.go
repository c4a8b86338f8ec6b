package service

import (
	"errors"
	"testing"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/google/uuid"
)

func TestExecute_Validation(t *testing.T) {
	env := newTestEnv(t, testVenues())

	tests := []struct {
		name    string
		req     ExecuteRequest
		wantMsg string
	}{
		{"unknown type", ExecuteRequest{OrderType: "hold", Amount: dec("1")}, "Order type must be either 'buy' or 'sell'."},
		{"empty type", ExecuteRequest{OrderType: "", Amount: dec("1")}, "Order type must be either 'buy' or 'sell'."},
		{"zero amount", ExecuteRequest{OrderType: "buy", Amount: dec("0")}, "BTC amount must be greater than 0."},
		{"negative amount", ExecuteRequest{OrderType: "sell", Amount: dec("-1")}, "BTC amount must be greater than 0."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.execSvc.Execute(tt.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Message != tt.wantMsg {
				t.Errorf("got message %q, want %q", ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestExecute_SnapshotNotLoaded(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.execSvc.Execute(ExecuteRequest{OrderType: "buy", Amount: dec("1")})
	if !errors.Is(err, domain.ErrSnapshotNotLoaded) {
		t.Errorf("expected ErrSnapshotNotLoaded, got %v", err)
	}
}

func TestExecute_Buy(t *testing.T) {
	env := newTestEnv(t, testVenues())

	resp, err := env.execSvc.Execute(ExecuteRequest{OrderType: "Buy", Amount: dec("1.5")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(resp.ExecutionID); err != nil {
		t.Errorf("execution id %q is not a uuid", resp.ExecutionID)
	}
	if resp.ExecutedAt.IsZero() {
		t.Error("executed_at should be set")
	}

	res := resp.Result
	if res.Outcome != domain.OutcomeFilled || !res.Success {
		t.Fatalf("got outcome %s success %v, want filled", res.Outcome, res.Success)
	}
	if len(res.Fills) != 2 {
		t.Fatalf("got %d fills, want 2", len(res.Fills))
	}
	// A can afford exactly 1 BTC at 3000; the rest comes from B at 3050.
	if res.Fills[0].VenueID != "A" || !res.Fills[0].Quantity.Equal(dec("1")) {
		t.Errorf("fill 0 = %+v, want 1 BTC on A", res.Fills[0])
	}
	if res.Fills[1].VenueID != "B" || !res.Fills[1].Quantity.Equal(dec("0.5")) {
		t.Errorf("fill 1 = %+v, want 0.5 BTC on B", res.Fills[1])
	}
	if !res.Summary.TotalFlow.Equal(dec("4525")) {
		t.Errorf("got total %s, want 4525", res.Summary.TotalFlow)
	}
}

func TestExecute_SellPartial(t *testing.T) {
	env := newTestEnv(t, testVenues())

	// Only A holds BTC, so at most 1 BTC can be sold.
	resp, err := env.execSvc.Execute(ExecuteRequest{OrderType: "sell", Amount: dec("3")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := resp.Result
	if res.Outcome != domain.OutcomePartial || res.Success {
		t.Fatalf("got outcome %s success %v, want partial", res.Outcome, res.Success)
	}
	if !res.Summary.FilledQuantity.Equal(dec("1")) {
		t.Errorf("got filled %s, want 1", res.Summary.FilledQuantity)
	}
	want := "Could only fulfill the order partially. only 1BTC sold."
	if res.Message != want {
		t.Errorf("got message %q, want %q", res.Message, want)
	}
}

func TestExecute_UniqueIDs(t *testing.T) {
	env := newTestEnv(t, testVenues())
	req := ExecuteRequest{OrderType: "buy", Amount: dec("0.1")}

	a, _ := env.execSvc.Execute(req)
	b, _ := env.execSvc.Execute(req)
	if a.ExecutionID == b.ExecutionID {
		t.Error("expected distinct execution ids")
	}
	if len(a.Result.Fills) != len(b.Result.Fills) || !a.Result.Summary.TotalFlow.Equal(b.Result.Summary.TotalFlow) {
		t.Error("identical requests produced different results")
	}
}
