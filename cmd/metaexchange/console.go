package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/efreitasn/metaexchange/internal/service"
	"github.com/shopspring/decimal"
)

var rule = strings.Repeat("-", 80)

// prompter asks for missing console inputs until a valid value is entered.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) side() (string, error) {
	for {
		fmt.Fprintln(p.out, "Enter the order type (buy/sell):")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if _, ok := domain.ParseSide(line); ok {
			return line, nil
		}
		fmt.Fprintln(p.out, "Invalid order type. Please enter 'buy' or 'sell'.")
	}
}

func (p *prompter) amount() (decimal.Decimal, error) {
	for {
		fmt.Fprintln(p.out, "Enter the amount of BTC to trade (positive decimal):")
		line, err := p.readLine()
		if err != nil {
			return decimal.Zero, err
		}
		if d, err := decimal.NewFromString(line); err == nil && d.IsPositive() {
			return d, nil
		}
		fmt.Fprintln(p.out, "Invalid BTC amount. Please enter a valid positive decimal.")
	}
}

func (p *prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// runConsole executes a single request and prints the result to out.
// Missing side or amount values are read from in.
func runConsole(svc *service.ExecutionService, side, amount string, in io.Reader, out io.Writer) error {
	p := newPrompter(in, out)

	var err error
	if side == "" {
		if side, err = p.side(); err != nil {
			return fmt.Errorf("failed to read order type: %w", err)
		}
	}

	var qty decimal.Decimal
	if amount == "" {
		if qty, err = p.amount(); err != nil {
			return fmt.Errorf("failed to read BTC amount: %w", err)
		}
	} else if qty, err = decimal.NewFromString(amount); err != nil {
		return &domain.ValidationError{Message: "BTC amount must be a decimal number."}
	}

	resp, err := svc.Execute(service.ExecuteRequest{OrderType: side, Amount: qty})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(out, "Error Message: %s\n", ve.Message)
		}
		return err
	}

	printResult(out, resp.Result)
	return nil
}

// printResult writes the execution summary. Results without fills only
// print their message.
func printResult(w io.Writer, res domain.ExecutionResult) {
	if len(res.Fills) == 0 {
		if res.Message != "" {
			fmt.Fprintf(w, "Error Message: %s\n", res.Message)
		} else {
			fmt.Fprintln(w, "Trade could not be executed.")
		}
		return
	}

	flowLabel, volumeLabel := "Total Cost EUR", "Total BTC Acquired"
	if res.Request.Side == domain.SideSell {
		flowLabel, volumeLabel = "Total Proceeds EUR", "Total BTC Sold"
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Order Execution Summary")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Order Type: %s\n", res.Request.Side.Title())
	fmt.Fprintf(w, "BTC Amount requested: %s\n", res.Request.Quantity.StringFixed(domain.QuantityPlaces))

	fmt.Fprintln(w, "\nExecution Details:")
	for _, f := range res.Fills {
		fmt.Fprintf(w, "- Exchange: %s\n", f.VenueID)
		fmt.Fprintf(w, "  Action: %s\n", f.Side.Title())
		fmt.Fprintf(w, "  BTC: %s\n", f.Quantity.StringFixed(domain.QuantityPlaces))
		fmt.Fprintf(w, "  Price per BTC: %s\n", f.Price.StringFixed(domain.PricePlaces))
		fmt.Fprintf(w, "  %s: %s\n\n", flowLabel, f.Cost.StringFixed(domain.PricePlaces))
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "%s: %s\n", volumeLabel, res.Summary.FilledQuantity.StringFixed(domain.QuantityPlaces))
	fmt.Fprintf(w, "Average BTC Price: %s\n", domain.RoundPrice(res.Summary.AveragePrice).StringFixed(domain.PricePlaces))
	fmt.Fprintf(w, "%s: %s\n", flowLabel, res.Summary.TotalFlow.StringFixed(domain.PricePlaces))
	fmt.Fprintln(w, rule)

	if res.Message != "" {
		fmt.Fprintf(w, "Error Message: %s\n", res.Message)
	}
}
