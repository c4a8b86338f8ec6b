package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/efreitasn/metaexchange/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a snapshot file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the snapshot format from a file extension.
// Anything other than .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// timeLayouts are the accepted timestamp layouts. Timestamps without a zone
// are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// snapshotFile is the object form of a snapshot. A snapshot may also be a
// bare array of exchanges.
type snapshotFile struct {
	CryptoExchanges []exchangeRecord `json:"cryptoExchanges" yaml:"cryptoExchanges"`
}

type exchangeRecord struct {
	Identifier string           `json:"Identifier" yaml:"Identifier"`
	Balances   balancesRecord   `json:"Balances" yaml:"Balances"`
	OrderBook  *orderBookRecord `json:"OrderBook" yaml:"OrderBook"`
}

type balancesRecord struct {
	EUR decimal.Decimal `json:"EUR" yaml:"EUR"`
	BTC decimal.Decimal `json:"BTC" yaml:"BTC"`
}

type orderBookRecord struct {
	AcqTime string       `json:"AcqTime" yaml:"AcqTime"`
	Bids    []orderEntry `json:"Bids" yaml:"Bids"`
	Asks    []orderEntry `json:"Asks" yaml:"Asks"`
}

type orderRecord struct {
	ID     *string         `json:"Id" yaml:"Id"`
	Time   string          `json:"Time" yaml:"Time"`
	Type   string          `json:"Type" yaml:"Type"`
	Kind   string          `json:"Kind" yaml:"Kind"`
	Amount decimal.Decimal `json:"Amount" yaml:"Amount"`
	Price  decimal.Decimal `json:"Price" yaml:"Price"`
}

// orderEntry is a book entry, either wrapped as {"Order": {...}} or flat.
type orderEntry struct {
	orderRecord
}

func (e *orderEntry) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Order *orderRecord `json:"Order"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Order != nil {
		e.orderRecord = *wrapped.Order
		return nil
	}
	return json.Unmarshal(data, &e.orderRecord)
}

func (e *orderEntry) UnmarshalYAML(node *yaml.Node) error {
	var wrapped struct {
		Order *orderRecord `yaml:"Order"`
	}
	if err := node.Decode(&wrapped); err != nil {
		return err
	}
	if wrapped.Order != nil {
		e.orderRecord = *wrapped.Order
		return nil
	}
	return node.Decode(&e.orderRecord)
}

// LoadSnapshot reads and validates the venue snapshot at path.
func LoadSnapshot(path string) ([]domain.Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return DecodeSnapshot(f, FormatForPath(path))
}

// DecodeSnapshot decodes and validates a venue snapshot. Validation errors
// wrap domain.ErrInvalidSnapshot.
func DecodeSnapshot(r io.Reader, format Format) ([]domain.Venue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var records []exchangeRecord
	switch format {
	case FormatYAML:
		records, err = decodeYAML(data)
	default:
		records, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}

	return toVenues(records)
}

func decodeJSON(data []byte) ([]exchangeRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []exchangeRecord
		err := json.Unmarshal(trimmed, &records)
		return records, err
	}
	var file snapshotFile
	err := json.Unmarshal(trimmed, &file)
	return file.CryptoExchanges, err
}

func decodeYAML(data []byte) ([]exchangeRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var records []exchangeRecord
		err := doc.Decode(&records)
		return records, err
	}
	var file snapshotFile
	err := doc.Decode(&file)
	return file.CryptoExchanges, err
}

// toVenues converts decoded records into venues, rejecting duplicate or
// empty identifiers, negative balances, and orders without a positive price
// and amount.
func toVenues(records []exchangeRecord) ([]domain.Venue, error) {
	venues := make([]domain.Venue, 0, len(records))
	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		id := strings.TrimSpace(rec.Identifier)
		if id == "" {
			return nil, fmt.Errorf("%w: exchange %d has no identifier", domain.ErrInvalidSnapshot, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate exchange identifier %q", domain.ErrInvalidSnapshot, id)
		}
		seen[id] = true

		if rec.Balances.EUR.IsNegative() || rec.Balances.BTC.IsNegative() {
			return nil, fmt.Errorf("%w: exchange %q has a negative balance", domain.ErrInvalidSnapshot, id)
		}

		v := domain.Venue{
			ID: id,
			Balance: domain.Balance{
				Quote: rec.Balances.EUR,
				Asset: rec.Balances.BTC,
			},
		}

		if rec.OrderBook != nil {
			book, err := toOrderBook(id, rec.OrderBook)
			if err != nil {
				return nil, err
			}
			v.Book = book
		}

		venues = append(venues, v)
	}

	return venues, nil
}

func toOrderBook(venueID string, rec *orderBookRecord) (*domain.OrderBook, error) {
	book := &domain.OrderBook{}

	if acq, err := parseTime(rec.AcqTime); err != nil {
		return nil, fmt.Errorf("%w: exchange %q: AcqTime: %v", domain.ErrInvalidSnapshot, venueID, err)
	} else if acq != nil {
		book.AcquiredAt = *acq
	}

	var err error
	if book.Bids, err = toOrders(venueID, "bid", domain.SideBuy, rec.Bids); err != nil {
		return nil, err
	}
	if book.Asks, err = toOrders(venueID, "ask", domain.SideSell, rec.Asks); err != nil {
		return nil, err
	}
	return book, nil
}

func toOrders(venueID, label string, side domain.Side, entries []orderEntry) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(entries))
	for i, e := range entries {
		if e.Type != "" {
			if parsed, ok := domain.ParseSide(e.Type); !ok || parsed != side {
				return nil, fmt.Errorf("%w: exchange %q: %s %d has type %q",
					domain.ErrInvalidSnapshot, venueID, label, i, e.Type)
			}
		}
		if !e.Price.IsPositive() || !e.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: exchange %q: %s %d must have a positive price and amount",
				domain.ErrInvalidSnapshot, venueID, label, i)
		}
		ts, err := parseTime(e.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: exchange %q: %s %d: %v", domain.ErrInvalidSnapshot, venueID, label, i, err)
		}

		kind := e.Kind
		if kind == "" {
			kind = domain.OrderKindLimit
		}

		orders = append(orders, domain.Order{
			ID:       e.ID,
			Time:     ts,
			Side:     side,
			Kind:     kind,
			Quantity: e.Amount,
			Price:    e.Price,
		})
	}
	return orders, nil
}

// parseTime parses a snapshot timestamp. Empty values and the zero time
// mean "no timestamp" and yield nil.
func parseTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			if t.IsZero() {
				return nil, nil
			}
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", s)
}
