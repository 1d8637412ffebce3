package ocr

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the structured guess extracted from a receipt, used to prefill the
// expense form.
type Result struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Merchant    string          `json:"merchant"`
}

type Scanner interface {
	// Scan extracts expense fields from an uploaded receipt.
	Scan(ctx context.Context, receipt io.Reader) (Result, error)
}

var categories = []string{"Travel", "Food", "Supplies", "Entertainment"}

// SimulatedScanner mimics a real OCR provider with randomized output.
// It consumes the upload but never stores it.
type SimulatedScanner struct {
	rng *rand.Rand
}

func NewSimulatedScanner() *SimulatedScanner {
	return &SimulatedScanner{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSimulatedScannerWithSeed returns a scanner with deterministic output.
func NewSimulatedScannerWithSeed(seed int64) *SimulatedScanner {
	return &SimulatedScanner{rng: rand.New(rand.NewSource(seed))}
}

func (s *SimulatedScanner) Scan(ctx context.Context, receipt io.Reader) (Result, error) {
	if _, err := io.Copy(io.Discard, receipt); err != nil {
		return Result{}, err
	}

	return Result{
		Amount:      decimal.NewFromInt(int64(s.rng.Intn(500) + 10)),
		Currency:    "USD",
		Category:    categories[s.rng.Intn(len(categories))],
		Description: "Auto-generated from receipt",
		Date:        time.Now().Format("2006-01-02"),
		Merchant:    "Sample Merchant",
	}, nil
}
