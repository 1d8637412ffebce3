package ocr

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedScanner_Scan(t *testing.T) {
	scanner := NewSimulatedScannerWithSeed(42)

	result, err := scanner.Scan(context.Background(), strings.NewReader("fake receipt bytes"))
	require.NoError(t, err)

	assert.True(t, result.Amount.GreaterThanOrEqual(decimal.NewFromInt(10)))
	assert.True(t, result.Amount.LessThan(decimal.NewFromInt(510)))
	assert.Equal(t, "USD", result.Currency)
	assert.Contains(t, []string{"Travel", "Food", "Supplies", "Entertainment"}, result.Category)
	assert.Equal(t, "Auto-generated from receipt", result.Description)
	assert.Equal(t, time.Now().Format("2006-01-02"), result.Date)
	assert.Equal(t, "Sample Merchant", result.Merchant)
}

func TestSimulatedScanner_Deterministic(t *testing.T) {
	first, err := NewSimulatedScannerWithSeed(7).Scan(context.Background(), strings.NewReader("a"))
	require.NoError(t, err)

	second, err := NewSimulatedScannerWithSeed(7).Scan(context.Background(), strings.NewReader("b"))
	require.NoError(t, err)

	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Category, second.Category)
}
