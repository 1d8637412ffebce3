package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseflow/expense-backend-go/internal/pkg/ocr"
)

func TestReceiptHandler_Scan(t *testing.T) {
	handler := NewReceiptHandler(ocr.NewSimulatedScannerWithSeed(1))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("receipt", "receipt.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.Scan(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool       `json:"success"`
		Data    ocr.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "USD", envelope.Data.Currency)
	assert.Equal(t, "Auto-generated from receipt", envelope.Data.Description)
	assert.True(t, envelope.Data.Amount.IsPositive())
}

func TestReceiptHandler_Scan_MissingFile(t *testing.T) {
	handler := NewReceiptHandler(ocr.NewSimulatedScannerWithSeed(1))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("unrelated", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/receipts/scan", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.Scan(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
