package http

import (
	"log/slog"
	"net/http"

	"github.com/expenseflow/expense-backend-go/internal/handler/http/response"
	"github.com/expenseflow/expense-backend-go/internal/pkg/ocr"
)

const maxReceiptSize = 10 << 20 // 10 MiB

type ReceiptHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
}

type ReceiptHandlerImpl struct {
	scanner ocr.Scanner
}

func NewReceiptHandler(scanner ocr.Scanner) ReceiptHandler {
	return &ReceiptHandlerImpl{scanner: scanner}
}

// Scan implements ReceiptHandler. Accepts a multipart receipt upload and
// returns extracted fields for prefilling the expense form. The file itself
// is not stored.
func (h *ReceiptHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		slog.Error("Receipt scan parse error", "error", err)
		response.BadRequest(w, "Invalid multipart upload", nil)
		return
	}

	file, _, err := r.FormFile("receipt")
	if err != nil {
		response.BadRequest(w, "Missing receipt file", nil)
		return
	}
	defer file.Close()

	result, err := h.scanner.Scan(r.Context(), file)
	if err != nil {
		slog.Error("Receipt scan error", "error", err)
		response.InternalServerError(w, "Failed to scan receipt")
		return
	}

	response.Success(w, result)
}
