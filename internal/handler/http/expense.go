package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/middleware"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListCompany(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &ExpenseHandlerImpl{expenseService: expenseService}
}

// Submit implements ExpenseHandler.
func (h *ExpenseHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	userID, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq expense.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Submit expense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("Submit expense validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	detail, err := h.expenseService.Submit(r.Context(), companyID, userID, createReq)
	if err != nil {
		slog.Error("Submit expense service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense submitted successfully", detail)
}

// ListMine implements ExpenseHandler.
func (h *ExpenseHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	expenses, err := h.expenseService.ListMyExpenses(r.Context(), userID)
	if err != nil {
		slog.Error("List expenses service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, expenses)
}

// ListCompany implements ExpenseHandler. Admin view across the whole company.
func (h *ExpenseHandlerImpl) ListCompany(w http.ResponseWriter, r *http.Request) {
	_, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	expenses, err := h.expenseService.ListCompanyExpenses(r.Context(), companyID)
	if err != nil {
		slog.Error("List company expenses service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, expenses)
}

// Get implements ExpenseHandler.
func (h *ExpenseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	_, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	expenseID := chi.URLParam(r, "expenseID")
	detail, err := h.expenseService.GetExpense(r.Context(), companyID, expenseID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}
