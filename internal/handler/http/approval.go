package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/middleware"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	GetRule(w http.ResponseWriter, r *http.Request)
	SaveRule(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	ruleService     approval.ApprovalRuleService
	decisionService expense.DecisionService
}

func NewApprovalHandler(ruleService approval.ApprovalRuleService, decisionService expense.DecisionService) ApprovalHandler {
	return &ApprovalHandlerImpl{
		ruleService:     ruleService,
		decisionService: decisionService,
	}
}

// GetRule implements ApprovalHandler.
func (h *ApprovalHandlerImpl) GetRule(w http.ResponseWriter, r *http.Request) {
	_, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rule, err := h.ruleService.GetRule(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rule)
}

// SaveRule implements ApprovalHandler.
func (h *ApprovalHandlerImpl) SaveRule(w http.ResponseWriter, r *http.Request) {
	_, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var saveReq approval.SaveRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		slog.Error("Save rule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := saveReq.Validate(); err != nil {
		slog.Error("Save rule validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	saved, err := h.ruleService.SaveRule(r.Context(), companyID, saveReq)
	if err != nil {
		slog.Error("Save rule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval rule saved successfully", saved)
}

// ListPending implements ApprovalHandler.
func (h *ApprovalHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	userID, _, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pending, err := h.decisionService.ListPendingApprovals(r.Context(), userID)
	if err != nil {
		slog.Error("List pending approvals service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// Approve implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// Reject implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *ApprovalHandlerImpl) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	userID, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	expenseID := chi.URLParam(r, "expenseID")

	var decisionReq expense.DecisionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
			slog.Error("Decision decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if approve {
		err = h.decisionService.Approve(r.Context(), companyID, expenseID, userID, decisionReq)
	} else {
		err = h.decisionService.Reject(r.Context(), companyID, expenseID, userID, decisionReq)
	}
	if err != nil {
		slog.Error("Decision service error", "error", err, "expense_id", expenseID)
		response.HandleError(w, err)
		return
	}

	if approve {
		response.SuccessWithMessage(w, "Expense approved", nil)
		return
	}
	response.SuccessWithMessage(w, "Expense rejected", nil)
}
