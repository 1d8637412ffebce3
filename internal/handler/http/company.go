package http

import (
	"net/http"

	"github.com/expenseflow/expense-backend-go/internal/domain/company"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/middleware"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Get implements CompanyHandler. Always scoped to the caller's own company.
func (h *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	_, companyID, _, err := middleware.Claims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	companyData, err := h.companyService.GetCompany(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyData)
}
