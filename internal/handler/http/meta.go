package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/expenseflow/expense-backend-go/internal/handler/http/response"
	"github.com/expenseflow/expense-backend-go/internal/pkg/countries"
	"github.com/expenseflow/expense-backend-go/internal/pkg/exchange"
)

type MetaHandler interface {
	ListCountries(w http.ResponseWriter, r *http.Request)
	GetRates(w http.ResponseWriter, r *http.Request)
}

type MetaHandlerImpl struct {
	countriesClient countries.Client
	exchangeClient  exchange.Client
}

func NewMetaHandler(countriesClient countries.Client, exchangeClient exchange.Client) MetaHandler {
	return &MetaHandlerImpl{
		countriesClient: countriesClient,
		exchangeClient:  exchangeClient,
	}
}

// ListCountries implements MetaHandler. Used by the signup form to pick a
// country and derive the company currency.
func (h *MetaHandlerImpl) ListCountries(w http.ResponseWriter, r *http.Request) {
	list, err := h.countriesClient.List(r.Context())
	if err != nil {
		slog.Error("List countries upstream error", "error", err)
		response.BadGateway(w, "Country list unavailable")
		return
	}

	response.Success(w, list)
}

// GetRates implements MetaHandler. Proxies the latest rates for a base
// currency.
func (h *MetaHandlerImpl) GetRates(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "base")

	rates, err := h.exchangeClient.LatestRates(r.Context(), base)
	if err != nil {
		slog.Error("Get rates upstream error", "error", err, "base", base)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}
