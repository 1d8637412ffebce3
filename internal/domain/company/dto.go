package company

type CompanyResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	DefaultCurrency string `json:"default_currency"`
	CreatedAt       string `json:"created_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:              c.ID,
		Name:            c.Name,
		Country:         c.Country,
		DefaultCurrency: c.DefaultCurrency,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
