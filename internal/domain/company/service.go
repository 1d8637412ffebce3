package company

import "context"

type CompanyService interface {
	GetCompany(ctx context.Context, id string) (CompanyResponse, error)
}
