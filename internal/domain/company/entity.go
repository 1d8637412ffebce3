package company

import "time"

// Company holds the tenant boundary. DefaultCurrency is set once at signup
// from the selected country and never changes afterwards.
type Company struct {
	ID              string
	Name            string
	Country         string
	DefaultCurrency string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
