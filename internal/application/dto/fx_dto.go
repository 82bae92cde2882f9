package dto

import "time"

// CreateFxRateRequest publicación de una tasa. Rate como string decimal.
type CreateFxRateRequest struct {
	AsOfDate   string  `json:"as_of_date"` // YYYY-MM-DD
	FromCcy    string  `json:"from_ccy"`
	ToCcy      string  `json:"to_ccy"`
	Rate       string  `json:"rate"`
	SourceNote *string `json:"source_note,omitempty"`
}

// FxRateFiltersRequest filtros de listado de tasas.
type FxRateFiltersRequest struct {
	FromCcy   string `query:"from_ccy"`
	ToCcy     string `query:"to_ccy"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// FxRateResponse proyección de una tasa.
type FxRateResponse struct {
	ID         string    `json:"id"`
	AsOfDate   time.Time `json:"as_of_date"`
	FromCcy    string    `json:"from_ccy"`
	ToCcy      string    `json:"to_ccy"`
	Rate       string    `json:"rate"`
	SourceNote *string   `json:"source_note,omitempty"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// CurrencyPairResponse par de monedas con tasas publicadas.
type CurrencyPairResponse struct {
	FromCcy string `json:"from_ccy"`
	ToCcy   string `json:"to_ccy"`
}
