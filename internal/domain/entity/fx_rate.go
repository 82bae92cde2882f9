package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate es una tasa de cambio publicada para un par de monedas a una fecha.
// Una vez referenciada por un BudgetItem es inmutable en la práctica: el ítem
// guarda la identidad de la fila y su usd_amount nunca cambia aunque se
// publiquen tasas nuevas para el mismo par/fecha.
type FxRate struct {
	ID         string
	AsOfDate   time.Time
	FromCcy    string
	ToCcy      string
	Rate       decimal.Decimal
	SourceNote *string
	CreatedBy  string
	CreatedAt  time.Time
}
