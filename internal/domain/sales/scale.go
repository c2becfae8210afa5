package sales

import "github.com/shopspring/decimal"

// Escala de las columnas NUMERIC: dinero (14,2) y cantidades (14,3).
const (
	MoneyPlaces    int32 = 2
	QuantityPlaces int32 = 3
)

// FitsScale informa si d se guarda sin redondeo con la cantidad de decimales dada.
// Ceros a la derecha no cuentan: 10.000 cabe en dos decimales.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// IsMoney informa si d cabe en una columna de dinero.
func IsMoney(d decimal.Decimal) bool { return FitsScale(d, MoneyPlaces) }

// IsQuantity informa si d cabe en una columna de cantidad.
func IsQuantity(d decimal.Decimal) bool { return FitsScale(d, QuantityPlaces) }
