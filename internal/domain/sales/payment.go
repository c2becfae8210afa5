package sales

import "github.com/shopspring/decimal"

// ClampPayment aplica un abono sobre la deuda actual: nunca cobra de más ni deja deuda negativa.
func ClampPayment(debt, amount decimal.Decimal) (paid, newDebt decimal.Decimal) {
	paid = decimal.Min(amount, debt)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	newDebt = debt.Sub(paid)
	if newDebt.IsNegative() {
		newDebt = decimal.Zero
	}
	return paid, newDebt
}

