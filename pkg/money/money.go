// Package money da formato a los montos que muestra el panel.
// Los montos nunca se asumen enteros (centavos): siempre se redondean a dos decimales.
package money

import "github.com/shopspring/decimal"

// Symbol prefijo monetario usado en el panel.
const Symbol = "$"

// Format devuelve el monto con símbolo y dos decimales fijos, ej: "$1234.50".
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + Symbol + d.Neg().StringFixed(2)
	}
	return Symbol + d.StringFixed(2)
}

// Fixed devuelve el monto con dos decimales fijos, sin símbolo.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
