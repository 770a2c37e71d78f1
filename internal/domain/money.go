package domain

import "fmt"

const DefaultCurrency = "MAD"

// FormatPrice renders an amount with two decimals followed by the currency code.
func FormatPrice(amount float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}
