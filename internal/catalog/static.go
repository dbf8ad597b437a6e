package catalog

import (
	"context"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"slices"
)

// defaultCurrencies is the built-in selection list; FlagKey is the ISO 3166 country code.
var defaultCurrencies = []domain.Currency{
	{Code: "AED", Name: "UAE Dirham", FlagKey: "AE"},
	{Code: "ARS", Name: "Argentine Peso", FlagKey: "AR"},
	{Code: "AUD", Name: "Australian Dollar", FlagKey: "AU"},
	{Code: "BRL", Name: "Brazilian Real", FlagKey: "BR"},
	{Code: "CAD", Name: "Canadian Dollar", FlagKey: "CA"},
	{Code: "CHF", Name: "Swiss Franc", FlagKey: "CH"},
	{Code: "CNY", Name: "Chinese Yuan", FlagKey: "CN"},
	{Code: "CZK", Name: "Czech Koruna", FlagKey: "CZ"},
	{Code: "DKK", Name: "Danish Krone", FlagKey: "DK"},
	{Code: "EGP", Name: "Egyptian Pound", FlagKey: "EG"},
	{Code: "EUR", Name: "Euro", FlagKey: "FR"},
	{Code: "GBP", Name: "British Pound", FlagKey: "GB"},
	{Code: "HKD", Name: "Hong Kong Dollar", FlagKey: "HK"},
	{Code: "IDR", Name: "Indonesian Rupiah", FlagKey: "ID"},
	{Code: "ILS", Name: "Israeli Shekel", FlagKey: "IL"},
	{Code: "INR", Name: "Indian Rupee", FlagKey: "IN"},
	{Code: "JPY", Name: "Japanese Yen", FlagKey: "JP"},
	{Code: "KRW", Name: "South Korean Won", FlagKey: "KR"},
	{Code: "MXN", Name: "Mexican Peso", FlagKey: "MX"},
	{Code: "MYR", Name: "Malaysian Ringgit", FlagKey: "MY"},
	{Code: "NGN", Name: "Nigerian Naira", FlagKey: "NG"},
	{Code: "NOK", Name: "Norwegian Krone", FlagKey: "NO"},
	{Code: "NZD", Name: "New Zealand Dollar", FlagKey: "NZ"},
	{Code: "PHP", Name: "Philippine Peso", FlagKey: "PH"},
	{Code: "PKR", Name: "Pakistani Rupee", FlagKey: "PK"},
	{Code: "PLN", Name: "Polish Zloty", FlagKey: "PL"},
	{Code: "SAR", Name: "Saudi Riyal", FlagKey: "SA"},
	{Code: "SEK", Name: "Swedish Krona", FlagKey: "SE"},
	{Code: "SGD", Name: "Singapore Dollar", FlagKey: "SG"},
	{Code: "THB", Name: "Thai Baht", FlagKey: "TH"},
	{Code: "TRY", Name: "Turkish Lira", FlagKey: "TR"},
	{Code: "TWD", Name: "New Taiwan Dollar", FlagKey: "TW"},
	{Code: "UAH", Name: "Ukrainian Hryvnia", FlagKey: "UA"},
	{Code: "USD", Name: "US Dollar", FlagKey: "US"},
	{Code: "VND", Name: "Vietnamese Dong", FlagKey: "VN"},
	{Code: "ZAR", Name: "South African Rand", FlagKey: "ZA"},
}

// StaticRepository serves the built-in currency list.
type StaticRepository struct{}

func (StaticRepository) List(_ context.Context) ([]domain.Currency, error) {
	return slices.Clone(defaultCurrencies), nil
}

// SeedDefaults writes the built-in list through w and returns how many currencies were written.
// Existing rows are updated in place, so running it on every start is safe.
func SeedDefaults(ctx context.Context, w adapters.CurrencyWriter) (int, error) {
	for i, c := range defaultCurrencies {
		if err := w.Upsert(ctx, c); err != nil {
			return i, fmt.Errorf("failed to seed currency %q: %w", c.Code, err)
		}
	}
	return len(defaultCurrencies), nil
}
