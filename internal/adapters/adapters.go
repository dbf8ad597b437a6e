package adapters

import (
	"context"
	"fxconvert/internal/domain"
)

type RateClient interface {
	GetPairRate(ctx context.Context, base string, quote string) (float64, error)
}

type ConnectivityChecker interface {
	Online() bool
}

type CurrencyRepository interface {
	List(ctx context.Context) ([]domain.Currency, error)
}

type CurrencyWriter interface {
	Upsert(ctx context.Context, currency domain.Currency) error
}
