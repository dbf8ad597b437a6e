package postgres

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func (r *CurrencyRepository) List(ctx context.Context) ([]domain.Currency, error) {
	const q = `
		select code, name, flag_key
		from currencies
		order by code;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0, 64)
	for rows.Next() {
		var c domain.Currency
		if err = rows.Scan(&c.Code, &c.Name, &c.FlagKey); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

func (r *CurrencyRepository) Upsert(ctx context.Context, c domain.Currency) error {
	const q = `
		insert into currencies(code, name, flag_key) values ($1, $2, $3)
		on conflict (code) do update
		set name = excluded.name, flag_key = excluded.flag_key;
	`

	if _, err := r.pool.Exec(ctx, q, c.Code, c.Name, c.FlagKey); err != nil {
		return fmt.Errorf("failed to upsert currency %q: %w", c.Code, err)
	}
	return nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}
