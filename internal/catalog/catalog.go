package catalog

import (
	"context"
	"errors"
	"fmt"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"slices"
	"strings"
)

// Catalog is the read-only set of currencies a session may select.
type Catalog struct {
	currenciesSet map[string]domain.Currency // read only copy
	currenciesLst []domain.Currency          // read only copy, sorted by code
}

func (c *Catalog) Lookup(code string) (domain.Currency, bool) {
	cur, ok := c.currenciesSet[code]
	return cur, ok
}

func (c *Catalog) Validate(code string) error {
	if code == "" {
		return fmt.Errorf("%w: currency code is required", domain.ErrCurrencyNotFound)
	}
	if _, ok := c.currenciesSet[code]; !ok {
		return fmt.Errorf("%w: %q is not supported", domain.ErrCurrencyNotFound, code)
	}
	return nil
}

func (c *Catalog) Currencies() []domain.Currency {
	return slices.Clone(c.currenciesLst)
}

func (c *Catalog) Len() int { return len(c.currenciesLst) }

func New(currencies []domain.Currency) (*Catalog, error) {
	set := make(map[string]domain.Currency, len(currencies))
	for _, cur := range currencies {
		cur.Code = strings.ToUpper(strings.TrimSpace(cur.Code))
		if cur.Code == "" {
			return nil, errors.New("currency with empty code in catalog")
		}
		if _, dup := set[cur.Code]; dup {
			return nil, fmt.Errorf("duplicate currency %q in catalog", cur.Code)
		}
		set[cur.Code] = cur
	}
	if len(set) == 0 {
		return nil, errors.New("no supported currencies available")
	}

	lst := make([]domain.Currency, 0, len(set))
	for _, cur := range set {
		lst = append(lst, cur)
	}
	slices.SortFunc(lst, func(a, b domain.Currency) int { return strings.Compare(a.Code, b.Code) })

	return &Catalog{currenciesSet: set, currenciesLst: lst}, nil
}

// Load builds a catalog from the repository.
func Load(ctx context.Context, repo adapters.CurrencyRepository) (*Catalog, error) {
	currencies, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	return New(currencies)
}
