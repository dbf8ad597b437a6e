package catalog

import (
	"fmt"
	"fxconvert/internal/domain"
	"strings"
)

const DefaultFlagURLTemplate = "https://flagsapi.com/%s/flat/64.png"

// AssetResolver maps a currency code to its display name and flag image.
type AssetResolver struct {
	catalog         *Catalog
	flagURLTemplate string
}

func (r *AssetResolver) Resolve(code string) (domain.CurrencyAsset, error) {
	cur, ok := r.catalog.Lookup(code)
	if !ok {
		return domain.CurrencyAsset{}, fmt.Errorf("%w: %q", domain.ErrCurrencyNotFound, code)
	}
	asset := domain.CurrencyAsset{Code: cur.Code, Name: cur.Name, FlagKey: cur.FlagKey}
	if cur.FlagKey != "" && r.flagURLTemplate != "" {
		asset.FlagURL = fmt.Sprintf(r.flagURLTemplate, cur.FlagKey)
	}
	return asset, nil
}

func NewAssetResolver(catalog *Catalog, flagURLTemplate string) *AssetResolver {
	if !strings.Contains(flagURLTemplate, "%s") {
		flagURLTemplate = DefaultFlagURLTemplate
	}
	return &AssetResolver{catalog: catalog, flagURLTemplate: flagURLTemplate}
}
