package handler

import (
	"fxconvert/internal/domain"
	"net/http"
)

type ListCurrenciesResponse struct {
	Currencies []domain.CurrencyAsset `json:"currencies"`
}

// ListCurrencies godoc
// @Summary List selectable currencies
// @Description Currency codes with display names and flag images
// @Tags Currencies
// @Produce json
// @Success 200 {object} ListCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, _ *http.Request) {
	currencies := h.catalog.Currencies()
	res := ListCurrenciesResponse{Currencies: make([]domain.CurrencyAsset, 0, len(currencies))}
	for _, c := range currencies {
		asset, err := h.assets.Resolve(c.Code)
		if err != nil {
			asset = domain.CurrencyAsset{Code: c.Code, Name: c.Name, FlagKey: c.FlagKey}
		}
		res.Currencies = append(res.Currencies, asset)
	}
	writeJSON(w, http.StatusOK, res)
}
