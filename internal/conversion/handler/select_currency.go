package handler

import (
	"encoding/json"
	"fxconvert/internal/domain"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type SelectCurrencyRequest struct {
	Code string `json:"code" example:"EUR"`
}

// SelectCurrency godoc
// @Summary Select source or target currency
// @Description Changes one side of the pair; drops the current rate and resets the amount
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param role path string true "source or target"
// @Param request body SelectCurrencyRequest true "Currency code"
// @Success 200 {object} conversion.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/currencies/{role} [put]
func (h *Handler) SelectCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	role, err := domain.ParseRole(strings.ToLower(chi.URLParam(r, "role")))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SelectCurrencyRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	view, err := h.service.SelectCurrency(id, role, code)
	if err != nil {
		writeServiceError(w, err, "SelectCurrency", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
