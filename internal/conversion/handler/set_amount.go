package handler

import (
	"encoding/json"
	"net/http"
)

type SetAmountRequest struct {
	Text string `json:"text" example:"1,250.50"`
}

// SetAmount godoc
// @Summary Update the amount to convert
// @Description Raw text of the amount field; blank, unparseable or negative input counts as 0
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SetAmountRequest true "Amount text"
// @Success 200 {object} conversion.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/amount [put]
func (h *Handler) SetAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req SetAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.SetAmount(id, req.Text)
	if err != nil {
		writeServiceError(w, err, "SetAmount", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
