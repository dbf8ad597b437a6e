package handler

import "net/http"

// Swap godoc
// @Summary Swap source and target
// @Description Inverts a valid rate without contacting the rate service
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} conversion.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/swap [post]
func (h *Handler) Swap(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Swap(id)
	if err != nil {
		writeServiceError(w, err, "Swap", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
