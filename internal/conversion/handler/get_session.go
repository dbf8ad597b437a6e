package handler

import "net/http"

// GetSession godoc
// @Summary Get session view
// @Description Current display state of a conversion session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} conversion.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.View(id)
	if err != nil {
		writeServiceError(w, err, "GetSession", id)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
