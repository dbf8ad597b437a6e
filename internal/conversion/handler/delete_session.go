package handler

import "net/http"

// DeleteSession godoc
// @Summary Drop a session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeServiceError(w, err, "DeleteSession", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
