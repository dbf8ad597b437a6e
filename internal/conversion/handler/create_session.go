package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// CreateSession godoc
// @Summary Start a conversion session
// @Description Create a session with the default currency pair and no rate
// @Tags Sessions
// @Produce json
// @Success 201 {object} conversion.View
// @Failure 500 {object} errorResponse
// @Router /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Create(r.Context())
	if err != nil {
		writeServiceError(w, err, "CreateSession", uuid.Nil)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}
