package handler

import (
	"errors"
	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"
	"net/http"
)

type ConvertErrorResponse struct {
	Error string          `json:"error" example:"enter an amount greater than zero"`
	View  conversion.View `json:"view"`
}

// Convert godoc
// @Summary Fetch the rate and convert
// @Description Requests a fresh rate for the selected pair and recomputes the converted amount
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} conversion.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} ConvertErrorResponse "currencies changed while fetching"
// @Failure 422 {object} ConvertErrorResponse "amount must be greater than zero"
// @Failure 502 {object} ConvertErrorResponse "rate service failed"
// @Failure 503 {object} ConvertErrorResponse "offline"
// @Router /sessions/{id}/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Convert(r.Context(), id)
	if err == nil {
		writeJSON(w, http.StatusOK, view)
		return
	}

	status := convertStatus(err)
	if status == 0 {
		writeServiceError(w, err, "Convert", id)
		return
	}
	writeJSON(w, status, ConvertErrorResponse{Error: conversion.ErrorMessage(err), View: view})
}

func convertStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOffline):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrServiceError):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStaleRate):
		return http.StatusConflict
	default:
		return 0
	}
}
