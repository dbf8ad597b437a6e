package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type SessionService interface {
	Create(ctx context.Context) (conversion.View, error)
	View(id uuid.UUID) (conversion.View, error)
	Delete(id uuid.UUID) error
	SelectCurrency(id uuid.UUID, role domain.Role, code string) (conversion.View, error)
	SetAmount(id uuid.UUID, rawText string) (conversion.View, error)
	Swap(id uuid.UUID) (conversion.View, error)
	Convert(ctx context.Context, id uuid.UUID) (conversion.View, error)
	Watch(id uuid.UUID) (<-chan struct{}, func(), error)
}

type CurrencyCatalog interface {
	Currencies() []domain.Currency
}

type AssetResolver interface {
	Resolve(code string) (domain.CurrencyAsset, error)
}

type Handler struct {
	service  SessionService
	catalog  CurrencyCatalog
	assets   AssetResolver
	upgrader websocket.Upgrader
}

// NewSessionHandler builds the handler; allowedOrigins restricts websocket upgrades ("*" allows any).
func NewSessionHandler(service SessionService, catalog CurrencyCatalog, assets AssetResolver, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		assets:  assets,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// sessionID parses the {id} URL param, writing a 400 on failure.
func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps errors shared by every session endpoint.
func writeServiceError(w http.ResponseWriter, err error, handler string, id uuid.UUID) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrCurrencyNotFound), errors.Is(err, domain.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		msg := "ups, couldn't process the session this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": handler, "session_id": id}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}
