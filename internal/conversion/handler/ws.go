package handler

import (
	"context"
	"fmt"
	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
)

// Event types sent by the UI.
const (
	EventSelectCurrency = "select_currency"
	EventAmountChanged  = "amount_changed"
	EventSwap           = "swap"
	EventConvert        = "convert"
)

// Message types sent to the UI.
const (
	MessageView  = "view"
	MessageError = "error"
)

type SocketEvent struct {
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
	Code string `json:"code,omitempty"`
	Text string `json:"text,omitempty"`
}

type SocketMessage struct {
	Type  string           `json:"type"`
	View  *conversion.View `json:"view,omitempty"`
	Error string           `json:"error,omitempty"`
}

// SessionSocket godoc
// @Summary Session websocket
// @Description Accepts UI events (select_currency, amount_changed, swap, convert) and pushes a view after every session change
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 101
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/ws [get]
func (h *Handler) SessionSocket(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	changes, stop, err := h.service.Watch(id)
	if err != nil {
		writeServiceError(w, err, "SessionSocket", id)
		return
	}
	defer stop()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		logrus.WithError(err).WithField("session_id", id).Debug("Websocket upgrade failed")
		return
	}

	out := make(chan SocketMessage, 16)
	readerDone := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		h.writePump(conn, id, changes, out, readerDone)
	}()

	h.readPump(conn, id, out, writerDone)
	close(readerDone)
	<-writerDone
}

func (h *Handler) readPump(conn *websocket.Conn, id uuid.UUID, out chan<- SocketMessage, writerDone <-chan struct{}) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	send := func(msg SocketMessage) {
		select {
		case out <- msg:
		case <-writerDone:
		}
	}

	for {
		var ev SocketEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("session_id", id).Warn("Websocket read failed")
			}
			return
		}

		if err := h.dispatch(id, ev, send); err != nil {
			send(SocketMessage{Type: MessageError, Error: err.Error()})
		}
	}
}

// dispatch applies one UI event. The resulting view reaches the client through the change feed.
func (h *Handler) dispatch(id uuid.UUID, ev SocketEvent, send func(SocketMessage)) error {
	switch ev.Type {
	case EventSelectCurrency:
		role, err := domain.ParseRole(strings.ToLower(ev.Role))
		if err != nil {
			return err
		}
		_, err = h.service.SelectCurrency(id, role, strings.ToUpper(strings.TrimSpace(ev.Code)))
		return err
	case EventAmountChanged:
		_, err := h.service.SetAmount(id, ev.Text)
		return err
	case EventSwap:
		_, err := h.service.Swap(id)
		return err
	case EventConvert:
		// the fetch must not block reading further events
		go func() {
			if _, err := h.service.Convert(context.Background(), id); err != nil {
				send(SocketMessage{Type: MessageError, Error: conversion.ErrorMessage(err)})
			}
		}()
		return nil
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}

func (h *Handler) writePump(conn *websocket.Conn, id uuid.UUID, changes <-chan struct{}, out <-chan SocketMessage, readerDone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	write := func(msg SocketMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg) == nil
	}
	writeView := func() bool {
		view, err := h.service.View(id)
		if err != nil {
			// session expired or deleted
			write(SocketMessage{Type: MessageError, Error: err.Error()})
			return false
		}
		return write(SocketMessage{Type: MessageView, View: &view})
	}

	if !writeView() {
		return
	}

	for {
		select {
		case <-readerDone:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-changes:
			if !writeView() {
				return
			}
		case msg := <-out:
			if !write(msg) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no Origin
		return origin == "" || slices.Contains(allowedOrigins, origin)
	}
}
