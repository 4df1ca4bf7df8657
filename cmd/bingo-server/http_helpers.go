package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"bingo-hall/internal/store"
)

// callerHeader carries the chat-platform identity of the acting user.
// The dispatcher in front of this API is trusted to set it.
const callerHeader = "X-Caller-ID"

func callerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(callerHeader))
}

func callerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callerID(r) == "" {
			writeHTTPError(w, http.StatusUnauthorized, "missing_caller_id")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{"error": code})
}

// writeStoreError maps the store's error taxonomy onto responses.
// User errors go back verbatim, lost races read as conflicts, and
// anything else is infrastructure: logged, reported to the operator
// channel and hidden behind a generic apology.
func (a *app) writeStoreError(w http.ResponseWriter, r *http.Request, op, hostID string, err error) {
	switch {
	case store.IsUserError(err):
		writeHTTPError(w, userErrorStatus(err), err.Error())
	case store.IsRace(err):
		writeHTTPError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("op", op).Str("host_id", hostID).Msg("store operation failed")
		a.announcer.OperatorAlert(r.Context(), op, hostID, err)
		writeHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func userErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNoSuchSession), errors.Is(err, store.ErrNotInSession):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidNumber),
		errors.Is(err, store.ErrTooFewSeats),
		errors.Is(err, store.ErrNotEnoughPlayers):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotHost):
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}

func decodeBody(r *http.Request, into any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(into)
}
