package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"bingo-hall/internal/game"
	"bingo-hall/internal/render"
	"bingo-hall/internal/store"
	"bingo-hall/internal/ws"
)

func sessionView(s *store.Session) map[string]any {
	out := map[string]any{
		"id":            s.ID,
		"host_id":       s.HostID,
		"max_players":   s.MaxPlayers,
		"state":         s.State,
		"players":       s.Players,
		"numbers_drawn": s.NumbersDrawn,
		"created_at":    s.CreatedAt,
	}
	if !s.StartedAt.IsZero() {
		out["started_at"] = s.StartedAt
	}
	return out
}

func cardView(playerID string, c game.Card) map[string]any {
	return map[string]any{
		"player_id": playerID,
		"numbers":   c.Numbers,
		"marks":     c.Marks,
		"wins":      c.Wins,
		"rendered":  render.CardBlock(c),
	}
}

func (a *app) healthHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := a.store.List(r.Context()); err != nil {
		writeHTTPError(w, http.StatusServiceUnavailable, "store_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (a *app) listGamesHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.store.List(r.Context())
	if err != nil {
		a.writeStoreError(w, r, "list", "", err)
		return
	}
	items := make([]map[string]any, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, sessionView(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *app) createGameHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MaxPlayers int `json:"max_players"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.MaxPlayers == 0 {
		req.MaxPlayers = a.cfg.DefaultSeats
	}
	if req.MaxPlayers > a.cfg.MaxSeats {
		writeHTTPError(w, http.StatusBadRequest, "too_many_seats")
		return
	}
	host := callerID(r)
	sess, err := a.store.Create(r.Context(), host, req.MaxPlayers)
	if err != nil {
		a.writeStoreError(w, r, "create", host, err)
		return
	}
	log.Info().Str("host_id", host).Int("max_players", req.MaxPlayers).Msg("game created")
	a.announcer.GameOpened(r.Context(), sess)
	writeJSON(w, http.StatusCreated, sessionView(sess))
}

func (a *app) getGameHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	sess, err := a.store.Get(r.Context(), host)
	if err != nil {
		a.writeStoreError(w, r, "get", host, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *app) joinGameHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	player := callerID(r)
	sess, err := a.store.Join(r.Context(), host, player)
	if err != nil {
		a.writeStoreError(w, r, "join", host, err)
		return
	}
	log.Info().Str("host_id", host).Str("player_id", player).Msg("player joined")
	a.announcer.RosterChanged(r.Context(), sess)
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *app) leaveGameHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	player := callerID(r)
	sess, err := a.store.Leave(r.Context(), host, player)
	if err != nil {
		a.writeStoreError(w, r, "leave", host, err)
		return
	}
	log.Info().Str("host_id", host).Str("player_id", player).Msg("player left")
	a.announcer.RosterChanged(r.Context(), sess)
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *app) startGameHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	sess, err := a.store.Start(r.Context(), host, callerID(r))
	if err != nil {
		a.writeStoreError(w, r, "start", host, err)
		return
	}
	log.Info().Str("host_id", host).Int("players", len(sess.Players)).Msg("game started")
	a.announcer.GameStarted(r.Context(), sess)
	a.hub.Broadcast(ws.Event{Type: "started", HostID: host, Players: sess.Players})
	// The scheduler outlives this request; it stops on its own when the
	// session disappears.
	go a.scheduler.Run(a.baseCtx, host, sess.ID)
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *app) cancelGameHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	if err := a.store.Cancel(r.Context(), host, callerID(r)); err != nil {
		a.writeStoreError(w, r, "cancel", host, err)
		return
	}
	log.Info().Str("host_id", host).Msg("game cancelled")
	a.announcer.GameCancelled(r.Context(), host)
	a.hub.Broadcast(ws.Event{Type: "cancelled", HostID: host})
	writeJSON(w, http.StatusOK, map[string]any{"cancelled": true})
}

func (a *app) claimHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	player := callerID(r)
	won, sess, err := a.store.Claim(r.Context(), host, player)
	if err != nil {
		a.writeStoreError(w, r, "claim", host, err)
		return
	}
	if !won {
		writeJSON(w, http.StatusOK, map[string]any{
			"bingo":   false,
			"message": "Not quite yet. Keep trying!",
		})
		return
	}
	log.Info().Str("host_id", host).Str("winner_id", player).Msg("bingo claimed")
	a.announcer.GameWon(r.Context(), sess, player)
	a.hub.Broadcast(ws.Event{
		Type:         "won",
		HostID:       host,
		WinnerID:     player,
		NumbersDrawn: sess.NumbersDrawn,
	})
	writeJSON(w, http.StatusOK, map[string]any{"bingo": true})
}

func (a *app) markHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number int `json:"number"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	host := chi.URLParam(r, "host_id")
	player := callerID(r)
	card, err := a.store.ToggleMark(r.Context(), host, player, req.Number)
	if err != nil {
		a.writeStoreError(w, r, "mark", host, err)
		return
	}
	writeJSON(w, http.StatusOK, cardView(player, card))
}

func (a *app) cardHandler(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host_id")
	player := callerID(r)
	sess, err := a.store.Get(r.Context(), host)
	if err != nil {
		a.writeStoreError(w, r, "card", host, err)
		return
	}
	card, ok := sess.Cards[player]
	if !ok {
		writeHTTPError(w, http.StatusNotFound, store.ErrNotInSession.Error())
		return
	}
	writeJSON(w, http.StatusOK, cardView(player, card))
}
