package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	"bingo-hall/internal/config"
	"bingo-hall/internal/draw"
	"bingo-hall/internal/logging"
	"bingo-hall/internal/push"
	"bingo-hall/internal/store"
	"bingo-hall/internal/ws"
)

type app struct {
	cfg       config.ServerConfig
	store     *store.Store
	scheduler *draw.Scheduler
	announcer *push.Announcer
	hub       *ws.Hub
	baseCtx   context.Context
}

func (a *app) router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", a.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Use(callerMiddleware)

		r.Get("/games", a.listGamesHandler)
		r.Post("/games", a.createGameHandler)
		r.Route("/games/{host_id}", func(r chi.Router) {
			r.Get("/", a.getGameHandler)
			r.Post("/join", a.joinGameHandler)
			r.Post("/leave", a.leaveGameHandler)
			r.Post("/start", a.startGameHandler)
			r.Post("/cancel", a.cancelGameHandler)

			r.Group(func(r chi.Router) {
				r.Use(newCooldown(a.cfg.ClaimCooldown).middleware)
				r.Post("/claim", a.claimHandler)
				r.Post("/mark", a.markHandler)
				r.Get("/card", a.cardHandler)
			})
		})
	})

	r.Get("/ws/spectate", a.hub.HandleWS)
	return r
}

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("caller_id", callerID(req)),
				}
			},
		},
	)
}
