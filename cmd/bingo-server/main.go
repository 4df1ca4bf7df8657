package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"bingo-hall/internal/config"
	"bingo-hall/internal/draw"
	"bingo-hall/internal/logging"
	"bingo-hall/internal/push"
	"bingo-hall/internal/store"
	"bingo-hall/internal/ws"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	ctx := context.Background()
	blob, closeBlob, err := openBlob(ctx, cfg.Server)
	if err != nil {
		log.Fatal().Err(err).Msg("blob init failed")
	}
	defer closeBlob()

	st := store.New(blob)
	// One process owns all sessions; drop whatever a dead process left.
	if err := st.Reset(ctx); err != nil {
		log.Fatal().Err(err).Msg("reset session snapshot failed")
	}

	announcer := push.NewAnnouncer(push.Config{
		Enabled:            cfg.Server.PushEnabled,
		WebhookURL:         cfg.Server.PushWebhookURL,
		OperatorWebhookURL: cfg.Server.OperatorWebhookURL,
		RequestTimeout:     cfg.Server.PushTimeout,
		Workers:            cfg.Server.PushWorkers,
		RetryMax:           cfg.Server.PushRetryMax,
	})
	announcer.Start(ctx)

	hub := ws.NewHub()
	scheduler := draw.New(st, multiNotifier{announcer, hub}, cfg.Server.DrawInterval)

	a := &app{
		cfg:       cfg.Server,
		store:     st,
		scheduler: scheduler,
		announcer: announcer,
		hub:       hub,
		baseCtx:   ctx,
	}

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           a.router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Dur("draw_interval", cfg.Server.DrawInterval).
		Msg("bingo-hall listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func openBlob(ctx context.Context, cfg config.ServerConfig) (store.Blob, func(), error) {
	if cfg.PostgresDSN != "" {
		pg, err := store.NewPGBlob(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("session snapshot backed by postgres")
		return pg, pg.Close, nil
	}
	log.Info().Str("path", cfg.DataFile).Msg("session snapshot backed by file")
	return store.NewFileBlob(cfg.DataFile), func() {}, nil
}

// multiNotifier fans draw events out to the chat announcer and the
// spectator feed.
type multiNotifier []draw.Notifier

func (m multiNotifier) NumberDrawn(ctx context.Context, sess *store.Session, number int) {
	for _, n := range m {
		n.NumberDrawn(ctx, sess, number)
	}
}

func (m multiNotifier) DrawsExhausted(ctx context.Context, hostID string) {
	for _, n := range m {
		n.DrawsExhausted(ctx, hostID)
	}
}
