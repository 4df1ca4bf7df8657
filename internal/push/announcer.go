// Package push delivers game announcements to chat webhooks. Delivery
// is asynchronous: callers enqueue and the worker pool retries
// transient failures with backoff, so the draw loop never blocks on
// the network.
package push

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bingo-hall/internal/render"
	"bingo-hall/internal/store"
)

const (
	colorGreen  = 0x2ECC71
	colorYellow = 0xF1C40F
	colorRed    = 0xE74C3C
)

type Config struct {
	Enabled            bool
	WebhookURL         string
	OperatorWebhookURL string
	RequestTimeout     time.Duration
	Workers            int
	RetryMax           int
	RetryBase          time.Duration
	DispatchBuffer     int
}

type job struct {
	endpoint string
	msg      Message
}

// Announcer is the outbound-notification surface. It satisfies the
// draw scheduler's Notifier interface.
type Announcer struct {
	cfg     Config
	adapter *discordAdapter
	jobs    chan job
}

func NewAnnouncer(cfg Config) *Announcer {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.DispatchBuffer <= 0 {
		cfg.DispatchBuffer = 256
	}
	return &Announcer{
		cfg:     cfg,
		adapter: newDiscordAdapter(newHTTPClient(cfg.RequestTimeout)),
		jobs:    make(chan job, cfg.DispatchBuffer),
	}
}

// Start launches the delivery workers. They drain until ctx ends.
func (a *Announcer) Start(ctx context.Context) {
	if !a.enabled() {
		return
	}
	for i := 0; i < a.cfg.Workers; i++ {
		go a.worker(ctx)
	}
}

func (a *Announcer) enabled() bool {
	return a.cfg.Enabled && (a.cfg.WebhookURL != "" || a.cfg.OperatorWebhookURL != "")
}

func (a *Announcer) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-a.jobs:
			a.deliver(ctx, j)
		}
	}
}

func (a *Announcer) deliver(ctx context.Context, j job) {
	backoff := a.cfg.RetryBase
	for attempt := 0; ; attempt++ {
		err := a.adapter.send(ctx, j.endpoint, j.msg)
		if err == nil {
			return
		}
		if attempt >= a.cfg.RetryMax {
			log.Warn().Err(err).Str("title", j.msg.Title).Msg("push delivery gave up")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (a *Announcer) enqueue(endpoint string, msg Message) {
	if !a.cfg.Enabled || endpoint == "" {
		return
	}
	select {
	case a.jobs <- job{endpoint: endpoint, msg: msg}:
	default:
		log.Warn().Str("title", msg.Title).Msg("push queue full, dropping announcement")
	}
}

func (a *Announcer) GameOpened(_ context.Context, sess *store.Session) {
	a.enqueue(a.cfg.WebhookURL, Message{
		Title:       fmt.Sprintf("Bingo game hosted by %s", sess.HostID),
		Description: "Join now! The host starts the game once at least two players are seated.",
		Fields: []Field{
			{Name: "Max Players", Value: fmt.Sprintf("%d", sess.MaxPlayers), Inline: true},
			{Name: "Players", Value: roster(sess), Inline: false},
		},
		Color: colorGreen,
	})
}

func (a *Announcer) RosterChanged(_ context.Context, sess *store.Session) {
	a.enqueue(a.cfg.WebhookURL, Message{
		Title: fmt.Sprintf("Bingo lobby of %s", sess.HostID),
		Fields: []Field{
			{Name: "Players", Value: roster(sess), Inline: false},
		},
		Color: colorGreen,
	})
}

func (a *Announcer) GameStarted(_ context.Context, sess *store.Session) {
	a.enqueue(a.cfg.WebhookURL, Message{
		Content:     fmt.Sprintf("The game hosted by %s has begun!", sess.HostID),
		Title:       fmt.Sprintf("Bingo Numbers - hosted by %s", sess.HostID),
		Description: "No numbers drawn yet.",
		Color:       colorGreen,
		PanelKey:    panelKey(sess.HostID),
	})
}

// NumberDrawn edits the running draw board in place.
func (a *Announcer) NumberDrawn(_ context.Context, sess *store.Session, number int) {
	a.enqueue(a.cfg.WebhookURL, Message{
		Title:       fmt.Sprintf("Bingo Numbers - hosted by %s", sess.HostID),
		Description: fmt.Sprintf("Just drawn: **%s**", render.Draws([]int{number})),
		Fields: []Field{
			{Name: "Numbers Drawn", Value: render.Draws(sess.NumbersDrawn), Inline: false},
		},
		Color:    colorYellow,
		PanelKey: panelKey(sess.HostID),
	})
}

func (a *Announcer) GameWon(_ context.Context, sess *store.Session, winnerID string) {
	a.adapter.forgetPanel(a.cfg.WebhookURL, panelKey(sess.HostID))
	a.enqueue(a.cfg.WebhookURL, Message{
		Content: fmt.Sprintf("%s has won the Bingo game hosted by %s!", winnerID, sess.HostID),
		Title:   "BINGO!",
		Fields: []Field{
			{Name: "Winning Draws", Value: render.Draws(sess.NumbersDrawn), Inline: false},
		},
		Color: colorGreen,
	})
}

func (a *Announcer) GameCancelled(_ context.Context, hostID string) {
	a.adapter.forgetPanel(a.cfg.WebhookURL, panelKey(hostID))
	a.enqueue(a.cfg.WebhookURL, Message{
		Content: fmt.Sprintf("The game hosted by %s has been cancelled.", hostID),
		Color:   colorRed,
	})
}

func (a *Announcer) DrawsExhausted(_ context.Context, hostID string) {
	a.adapter.forgetPanel(a.cfg.WebhookURL, panelKey(hostID))
	a.enqueue(a.cfg.WebhookURL, Message{
		Content: fmt.Sprintf("All 75 numbers were drawn with no winner; the game hosted by %s is over.", hostID),
		Color:   colorRed,
	})
}

// OperatorAlert reports an infrastructure failure to the operator
// channel, never to players.
func (a *Announcer) OperatorAlert(_ context.Context, op, hostID string, err error) {
	a.enqueue(a.cfg.OperatorWebhookURL, Message{
		Title:       "bingo-hall infrastructure error",
		Description: fmt.Sprintf("operation `%s` on session `%s` failed: %v", op, hostID, err),
		Color:       colorRed,
	})
}

func roster(sess *store.Session) string {
	out := ""
	for i, p := range sess.Players {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}

func panelKey(hostID string) string {
	return "draw-board:" + hostID
}
