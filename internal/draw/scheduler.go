package draw

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"bingo-hall/internal/game"
	"bingo-hall/internal/store"
)

// StopReason is the terminal state of one scheduler run.
type StopReason string

const (
	// StopSessionGone: the session vanished under the scheduler
	// (cancelled, won or reset); discovered on the next draw write.
	StopSessionGone StopReason = "session_gone"
	// StopExhausted: all 75 numbers were drawn with no winner. The
	// session is removed; nothing lingers.
	StopExhausted StopReason = "draw_exhausted"
	// StopCancelled: the run context was cancelled (shutdown).
	StopCancelled StopReason = "cancelled"
	// StopStoreError: a persistence failure; fatal to the run.
	StopStoreError StopReason = "store_error"
)

// Notifier receives broadcast-worthy events. Implementations must not
// block the draw loop for long; slow sinks should queue internally.
type Notifier interface {
	NumberDrawn(ctx context.Context, sess *store.Session, number int)
	DrawsExhausted(ctx context.Context, hostID string)
}

// Scheduler reveals numbers for active sessions at a fixed interval.
// One Run per started session; a run never resumes after stopping.
type Scheduler struct {
	store    *store.Store
	notifier Notifier
	interval time.Duration
}

func New(st *store.Store, notifier Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{store: st, notifier: notifier, interval: interval}
}

// Run draws a fresh permutation of 1..75 for the session until it
// disappears or the pool runs dry. Blocks; callers start it on its own
// goroutine. The permutation guarantees exhaustive non-repeating
// coverage, so the loop is bounded at 75 ticks. Draws are fenced by
// sessionID: if the host's key is reoccupied by a newer game, this run
// stops instead of drawing into it.
func (s *Scheduler) Run(ctx context.Context, hostID, sessionID string) StopReason {
	for _, number := range rand.Perm(game.PoolMax) {
		number++
		if reason, ok := s.wait(ctx); !ok {
			return reason
		}
		sess, err := s.store.RecordDraw(ctx, hostID, sessionID, number)
		if errors.Is(err, store.ErrSessionGone) {
			log.Info().Str("host_id", hostID).Msg("draw loop stopped, session gone")
			return StopSessionGone
		}
		if err != nil {
			log.Error().Err(err).Str("host_id", hostID).Int("number", number).
				Msg("draw persist failed")
			return StopStoreError
		}
		s.notifier.NumberDrawn(ctx, sess, number)
	}

	err := s.store.Terminate(ctx, hostID, sessionID)
	if errors.Is(err, store.ErrAlreadyGone) {
		return StopSessionGone
	}
	if err != nil {
		log.Error().Err(err).Str("host_id", hostID).Msg("exhaustion cleanup failed")
		return StopStoreError
	}
	log.Info().Str("host_id", hostID).Msg("draw pool exhausted with no winner")
	s.notifier.DrawsExhausted(ctx, hostID)
	return StopExhausted
}

func (s *Scheduler) wait(ctx context.Context) (StopReason, bool) {
	if s.interval <= 0 {
		select {
		case <-ctx.Done():
			return StopCancelled, false
		default:
			return "", true
		}
	}
	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return StopCancelled, false
	case <-timer.C:
		return "", true
	}
}
