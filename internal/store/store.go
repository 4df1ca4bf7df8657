package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bingo-hall/internal/game"
)

// MinPlayers is the smallest roster a game may start with.
const MinPlayers = 2

// Store is the sole authority over the session snapshot. Every
// operation runs load-validate-mutate-persist under one exclusive
// gate, so operations on the same host key are totally ordered and no
// caller ever observes a half-applied mutation.
type Store struct {
	mu   sync.Mutex
	blob Blob
}

func New(blob Blob) *Store {
	return &Store{blob: blob}
}

// Reset replaces the snapshot with an empty one. Run at startup so a
// stale blob from a previous process never resurrects dead games.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.blob.Save(ctx, map[string]*Session{}); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

// Create opens a lobby keyed by hostID with the host as first player.
func (s *Store) Create(ctx context.Context, hostID string, maxPlayers int) (*Session, error) {
	if maxPlayers < MinPlayers {
		return nil, ErrTooFewSeats
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", hostID, err)
	}
	if _, ok := sessions[hostID]; ok {
		return nil, ErrAlreadyHosting
	}
	sess := &Session{
		ID:         newID(),
		HostID:     hostID,
		MaxPlayers: maxPlayers,
		State:      StateLobby,
		Players:    []string{hostID},
		CreatedAt:  time.Now().UTC(),
	}
	sessions[hostID] = sess
	if err := s.blob.Save(ctx, sessions); err != nil {
		return nil, fmt.Errorf("create %s: %w", hostID, err)
	}
	return sess.clone(), nil
}

// Join appends playerID to the lobby keyed by hostID.
func (s *Store) Join(ctx context.Context, hostID, playerID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok {
		return nil, ErrNoSuchSession
	}
	if sess.Started() {
		return nil, ErrAlreadyStarted
	}
	if _, hosting := sessions[playerID]; hosting {
		return nil, ErrHostingElsewhere
	}
	if len(sess.Players) >= sess.MaxPlayers {
		return nil, ErrSessionFull
	}
	if sess.HasPlayer(playerID) {
		return nil, ErrAlreadyJoined
	}
	sess.Players = append(sess.Players, playerID)
	if err := s.blob.Save(ctx, sessions); err != nil {
		return nil, fmt.Errorf("join %s: %w", hostID, err)
	}
	return sess.clone(), nil
}

// Leave removes playerID from the lobby. The host cannot leave their
// own game and nobody leaves once the roster is frozen.
func (s *Store) Leave(ctx context.Context, hostID, playerID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("leave %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok || !sess.HasPlayer(playerID) {
		return nil, ErrNotInSession
	}
	if sess.Started() {
		return nil, ErrAlreadyStarted
	}
	if playerID == hostID {
		return nil, ErrHostCannotLeave
	}
	for i, p := range sess.Players {
		if p == playerID {
			sess.Players = append(sess.Players[:i], sess.Players[i+1:]...)
			break
		}
	}
	if err := s.blob.Save(ctx, sessions); err != nil {
		return nil, fmt.Errorf("leave %s: %w", hostID, err)
	}
	return sess.clone(), nil
}

// Start freezes the roster and deals a fresh card to every player.
// Only the host may start, and never with fewer than MinPlayers.
func (s *Store) Start(ctx context.Context, hostID, requesterID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok {
		return nil, ErrNoSuchSession
	}
	if requesterID != hostID {
		return nil, ErrNotHost
	}
	if sess.Started() {
		return nil, ErrAlreadyStarted
	}
	if len(sess.Players) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	sess.State = StateActive
	sess.StartedAt = time.Now().UTC()
	sess.Cards = make(map[string]game.Card, len(sess.Players))
	for _, p := range sess.Players {
		sess.Cards[p] = game.NewCard()
	}
	if err := s.blob.Save(ctx, sessions); err != nil {
		return nil, fmt.Errorf("start %s: %w", hostID, err)
	}
	return sess.clone(), nil
}

// Cancel deletes the session. Only the host may cancel.
func (s *Store) Cancel(ctx context.Context, hostID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("cancel %s: %w", hostID, err)
	}
	if _, ok := sessions[hostID]; !ok {
		return ErrNoSuchSession
	}
	if requesterID != hostID {
		return ErrNotHost
	}
	delete(sessions, hostID)
	if err := s.blob.Save(ctx, sessions); err != nil {
		return fmt.Errorf("cancel %s: %w", hostID, err)
	}
	return nil
}

// RecordDraw appends one revealed number to the session identified by
// both host key and session ID. ErrSessionGone tells the scheduler the
// game ended under it (cancelled, won or reset) and it must stop
// drawing. The ID check matters when the host opens a new game right
// after the old one ends: the key is occupied again, but by a session
// the old scheduler has no business drawing into.
func (s *Store) RecordDraw(ctx context.Context, hostID, sessionID string, number int) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("record draw %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok || sess.ID != sessionID || !sess.Started() {
		return nil, ErrSessionGone
	}
	if number < 1 || number > game.PoolMax || sess.DrawnSet()[number] {
		return nil, ErrInvalidNumber
	}
	sess.NumbersDrawn = append(sess.NumbersDrawn, number)
	if err := s.blob.Save(ctx, sessions); err != nil {
		return nil, fmt.Errorf("record draw %s: %w", hostID, err)
	}
	return sess.clone(), nil
}

// Terminate deletes the session identified by host key and session ID.
// Idempotent: the loser of a terminate race gets ErrAlreadyGone and
// nothing else happens. Like RecordDraw, the ID check keeps a stale
// scheduler from tearing down a successor game under the same host.
func (s *Store) Terminate(ctx context.Context, hostID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("terminate %s: %w", hostID, err)
	}
	if sess, ok := sessions[hostID]; !ok || sess.ID != sessionID {
		return ErrAlreadyGone
	}
	delete(sessions, hostID)
	if err := s.blob.Save(ctx, sessions); err != nil {
		return fmt.Errorf("terminate %s: %w", hostID, err)
	}
	return nil
}

// Claim checks the claiming player's own card against the drawn set
// and, on a win, removes the session in the same critical section. The
// card is resolved strictly by the caller's identity; being on the
// roster without a dealt card does not qualify.
func (s *Store) Claim(ctx context.Context, hostID, playerID string) (bool, *Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("claim %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok {
		return false, nil, ErrNoSuchSession
	}
	card, dealt := sess.Cards[playerID]
	if !sess.Started() || !dealt {
		return false, nil, ErrNotInSession
	}
	if !game.HasWon(card, sess.DrawnSet()) {
		return false, sess.clone(), nil
	}
	final := sess.clone()
	winner := final.Cards[playerID]
	winner.Wins++
	final.Cards[playerID] = winner
	delete(sessions, hostID)
	if err := s.blob.Save(ctx, sessions); err != nil {
		return false, nil, fmt.Errorf("claim %s: %w", hostID, err)
	}
	return true, final, nil
}

// ToggleMark flips a cosmetic mark on the player's own card.
func (s *Store) ToggleMark(ctx context.Context, hostID, playerID string, number int) (game.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return game.Card{}, fmt.Errorf("toggle mark %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok {
		return game.Card{}, ErrNotInSession
	}
	card, dealt := sess.Cards[playerID]
	if !dealt {
		return game.Card{}, ErrNotInSession
	}
	if !card.ToggleMark(number) {
		return game.Card{}, ErrInvalidNumber
	}
	sess.Cards[playerID] = card
	if err := s.blob.Save(ctx, sessions); err != nil {
		return game.Card{}, fmt.Errorf("toggle mark %s: %w", hostID, err)
	}
	return card, nil
}

// Get returns a point-in-time copy of one session. The copy is for
// display only; re-fetch before acting on it.
func (s *Store) Get(ctx context.Context, hostID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", hostID, err)
	}
	sess, ok := sessions[hostID]
	if !ok {
		return nil, ErrNoSuchSession
	}
	return sess.clone(), nil
}

// List returns copies of every live session, oldest first.
func (s *Store) List(ctx context.Context) ([]*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.blob.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]*Session, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
