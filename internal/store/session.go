package store

import (
	"time"

	"bingo-hall/internal/game"
)

// State tags a session's lifecycle. Termination is not a stored state:
// a terminated session is removed from the snapshot entirely.
type State string

const (
	StateLobby  State = "lobby"
	StateActive State = "active"
)

// Session is one hosted game, keyed in the snapshot by HostID. A user
// hosts at most one session at a time.
type Session struct {
	ID           string               `json:"id"`
	HostID       string               `json:"host_id"`
	MaxPlayers   int                  `json:"max_players"`
	State        State                `json:"state"`
	Players      []string             `json:"players"`
	NumbersDrawn []int                `json:"numbers_drawn"`
	Cards        map[string]game.Card `json:"cards,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	StartedAt    time.Time            `json:"started_at,omitempty"`
}

// Started reports whether the roster is frozen and drawing may run.
func (s *Session) Started() bool {
	return s.State == StateActive
}

// HasPlayer reports roster membership.
func (s *Session) HasPlayer(playerID string) bool {
	for _, p := range s.Players {
		if p == playerID {
			return true
		}
	}
	return false
}

// DrawnSet is the set view of NumbersDrawn used by the win check.
func (s *Session) DrawnSet() map[int]bool {
	return game.DrawnSet(s.NumbersDrawn)
}

// clone deep-copies a session so snapshots handed to callers never
// alias the canonical state.
func (s *Session) clone() *Session {
	out := *s
	out.Players = append([]string(nil), s.Players...)
	out.NumbersDrawn = append([]int(nil), s.NumbersDrawn...)
	if s.Cards != nil {
		out.Cards = make(map[string]game.Card, len(s.Cards))
		for id, c := range s.Cards {
			cc := c
			cc.Numbers = append([]int(nil), c.Numbers...)
			cc.Marks = append([]int(nil), c.Marks...)
			out.Cards[id] = cc
		}
	}
	return &out
}
