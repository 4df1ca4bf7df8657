package store

import "errors"

// Caller-correctable failures. State is never mutated when one of
// these is returned.
var (
	ErrAlreadyHosting   = errors.New("already_hosting")
	ErrNoSuchSession    = errors.New("no_such_session")
	ErrAlreadyStarted   = errors.New("already_started")
	ErrSessionFull      = errors.New("session_full")
	ErrAlreadyJoined    = errors.New("already_joined")
	ErrHostingElsewhere = errors.New("hosting_elsewhere")
	ErrNotInSession     = errors.New("not_in_session")
	ErrHostCannotLeave  = errors.New("host_cannot_leave")
	ErrNotHost          = errors.New("not_host")
	ErrNotEnoughPlayers = errors.New("not_enough_players")
	ErrInvalidNumber    = errors.New("invalid_number")
	ErrTooFewSeats      = errors.New("too_few_seats")
)

// Expected races between the scheduler, claims and cancellation.
// Callers cease further action and stay quiet.
var (
	ErrSessionGone = errors.New("session_gone")
	ErrAlreadyGone = errors.New("already_gone")
)

// IsUserError reports whether err is one of the caller-correctable
// sentinels above. Anything else that isn't a race is infrastructure.
func IsUserError(err error) bool {
	for _, sentinel := range []error{
		ErrAlreadyHosting, ErrNoSuchSession, ErrAlreadyStarted,
		ErrSessionFull, ErrAlreadyJoined, ErrHostingElsewhere,
		ErrNotInSession, ErrHostCannotLeave, ErrNotHost,
		ErrNotEnoughPlayers, ErrInvalidNumber, ErrTooFewSeats,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsRace reports whether err signals a lost race rather than a fault.
func IsRace(err error) bool {
	return errors.Is(err, ErrSessionGone) || errors.Is(err, ErrAlreadyGone)
}
