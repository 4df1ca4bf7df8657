package store

import "context"

// Blob is the durable snapshot of every live session, addressed as one
// composite document. Save fully replaces the prior snapshot; a failed
// Save must not report success. Load on an empty store yields an empty
// map, not an error.
type Blob interface {
	Load(ctx context.Context) (map[string]*Session, error)
	Save(ctx context.Context, sessions map[string]*Session) error
}
