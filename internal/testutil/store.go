// Package testutil holds test doubles shared across packages.
package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"bingo-hall/internal/store"
)

// MemBlob is an in-memory store.Blob for tests. Snapshots are copied
// through JSON so callers never alias the stored state, matching the
// isolation of the real backends.
type MemBlob struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemBlob() *MemBlob {
	return &MemBlob{raw: []byte("{}")}
}

func (b *MemBlob) Load(context.Context) (map[string]*store.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sessions := map[string]*store.Session{}
	if err := json.Unmarshal(b.raw, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (b *MemBlob) Save(_ context.Context, sessions map[string]*store.Session) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raw = raw
	return nil
}

// NewStore returns a store backed by a fresh MemBlob.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(NewMemBlob())
}

// StartedGame creates, fills and starts a session for host.
func StartedGame(t *testing.T, st *store.Store, host string, players ...string) *store.Session {
	t.Helper()
	ctx := context.Background()
	if _, err := st.Create(ctx, host, len(players)+1); err != nil {
		t.Fatalf("create %s: %v", host, err)
	}
	for _, p := range players {
		if _, err := st.Join(ctx, host, p); err != nil {
			t.Fatalf("join %s: %v", p, err)
		}
	}
	sess, err := st.Start(ctx, host, host)
	if err != nil {
		t.Fatalf("start %s: %v", host, err)
	}
	return sess
}
