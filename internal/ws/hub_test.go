package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"bingo-hall/internal/store"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesSpectators(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)

	waitForClients(t, hub, 1)
	hub.NumberDrawn(context.Background(), &store.Session{
		HostID:       "h1",
		NumbersDrawn: []int{7, 34},
	}, 34)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != "draw" || ev.HostID != "h1" || ev.Number != 34 || len(ev.NumbersDrawn) != 2 {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestDrawsExhaustedEvent(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)
	waitForClients(t, hub, 1)

	hub.DrawsExhausted(context.Background(), "h1")

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != "draw_exhausted" || ev.HostID != "h1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestDisconnectedClientIsDropped(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)
	waitForClients(t, hub, 1)
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed client never dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for hub.ClientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
