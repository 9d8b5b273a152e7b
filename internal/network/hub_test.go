package network

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/agrinexus/farm-twin/internal/engine"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
)

// testClient builds a client without a live connection; only the hub
// side (registration and the send channel) is exercised here.
func testClient(h *Hub, farmID string, buffer int) *Client {
	return &Client{hub: h, farmID: farmID, send: make(chan []byte, buffer)}
}

func runHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	h := NewHub(logger.NewLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	return h, cancel
}

func waitForCount(t *testing.T, h *Hub, farmID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount(farmID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients for farm %s, got %d", want, farmID, h.ClientCount(farmID))
}

func TestBroadcastReachesOnlySubscribedFarm(t *testing.T) {
	h, cancel := runHub(t)
	defer cancel()

	alpha := testClient(h, "farm-alpha", 8)
	beta := testClient(h, "farm-beta", 8)
	alpha.Register()
	beta.Register()
	waitForCount(t, h, "farm-alpha", 1)
	waitForCount(t, h, "farm-beta", 1)

	h.BroadcastTick(engine.TickPayload{FarmID: "farm-alpha", Timestamp: time.Now()})

	select {
	case msg := <-alpha.send:
		var got engine.TickPayload
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("Broadcast payload is not valid JSON: %v", err)
		}
		if got.FarmID != "farm-alpha" {
			t.Errorf("Expected payload for farm-alpha, got %s", got.FarmID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribed client never received the tick")
	}

	select {
	case <-beta.send:
		t.Error("Client of another farm received the tick")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	h, cancel := runHub(t)
	defer cancel()

	slow := testClient(h, "farm-alpha", 1)
	slow.Register()
	waitForCount(t, h, "farm-alpha", 1)

	// First tick fills the buffer, second finds it full and drops the
	// client.
	h.BroadcastTick(engine.TickPayload{FarmID: "farm-alpha"})
	h.BroadcastTick(engine.TickPayload{FarmID: "farm-alpha"})

	waitForCount(t, h, "farm-alpha", 0)

	// The hub closes the send channel of a dropped client.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Send channel of dropped client was never closed")
		}
	}
}

func TestUnregisterRemovesClient(t *testing.T) {
	h, cancel := runHub(t)
	defer cancel()

	c := testClient(h, "farm-alpha", 8)
	c.Register()
	waitForCount(t, h, "farm-alpha", 1)

	h.unregister <- c
	waitForCount(t, h, "farm-alpha", 0)
}
