package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ridebook/internal/realtime"
	"ridebook/internal/view"
)

// ──────────────────────────────────────────────
// 13. LIVE SUBSCRIPTION OVER WEBSOCKET
// ──────────────────────────────────────────────

type wireMessage struct {
	Collection string          `json:"collection"`
	Docs       json.RawMessage `json:"docs"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wireMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	return msg
}

func TestSubscribe_ReceivesInitialAndUpdatedSnapshots(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	server := httptest.NewServer(env.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/users/user-1/subscribe"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	initial := map[string]bool{}
	for i := 0; i < 3; i++ {
		msg := readMessage(t, conn)
		if string(msg.Docs) != "[]" {
			t.Errorf("expected empty initial %s, got %s", msg.Collection, msg.Docs)
		}
		initial[msg.Collection] = true
	}
	for _, c := range []string{realtime.CollectionFavoriteDrivers, realtime.CollectionFavoriteLocations, realtime.CollectionSavedRoutes} {
		if !initial[c] {
			t.Errorf("expected initial snapshot of %s", c)
		}
	}

	rec := env.do(t, http.MethodPost, "/api/users/saved-routes/add", map[string]any{
		"userId":          "user-1",
		"label":           "Commute",
		"pickupLocation":  map[string]any{"address": "A", "latitude": 51.5, "longitude": -0.1},
		"dropoffLocation": map[string]any{"address": "B", "latitude": 51.6, "longitude": -0.2},
	}, "")
	expectStatus(t, rec, http.StatusOK)

	msg := readMessage(t, conn)
	if msg.Collection != realtime.CollectionSavedRoutes {
		t.Fatalf("expected savedRoutes snapshot, got %s", msg.Collection)
	}
	var routes []view.SavedRoute
	if err := json.Unmarshal(msg.Docs, &routes); err != nil {
		t.Fatalf("failed to decode docs: %v", err)
	}
	if len(routes) != 1 || routes[0].Label != "Commute" {
		t.Errorf("unexpected snapshot: %+v", routes)
	}
}
