package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"emotispell/internal/hub"
	"emotispell/internal/models"

	"golang.org/x/net/websocket"
)

// StreamHandler serves the live event feed to dashboard clients over a
// websocket. Supervisors receive events for their own scope; operators
// receive every scope.
type StreamHandler struct {
	hub *hub.Hub
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(h *hub.Hub) *StreamHandler {
	return &StreamHandler{hub: h}
}

// Subscribe upgrades the request and pumps envelopes until the client
// disconnects or the subscriber is dropped for falling behind. Auth
// runs before the upgrade; child accounts have no feed.
func (h *StreamHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	account := AccountFromContext(r.Context())
	if account == nil || account.Role == models.RoleChild {
		respondWithError(w, http.StatusForbidden, "Forbidden", "", nil)
		return
	}

	scope := account.OwnerScope()
	operator := account.Role == models.RoleOperator

	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		h.pump(conn, scope, operator)
	})
	wsHandler.ServeHTTP(w, r)
}

func (h *StreamHandler) pump(conn *websocket.Conn, scope string, operator bool) {
	defer func() {
		_ = conn.Close()
	}()

	sub := h.hub.Subscribe(scope, operator)
	defer h.hub.Unsubscribe(sub)

	// Drain inbound frames so a client close unblocks the pump.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		decoder := json.NewDecoder(conn)
		for {
			var discard json.RawMessage
			if err := decoder.Decode(&discard); err != nil {
				return
			}
		}
	}()

	encoder := json.NewEncoder(conn)
	for {
		select {
		case envelope, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := encoder.Encode(envelope); err != nil {
				log.Printf("stream: dropping subscriber scope %q: %v", scope, err)
				return
			}
		case <-closed:
			return
		}
	}
}
