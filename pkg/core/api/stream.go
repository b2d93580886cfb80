/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

const (
	// streamSendBuffer is the per-client event buffer. A client that
	// falls this far behind is disconnected rather than blocking the
	// compute pass.
	streamSendBuffer = 32

	streamPingInterval = 30 * time.Second
	streamWriteTimeout = 10 * time.Second
)

// StreamMessage represents a message sent over the WebSocket.
type StreamMessage struct {
	Type      string            `json:"type"` // "event", "error", "ping"
	Event     *models.LinkEvent `json:"event,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// streamHub broadcasts link events to connected websocket clients. It
// implements the engine event sink contract, so registering it with the
// core server is all the wiring the stream needs.
type streamHub struct {
	logger logger.Logger

	mu      sync.Mutex
	clients map[chan *models.LinkEvent]struct{}
	closed  bool
}

func newStreamHub(log logger.Logger) *streamHub {
	return &streamHub{
		logger:  log,
		clients: make(map[chan *models.LinkEvent]struct{}),
	}
}

// PublishLinkEvent fans an event out to every connected client. Slow
// clients are dropped, never waited on.
func (h *streamHub) PublishLinkEvent(_ context.Context, event *models.LinkEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client <- event:
		default:
			// Buffer full: the writer loop is stuck or the client is
			// gone. Close the channel so the writer disconnects it.
			delete(h.clients, client)
			close(client)

			h.logger.Warn().Msg("Dropping slow link stream client")
		}
	}

	return nil
}

func (h *streamHub) register() chan *models.LinkEvent {
	client := make(chan *models.LinkEvent, streamSendBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(client)
		return client
	}

	h.clients[client] = struct{}{}

	return client
}

func (h *streamHub) unregister(client chan *models.LinkEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// close disconnects every client and refuses new registrations.
func (h *streamHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true

	for client := range h.clients {
		close(client)
	}

	h.clients = make(map[chan *models.LinkEvent]struct{})
}

func (h *streamHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// handleLinkStream upgrades the connection and pushes link events created
// or confirmed by compute passes until the client disconnects.
func (s *APIServer) handleLinkStream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.checkWebSocketOrigin(r)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("remote_addr", r.RemoteAddr).
			Str("origin", r.Header.Get("Origin")).
			Msg("Failed to upgrade to WebSocket")

		return
	}

	defer func() {
		_ = conn.Close()
	}()

	// Authentication happens after the upgrade: browsers cannot attach
	// headers to the websocket handshake, so rejections go over the
	// socket instead of failing the HTTP exchange.
	if !s.authenticateStreamConnection(r) {
		_ = sendStreamError(conn, "Authentication required")
		return
	}

	s.logger.Info().
		Str("remote_addr", r.RemoteAddr).
		Msg("Link stream client connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader loop exists only to detect disconnects.
	go func() {
		defer cancel()

		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	client := s.hub.register()
	defer s.hub.unregister(client)

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-client:
			if !ok {
				// Hub dropped us: shutdown or slow-client eviction.
				return
			}

			if err := writeStreamMessage(conn, StreamMessage{
				Type:      "event",
				Event:     event,
				Timestamp: time.Now(),
			}); err != nil {
				s.logger.Debug().
					Err(err).
					Str("remote_addr", r.RemoteAddr).
					Msg("Link stream write failed")

				return
			}

		case <-ticker.C:
			if err := writeStreamMessage(conn, StreamMessage{
				Type:      "ping",
				Timestamp: time.Now(),
			}); err != nil {
				return
			}
		}
	}
}

// authenticateStreamConnection validates the API key after the websocket
// upgrade. Keys are taken from the header or a cookie, never from query
// parameters.
func (s *APIServer) authenticateStreamConnection(r *http.Request) bool {
	if s.apiKey == "" {
		return true
	}

	key := r.Header.Get("X-API-Key")
	if key == "" {
		if cookie, err := r.Cookie("api_key"); err == nil {
			key = cookie.Value
		}
	}

	if key == s.apiKey {
		return true
	}

	s.logger.Warn().
		Str("remote_addr", r.RemoteAddr).
		Msg("Link stream authentication failed")

	return false
}

// checkWebSocketOrigin validates WebSocket origin against CORS configuration.
func (s *APIServer) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// No Origin header means a non-browser client; allow it.
	if origin == "" {
		return true
	}

	if len(s.corsConfig.AllowedOrigins) == 0 {
		return true
	}

	for _, allowedOrigin := range s.corsConfig.AllowedOrigins {
		if allowedOrigin == origin || allowedOrigin == "*" {
			return true
		}
	}

	s.logger.Warn().
		Str("origin", origin).
		Interface("allowed_origins", s.corsConfig.AllowedOrigins).
		Msg("WebSocket CORS: Origin not allowed")

	return false
}

func writeStreamMessage(conn *websocket.Conn, msg StreamMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}

	return conn.WriteJSON(msg)
}

func sendStreamError(conn *websocket.Conn, errMsg string) error {
	return writeStreamMessage(conn, StreamMessage{
		Type:      "error",
		Error:     errMsg,
		Timestamp: time.Now(),
	})
}
