package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/foliocms/folio-core/internal/core/domain"
)

const (
	eventBuffer  = 16
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
)

// handleEvents godoc
// @Summary      Change stream
// @Description  Websocket stream of change events. Repeat ?store= to filter (content, theme, session, cms-settings).
// @Tags         Events
// @Param        store  query  []string  false  "Stores to follow"  collectionFormat(multi)
// @Success      101
// @Router       /events [get]
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var stores []domain.StoreName
	for _, name := range r.URL.Query()["store"] {
		stores = append(stores, domain.StoreName(name))
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, cancel := s.events.Subscribe(eventBuffer, stores...)
	defer cancel()

	// The reader only services control frames and notices the client leaving
	done := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Debug("websocket closed", "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
