package httpd

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/frequencyai/member-platform/pkg/events"
	"github.com/frequencyai/member-platform/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin is enforced upstream by the CORS policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stream upgrades to a websocket and mirrors the user's appointment feed
// over it: one snapshot frame, then a frame per applied change event.
// Closing the socket tears the feed subscription down.
func (h *MemberHandler) stream(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	// Writes come from both the feed callback and the snapshot below;
	// gorilla allows one concurrent writer, so serialize them.
	var writeMu sync.Mutex
	send := func(frame map[string]any) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(frame); err != nil {
			logger.DebugContext(r.Context(), "websocket write failed", "error", err)
		}
	}

	feed, err := h.dashboard.OpenFeed(r.Context(), user.ID, func(evt events.AppointmentChangeEvent) {
		send(map[string]any{"event": "change", "data": evt})
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to open appointment feed", "error", err)
		_ = conn.WriteJSON(map[string]any{"event": "error", "data": "failed to open feed"})
		conn.Close()
		return
	}

	send(map[string]any{"event": "snapshot", "data": feed.Snapshot()})

	// Block on the read loop; the client never sends data frames, so
	// the first read error marks disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	feed.Close()
	conn.Close()
	logger.DebugContext(r.Context(), "appointment stream closed", "user_id", user.ID)
}
