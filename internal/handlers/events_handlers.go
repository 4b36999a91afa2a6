package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/epeers/investdash/internal/state"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	eventBuffer       = 64
	heartbeatInterval = 30 * time.Second
)

// EventsHandler streams state change events as server-sent events
type EventsHandler struct {
	store     *state.Store
	heartbeat time.Duration
	done      <-chan struct{}
}

// NewEventsHandler creates a new EventsHandler. Closing done ends every open
// stream; a nil done never fires.
func NewEventsHandler(store *state.Store, done <-chan struct{}) *EventsHandler {
	return &EventsHandler{store: store, heartbeat: heartbeatInterval, done: done}
}

// Stream handles GET /api/events
// @Summary Stream state changes
// @Description Server-sent events. The first event is a full snapshot; each later event names
// @Description the part of the state that changed (navigation, session, portfolio, upgrade_prompt, slot, chat, news, forms).
// @Tags state
// @Produce text/event-stream
// @Success 200 {object} models.Event
// @Router /api/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.store.Subscribe(eventBuffer)
	defer cancel()

	if err := writeEvent(w, "snapshot", h.store.Snapshot()); err != nil {
		log.Errorf("Failed to send snapshot: %v", err)
		return
	}
	w.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, string(ev.Kind), ev); err != nil {
				log.Errorf("Failed to send %s event: %v", ev.Kind, err)
				return
			}
			w.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			w.Flush()
		case <-ctx.Done():
			log.Debug("Event stream closed by client")
			return
		case <-h.done:
			log.Debug("Event stream closed for shutdown")
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
