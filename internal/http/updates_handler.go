package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bedboard/internal/domain"
	"bedboard/internal/service"

	"go.uber.org/zap"
)

// UpdatesHandler serves the live bed feed as server-sent events: one
// snapshot immediately on connect, then one per publisher tick. Delivery is
// best effort; a client that stops reading is dropped by the publisher.
type UpdatesHandler struct {
	ledger    *service.LedgerService
	publisher *service.Publisher
	logger    *zap.Logger
}

func NewUpdatesHandler(ledger *service.LedgerService, publisher *service.Publisher, logger *zap.Logger) *UpdatesHandler {
	return &UpdatesHandler{
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *UpdatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, Fail("streaming not supported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Initial snapshot so the dashboard renders without waiting a tick.
	if snapshot, err := h.ledger.Snapshot(r.Context()); err == nil {
		if err := writeEvent(w, snapshot); err != nil {
			return
		}
		flusher.Flush()
	} else {
		h.logger.Warn("initial snapshot failed", zap.Error(err))
	}

	sub := service.NewChanSubscriber(4)
	h.publisher.Subscribe(sub)
	defer func() {
		sub.Close()
		h.publisher.Unsubscribe(sub.ID())
	}()

	h.logger.Debug("updates subscriber connected", zap.String("subscriber_id", sub.ID()))

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("updates subscriber disconnected", zap.String("subscriber_id", sub.ID()))
			return
		case snapshot := <-sub.C():
			if err := writeEvent(w, snapshot); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE frame: "data: <json>\n\n".
func writeEvent(w http.ResponseWriter, snapshot []*domain.Bed) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
