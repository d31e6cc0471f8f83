package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/inventory-console/internal/activity"
)

const defaultActivityLimit = 20

// LiveFeed — последние события из памяти процесса.
type LiveFeed interface {
	Recent(limit int) []activity.Event
}

// ActivityHistory — журнал, переживший перезапуск (Postgres).
type ActivityHistory interface {
	Recent(ctx context.Context, limit int) ([]activity.Event, error)
}

type ActivityHandler struct {
	responder
	live    LiveFeed
	history ActivityHistory
}

// NewActivityHandler: history может быть nil, тогда /api/activity/history не монтируется.
func NewActivityHandler(live LiveFeed, history ActivityHistory, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		responder: responder{logger: logger.Named("activity-handler")},
		live:      live,
		history:   history,
	}
}

func (h *ActivityHandler) HasHistory() bool { return h.history != nil }

// Recent GET /api/activity?limit=
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	events := h.live.Recent(queryInt(r, "limit", defaultActivityLimit))
	if events == nil {
		events = []activity.Event{}
	}
	h.json(w, http.StatusOK, events)
}

// History GET /api/activity/history?limit=
func (h *ActivityHandler) History(w http.ResponseWriter, r *http.Request) {
	events, err := h.history.Recent(r.Context(), queryInt(r, "limit", defaultActivityLimit))
	if err != nil {
		h.logger.Error("failed to read activity history", zap.Error(err))
		h.json(w, http.StatusInternalServerError, errorBody{Error: errorPayload{Message: "Failed to fetch activity"}})
		return
	}
	if events == nil {
		events = []activity.Event{}
	}
	h.json(w, http.StatusOK, events)
}
