package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/store"
)

// Event listing limits.
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 1000
)

// EventsHandler serves the session's event journal.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates an EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type eventResponse struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"`
	Kind       string `json:"kind"`
	Symbol     string `json:"symbol,omitempty"`
	Passcode   string `json:"passcode"`
	Shift      bool   `json:"shift"`
	Dropped    bool   `json:"dropped,omitempty"`
	Auto       bool   `json:"auto,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type listEventsResponse struct {
	Session string          `json:"session"`
	Events  []eventResponse `json:"events"`
}

func toEventResponse(e *store.Event) eventResponse {
	return eventResponse{
		ID:         e.ID,
		Seq:        e.Seq,
		Kind:       e.Kind,
		Symbol:     e.Symbol,
		Passcode:   e.Passcode,
		Shift:      e.Shift,
		Dropped:    e.Dropped,
		Auto:       e.Auto,
		OccurredAt: e.OccurredAt.Format(time.RFC3339Nano),
	}
}

// ServeHTTP routes GET /api/events and GET /api/events/{id}.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/events"), "/")
	if id == "" {
		h.list(w, r)
		return
	}
	h.get(w, id)
}

// list handles GET /api/events?limit=N and returns the newest N events in order.
func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := DefaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxEventLimit)
	}

	events, err := h.store.Events().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Session: h.store.Session(),
		Events:  make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, toEventResponse(e))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/events/{id}.
func (h *EventsHandler) get(w http.ResponseWriter, id string) {
	e, err := h.store.Events().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(e))
}
