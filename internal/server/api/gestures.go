package api

import (
	"net/http"

	"github.com/ayusman/mudra/internal/gesture"
)

// GestureHandler lists the recognized gestures in evaluation order.
type GestureHandler struct{}

// NewGestureHandler creates a GestureHandler.
func NewGestureHandler() *GestureHandler {
	return &GestureHandler{}
}

type gestureResponse struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Shifted string `json:"shifted,omitempty"`
}

type listGesturesResponse struct {
	Gestures []gestureResponse `json:"gestures"`
}

// ServeHTTP handles GET /api/gestures.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rules := gesture.Rules()

	// Thumbs down is checked before any letter rule.
	response := listGesturesResponse{
		Gestures: make([]gestureResponse, 0, len(rules)+1),
	}
	response.Gestures = append(response.Gestures, gestureResponse{
		Name:   "thumbs-down",
		Symbol: string(gesture.Delete),
	})

	for _, rule := range rules {
		response.Gestures = append(response.Gestures, gestureResponse{
			Name:    rule.Name,
			Symbol:  string(gesture.Letter(rule.Letter, false)),
			Shifted: string(gesture.Letter(rule.Letter, true)),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
