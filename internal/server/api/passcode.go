package api

import (
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/passcode"
)

// Passcode is the accumulator state the handler reads and resets.
type Passcode interface {
	State() passcode.State
	Reset()
}

// PasscodeHandler serves /api/passcode and /api/passcode/reset.
type PasscodeHandler struct {
	passcode Passcode
}

// NewPasscodeHandler creates a PasscodeHandler over p.
func NewPasscodeHandler(p Passcode) *PasscodeHandler {
	return &PasscodeHandler{passcode: p}
}

// PasscodeResponse is the JSON view of the buffer.
type PasscodeResponse struct {
	Passcode     string   `json:"passcode"`
	Display      string   `json:"display"`
	Symbols      []string `json:"symbols"`
	Length       int      `json:"length"`
	Capacity     int      `json:"capacity"`
	Shift        bool     `json:"shift"`
	ResetPending bool     `json:"reset_pending"`
}

// ServeHTTP routes GET /api/passcode and POST /api/passcode/reset.
func (h *PasscodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/passcode")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, h.state())
	case "reset":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.passcode.Reset()
		writeJSON(w, http.StatusOK, h.state())
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *PasscodeHandler) state() PasscodeResponse {
	st := h.passcode.State()

	symbols := make([]string, len(st.Symbols))
	for i, s := range st.Symbols {
		symbols[i] = string(s)
	}

	return PasscodeResponse{
		Passcode:     st.Passcode,
		Display:      st.Display,
		Symbols:      symbols,
		Length:       len(st.Symbols),
		Capacity:     st.Capacity,
		Shift:        st.Shift,
		ResetPending: st.ResetPending,
	}
}
