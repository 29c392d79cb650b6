// Package plugin discovers and runs the external programs notified when a
// passcode is complete.
package plugin

import (
	"encoding/json"
	"slices"
)

// ActionType is the action a completion plugin must support to receive the
// finished passcode.
const ActionType = "type"

// Manifest is the plugin.json file found in each plugin directory.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Supports reports whether the plugin declares action.
func (m Manifest) Supports(action string) bool {
	return slices.Contains(m.Actions, action)
}

// Request is written as JSON to the plugin's stdin.
type Request struct {
	Action  string          `json:"action"`
	Session string          `json:"session,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Params  json.RawMessage `json:"params"`
}

// TypeParams are the params of an ActionType request.
type TypeParams struct {
	Text string `json:"text"`
}

// NewTypeRequest builds the request that hands a completed passcode to a
// plugin.
func NewTypeRequest(session, passcode string) (*Request, error) {
	params, err := json.Marshal(TypeParams{Text: passcode})
	if err != nil {
		return nil, err
	}
	return &Request{
		Action:  ActionType,
		Session: session,
		Params:  params,
	}, nil
}

// Response is read as JSON from the plugin's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin is a discovered plugin and where it lives on disk.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
