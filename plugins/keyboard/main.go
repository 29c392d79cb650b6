// Package main provides a keyboard plugin for macOS.
// It types completed passcodes into the focused application via AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action  string          `json:"action"`
	Session string          `json:"session,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Params  json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TypeParams defines parameters for the type action.
type TypeParams struct {
	Text  string `json:"text"`
	Enter bool   `json:"enter"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	if err := handle(req); err != nil {
		writeErrorResponse(err.Error())
		return
	}

	writeSuccessResponse()
}

// handle dispatches a request to its action.
func handle(req Request) error {
	switch req.Action {
	case "type":
		if err := handleType(req.Params); err != nil {
			return fmt.Errorf("action %s failed: %w", req.Action, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown action: %s", req.Action)
	}
}

// handleType types the given text into the focused application.
func handleType(params json.RawMessage) error {
	var p TypeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	if p.Text == "" {
		return fmt.Errorf("text is required")
	}

	return runAppleScript(buildTypeScript(p.Text, p.Enter))
}

// buildTypeScript generates an AppleScript that types text, optionally
// followed by return.
func buildTypeScript(text string, enter bool) string {
	script := fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, escapeAppleScript(text))
	if enter {
		script += "\n" + `tell application "System Events" to key code 36`
	}
	return script
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
