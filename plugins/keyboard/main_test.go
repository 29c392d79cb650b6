package main

import (
	"strings"
	"testing"
)

func TestBuildTypeScript(t *testing.T) {
	tests := []struct {
		text  string
		enter bool
		want  string
	}{
		{"abCdef", false, `tell application "System Events" to keystroke "abCdef"`},
		{"ab", true, "tell application \"System Events\" to keystroke \"ab\"\ntell application \"System Events\" to key code 36"},
		{`a"b`, false, `tell application "System Events" to keystroke "a\"b"`},
	}

	for _, tt := range tests {
		if got := buildTypeScript(tt.text, tt.enter); got != tt.want {
			t.Errorf("buildTypeScript(%q, %v) = %q, want %q", tt.text, tt.enter, got, tt.want)
		}
	}
}

func TestHandle_UnknownAction(t *testing.T) {
	for _, action := range []string{"keystroke", "shortcut", ""} {
		err := handle(Request{Action: action, Params: []byte(`{"key":"a"}`)})
		if err == nil || !strings.Contains(err.Error(), "unknown action") {
			t.Errorf("handle(%q) error = %v, want unknown action", action, err)
		}
	}
}

func TestHandleType_EmptyText(t *testing.T) {
	if err := handleType([]byte(`{"text":""}`)); err == nil {
		t.Error("expected error for empty text")
	}
}
