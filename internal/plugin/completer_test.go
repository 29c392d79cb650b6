package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// installScript writes a discoverable plugin whose executable is script.
func installScript(t *testing.T, dir, name, script string, actions ...string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	pluginDir := writeManifest(t, dir, Manifest{Name: name, Executable: "run.sh", Actions: actions})
	if err := os.WriteFile(filepath.Join(pluginDir, "run.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
}

func newTestCompleter(t *testing.T, dir, name string) *Completer {
	t.Helper()

	manager := NewManager(dir, nil)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	return NewCompleter(manager, NewExecutor(5*time.Second, nil), name, "session-1", nil)
}

func TestCompleter_Complete(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "typed.json")

	installScript(t, tmpDir, "typer", `#!/bin/sh
cat > "`+out+`"
echo '{"success":true}'
`, ActionType)

	c := newTestCompleter(t, tmpDir, "typer")
	if c.Name() != "typer" {
		t.Errorf("Name() = %q, want typer", c.Name())
	}

	if err := c.Complete(context.Background(), "abCdef"); err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("plugin did not record its input: %v", err)
	}
	if !strings.Contains(string(data), `"text":"abCdef"`) {
		t.Errorf("plugin input missing passcode: %s", data)
	}
}

func TestCompleter_Complete_PluginFailure(t *testing.T) {
	tmpDir := t.TempDir()
	installScript(t, tmpDir, "typer", `#!/bin/sh
echo '{"success":false,"error":"no display"}'
`, ActionType)

	err := newTestCompleter(t, tmpDir, "typer").Complete(context.Background(), "abcdef")
	if err == nil || !strings.Contains(err.Error(), "no display") {
		t.Errorf("expected plugin error, got %v", err)
	}
}

func TestCompleter_Complete_Unresolved(t *testing.T) {
	tmpDir := t.TempDir()
	installScript(t, tmpDir, "volume", `#!/bin/sh
echo '{"success":true}'
`, "mute")

	err := newTestCompleter(t, tmpDir, "volume").Complete(context.Background(), "abcdef")
	if !errors.Is(err, ErrActionNotSupported) {
		t.Errorf("expected ErrActionNotSupported, got %v", err)
	}

	err = newTestCompleter(t, tmpDir, "missing").Complete(context.Background(), "abcdef")
	if !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}
