// Package tray shows the passcode display in the system tray and offers
// enable, reset and quit controls.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onReset  func()
	onQuit   func()
	enabled  bool
	display  string
	shift    bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuDisplay *systray.MenuItem
	menuShift   *systray.MenuItem
}

// New creates a Tray with detection enabled and an empty display.
func New(display string) *Tray {
	return &Tray{
		enabled: true,
		display: display,
	}
}

// OnToggle sets the callback called when detection is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnReset sets the callback called when the reset item is clicked.
func (t *Tray) OnReset(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = fn
}

// OnQuit sets the callback called when the quit item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray. It blocks until Quit is called and must run on the
// main goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit stops the tray event loop.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	t.mu.Lock()
	systray.SetTitle(t.display)
	systray.SetTooltip("mudra gesture passcode")

	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle gesture input")
	systray.AddSeparator()

	t.menuDisplay = systray.AddMenuItem(t.display, "Current passcode")
	t.menuDisplay.Disable()
	t.menuShift = systray.AddMenuItem(shiftTitle(t.shift), "Show two hands for upper case")
	t.menuShift.Disable()
	systray.AddSeparator()

	menuReset := systray.AddMenuItem("Reset passcode", "Clear the passcode")
	menuQuit := systray.AddMenuItem("Quit", "Quit mudra")
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuReset.ClickedCh:
				t.handleReset()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

func shiftTitle(shift bool) string {
	if shift {
		return "Shift: on"
	}
	return "Shift: off"
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
	callback := t.onToggle
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleReset() {
	t.mu.RLock()
	callback := t.onReset
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetDisplay updates the passcode display and the shift indicator.
func (t *Tray) SetDisplay(display string, shift bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.display = display
	t.shift = shift
	if t.menuDisplay != nil {
		systray.SetTitle(display)
		t.menuDisplay.SetTitle(display)
		t.menuShift.SetTitle(shiftTitle(shift))
	}
}

// Display returns the last display string and shift state.
func (t *Tray) Display() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.display, t.shift
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
