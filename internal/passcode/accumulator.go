// Package passcode accumulates classified gestures into a fixed-length passcode.
package passcode

import (
	"strings"
	"sync"
	"time"

	clk "github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Accumulator defaults.
const (
	// DefaultCapacity is the passcode length.
	DefaultCapacity = 6
	// DefaultCooldown is the minimum time between accepted commits.
	DefaultCooldown = 2000 * time.Millisecond
	// DefaultResetDelay is how long a full passcode stays before it is cleared.
	DefaultResetDelay = 3000 * time.Millisecond
	// DisplayPrefix starts every display string.
	DisplayPrefix = "Passcode: "
)

// Config holds the accumulator settings. Zero values select the defaults.
type Config struct {
	Capacity   int
	Cooldown   time.Duration
	ResetDelay time.Duration
	Clock      clk.Clock
	Logger     *zap.SugaredLogger
}

// Accumulator owns the passcode buffer, the commit cooldown and the shift
// flag. OnFrame is driven serially by the frame pipeline; the auto-reset
// timer fires on the clock's goroutine, so all state sits behind mu.
type Accumulator struct {
	capacity   int
	cooldown   time.Duration
	resetDelay time.Duration
	clock      clk.Clock
	logger     *zap.SugaredLogger

	mu          sync.Mutex
	buffer      []gesture.Symbol
	shift       bool
	lastCommit  time.Time
	committed   bool
	resetTimer  *clk.Timer
	resetGen    uint64
	subscribers []func(Event)
}

// New creates an Accumulator with an empty buffer.
func New(cfg Config) *Accumulator {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.ResetDelay <= 0 {
		cfg.ResetDelay = DefaultResetDelay
	}
	if cfg.Clock == nil {
		cfg.Clock = clk.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	return &Accumulator{
		capacity:   cfg.Capacity,
		cooldown:   cfg.Cooldown,
		resetDelay: cfg.ResetDelay,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		buffer:     make([]gesture.Symbol, 0, cfg.Capacity),
	}
}

// Subscribe registers fn to receive every event. Callbacks run outside the
// accumulator lock, in the goroutine that produced the event.
func (a *Accumulator) Subscribe(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// OnFrame processes the hands detected in one video frame. Shift is active
// iff exactly two hands are present; the first hand is classified and its
// symbol committed unless the cooldown is still running.
func (a *Accumulator) OnFrame(hands []detector.HandLandmarks) {
	a.mu.Lock()

	now := a.clock.Now()
	var events []Event

	if shift := len(hands) == 2; shift != a.shift {
		a.shift = shift
		a.logger.Infow("shift mode changed", "shift", shift, "hands", len(hands))
		events = append(events, a.eventLocked(EventShift, gesture.None, now))
	}

	if len(hands) > 0 {
		sym := gesture.Classify(hands[0], a.shift)
		if sym != gesture.None && a.cooldownElapsedLocked(now) {
			events = append(events, a.commitLocked(sym, now)...)
		}
	}

	subs := a.subscribers
	a.mu.Unlock()

	publish(subs, events)
}

// Reset clears the buffer and cancels a pending auto-reset. The cooldown is
// left untouched.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	a.cancelResetLocked()
	ev := a.clearLocked(a.clock.Now(), false)
	subs := a.subscribers
	a.mu.Unlock()

	publish(subs, []Event{ev})
}

// Snapshot returns a copy of the committed symbols.
func (a *Accumulator) Snapshot() []gesture.Symbol {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]gesture.Symbol, len(a.buffer))
	copy(out, a.buffer)
	return out
}

// Passcode returns the committed symbols joined together.
func (a *Accumulator) Passcode() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.passcodeLocked()
}

// Display returns the text shown to the user.
func (a *Accumulator) Display() string {
	return DisplayPrefix + a.Passcode()
}

// Shift reports whether shift mode was active in the last frame.
func (a *Accumulator) Shift() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shift
}

// Capacity returns the passcode length.
func (a *Accumulator) Capacity() int {
	return a.capacity
}

// ResetPending reports whether an auto-reset is scheduled.
func (a *Accumulator) ResetPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resetTimer != nil
}

// State is a consistent view of the accumulator taken under one lock.
type State struct {
	Symbols      []gesture.Symbol
	Passcode     string
	Display      string
	Shift        bool
	Capacity     int
	ResetPending bool
}

// State returns the buffer, display and flags together.
func (a *Accumulator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbols := make([]gesture.Symbol, len(a.buffer))
	copy(symbols, a.buffer)
	code := a.passcodeLocked()
	return State{
		Symbols:      symbols,
		Passcode:     code,
		Display:      DisplayPrefix + code,
		Shift:        a.shift,
		Capacity:     a.capacity,
		ResetPending: a.resetTimer != nil,
	}
}

func (a *Accumulator) cooldownElapsedLocked(now time.Time) bool {
	return !a.committed || now.Sub(a.lastCommit) >= a.cooldown
}

func (a *Accumulator) commitLocked(sym gesture.Symbol, now time.Time) []Event {
	a.lastCommit = now
	a.committed = true

	if sym == gesture.Delete {
		if n := len(a.buffer); n > 0 {
			a.buffer = a.buffer[:n-1]
		}
		// A passcode that is no longer complete must not be cleared later.
		if a.resetTimer != nil && len(a.buffer) < a.capacity {
			a.cancelResetLocked()
		}
		a.logger.Infow("deleted last character", "passcode", a.passcodeLocked())
		return []Event{a.eventLocked(EventDelete, sym, now)}
	}

	if len(a.buffer) >= a.capacity {
		a.logger.Debugw("passcode full, input dropped", "symbol", sym)
		ev := a.eventLocked(EventCommit, sym, now)
		ev.Dropped = true
		return []Event{ev}
	}

	a.buffer = append(a.buffer, sym)
	a.logger.Infow("committed", "symbol", sym, "passcode", a.passcodeLocked())
	events := []Event{a.eventLocked(EventCommit, sym, now)}

	if len(a.buffer) == a.capacity {
		a.logger.Infow("passcode entered", "passcode", a.passcodeLocked(), "reset_in", a.resetDelay)
		a.scheduleResetLocked()
		events = append(events, a.eventLocked(EventComplete, gesture.None, now))
	}
	return events
}

func (a *Accumulator) scheduleResetLocked() {
	a.cancelResetLocked()
	gen := a.resetGen
	a.resetTimer = a.clock.AfterFunc(a.resetDelay, func() {
		a.autoReset(gen)
	})
}

// cancelResetLocked stops the pending timer. Bumping the generation turns a
// timer that already fired but has not taken the lock into a no-op.
func (a *Accumulator) cancelResetLocked() {
	if a.resetTimer != nil {
		a.resetTimer.Stop()
		a.resetTimer = nil
	}
	a.resetGen++
}

func (a *Accumulator) autoReset(gen uint64) {
	a.mu.Lock()
	if gen != a.resetGen || a.resetTimer == nil {
		a.mu.Unlock()
		return
	}
	a.resetTimer = nil
	ev := a.clearLocked(a.clock.Now(), true)
	subs := a.subscribers
	a.mu.Unlock()

	publish(subs, []Event{ev})
}

func (a *Accumulator) clearLocked(now time.Time, auto bool) Event {
	a.buffer = a.buffer[:0]
	a.logger.Infow("passcode has been reset", "auto", auto)
	ev := a.eventLocked(EventReset, gesture.None, now)
	ev.Auto = auto
	return ev
}

func (a *Accumulator) passcodeLocked() string {
	var b strings.Builder
	for _, s := range a.buffer {
		b.WriteString(string(s))
	}
	return b.String()
}

func (a *Accumulator) eventLocked(t EventType, sym gesture.Symbol, now time.Time) Event {
	code := a.passcodeLocked()
	return Event{
		Type:     t,
		Symbol:   sym,
		Passcode: code,
		Display:  DisplayPrefix + code,
		Length:   len(a.buffer),
		Shift:    a.shift,
		At:       now,
	}
}

func publish(subs []func(Event), events []Event) {
	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
