// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package form implements the form controller: it owns the current prompt
// snapshot, applies single-field edits, recomputes the assembled prompt and
// runs the copy acknowledgment state machine (idle -> copied -> idle).
package form

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"storyprompt/internal/prompt"
)

// Clipboard is the system clipboard. WriteAll replaces its contents.
type Clipboard interface {
	WriteAll(text string) error
}

// ClipboardFunc adapts a function to the Clipboard interface.
type ClipboardFunc func(text string) error

// WriteAll calls f(text).
func (f ClipboardFunc) WriteAll(text string) error { return f(text) }

// ErrNoClipboard is returned by Copy when the controller has no clipboard.
var ErrNoClipboard = errors.New("no clipboard configured")

// scheduleFunc runs f after d and returns a function that cancels it.
type scheduleFunc func(d time.Duration, f func()) (cancel func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Option configures a Controller.
type Option func(*Controller)

// WithAckDelay sets how long the copied acknowledgment lasts.
func WithAckDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.ackDelay = d
		}
	}
}

// WithOnChange registers a callback invoked after every state change,
// including the timer-driven revert to idle. It runs without the
// controller lock held and may call back into the controller.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Snapshot is a consistent read of the controller state.
type Snapshot struct {
	Inputs  prompt.Inputs
	Prompt  string
	Ack     AckState
	Warning string
}

// Controller owns one form session. It is safe for concurrent use; the
// acknowledgment timer fires on its own goroutine.
type Controller struct {
	mu        sync.Mutex
	inputs    prompt.Inputs
	output    string
	ack       AckState
	warning   string
	cancelAck func() bool
	ackGen    uint64

	clipboard Clipboard
	ackDelay  time.Duration
	schedule  scheduleFunc
	onChange  func()
}

// New creates a controller initialized to the default snapshot.
func New(clipboard Clipboard, opts ...Option) *Controller {
	c := &Controller{
		clipboard: clipboard,
		ackDelay:  DefaultAckDelay,
		schedule:  afterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.setInputs(prompt.Defaults())
	return c
}

// Inputs returns the current snapshot.
func (c *Controller) Inputs() prompt.Inputs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputs
}

// Prompt returns the prompt assembled from the current snapshot.
func (c *Controller) Prompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output
}

// Ack returns the copy acknowledgment state.
func (c *Controller) Ack() AckState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ack
}

// Warning returns the last clipboard failure message, or "".
func (c *Controller) Warning() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warning
}

// Snapshot returns inputs, prompt and acknowledgment in one read.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Inputs: c.inputs, Prompt: c.output, Ack: c.ack, Warning: c.warning}
}

// AckDelay returns the configured acknowledgment duration.
func (c *Controller) AckDelay() time.Duration {
	return c.ackDelay
}

// Update replaces one field and recomputes the prompt. The snapshot is left
// untouched when the field is unknown or the tone does not parse.
func (c *Controller) Update(field prompt.Field, value string) error {
	c.mu.Lock()
	next, err := c.inputs.With(field, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.setInputs(next)
	c.warning = ""
	c.mu.Unlock()

	c.changed()
	return nil
}

// Reset restores the default snapshot. A pending acknowledgment is left to
// expire on its own.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.setInputs(prompt.Defaults())
	c.warning = ""
	c.mu.Unlock()

	c.changed()
}

// Copy writes the current prompt to the clipboard. On success the
// acknowledgment switches to copied and a fresh revert is scheduled,
// replacing any pending one. On failure the acknowledgment goes back to idle,
// the failure is kept as a warning and the error is returned.
func (c *Controller) Copy() error {
	c.mu.Lock()
	text := c.output
	clip := c.clipboard
	c.mu.Unlock()

	var err error
	if clip == nil {
		err = ErrNoClipboard
	} else {
		err = clip.WriteAll(text)
	}

	c.mu.Lock()
	c.stopAckTimer()
	if err != nil {
		c.ack = AckIdle
		c.warning = fmt.Sprintf("Could not copy to clipboard: %v", err)
		c.mu.Unlock()
		c.changed()
		return fmt.Errorf("copy prompt: %w", err)
	}

	c.ack = AckCopied
	c.warning = ""
	c.ackGen++
	gen := c.ackGen
	c.cancelAck = c.schedule(c.ackDelay, func() { c.expireAck(gen) })
	c.mu.Unlock()

	c.changed()
	return nil
}

// Close cancels a pending acknowledgment timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAckTimer()
}

// expireAck reverts to idle unless a newer copy has superseded gen.
func (c *Controller) expireAck(gen uint64) {
	c.mu.Lock()
	if gen != c.ackGen || c.ack != AckCopied {
		c.mu.Unlock()
		return
	}
	c.ack = AckIdle
	c.cancelAck = nil
	c.mu.Unlock()

	c.changed()
}

// stopAckTimer cancels the pending revert. Callers hold c.mu. A timer that
// already fired is fenced off by the generation counter.
func (c *Controller) stopAckTimer() {
	if c.cancelAck != nil {
		c.cancelAck()
		c.cancelAck = nil
	}
	c.ackGen++
}

// setInputs stores a new snapshot and its assembled prompt. Callers hold c.mu.
func (c *Controller) setInputs(in prompt.Inputs) {
	c.inputs = in
	c.output = prompt.Assemble(in)
}

// OnChange replaces the callback fired after every transition, including the
// timer reversion. The callback runs without the controller lock held.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller) changed() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
