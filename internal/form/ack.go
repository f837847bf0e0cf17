// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package form

import "time"

// DefaultAckDelay is how long the "Copied" acknowledgment stays visible.
const DefaultAckDelay = 1500 * time.Millisecond

// AckState is the copy acknowledgment shown on the copy button.
type AckState int

const (
	AckIdle AckState = iota
	AckCopied
)

// String returns "idle" or "copied".
func (s AckState) String() string {
	if s == AckCopied {
		return "copied"
	}
	return "idle"
}

// ButtonLabel is the copy button text for the state.
func (s AckState) ButtonLabel() string {
	if s == AckCopied {
		return "Copied"
	}
	return "Copy Prompt"
}

// Acknowledgment is the copy state machine for front ends that cannot hold
// a timer between events, such as the browser session. The state is derived
// from the time of the last successful copy: copied while now is inside the
// delay window, idle otherwise. Recording a new copy moves the window.
type Acknowledgment struct {
	CopiedAt time.Time `json:"copied_at,omitempty"`
	Warning  string    `json:"warning,omitempty"`
}

// Copied records a successful copy at now and clears any warning.
func (a *Acknowledgment) Copied(now time.Time) {
	a.CopiedAt = now
	a.Warning = ""
}

// Failed records a failed copy. The acknowledgment reverts to idle and the
// reason is kept for display.
func (a *Acknowledgment) Failed(reason string) {
	a.CopiedAt = time.Time{}
	if reason == "" {
		reason = "clipboard unavailable"
	}
	a.Warning = reason
}

// Clear drops the acknowledgment and any warning.
func (a *Acknowledgment) Clear() {
	*a = Acknowledgment{}
}

// State returns the state at now for the given delay.
func (a Acknowledgment) State(now time.Time, delay time.Duration) AckState {
	if a.CopiedAt.IsZero() {
		return AckIdle
	}
	if now.Before(a.CopiedAt.Add(delay)) {
		return AckCopied
	}
	return AckIdle
}

// Remaining returns how long the copied state still lasts at now, or zero.
func (a Acknowledgment) Remaining(now time.Time, delay time.Duration) time.Duration {
	if a.State(now, delay) != AckCopied {
		return 0
	}
	return a.CopiedAt.Add(delay).Sub(now)
}
