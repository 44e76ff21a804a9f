package core

import "time"

// DefaultEditWindow is how long after creation a comment or calendar entry
// stays editable and deletable.
const DefaultEditWindow = 5 * time.Minute

// EditWindow is the time-boxed mutation policy shared by comments and
// calendar entries. It is a pure predicate over two instants so tests can
// drive it with a fixed clock. The same predicate governs both edit and
// delete; there is no separate delete window.
//
// The expense ledger deliberately does NOT use this policy: expense updates
// are role-gated upstream, not time-gated. Keep the two policies distinct.
type EditWindow struct {
	Window time.Duration
}

// NewEditWindow returns the policy with the default 5-minute window.
func NewEditWindow() EditWindow {
	return EditWindow{Window: DefaultEditWindow}
}

// CanModify reports whether an item created at createdAt is still mutable at
// now. The window is anchored to creation: edits never refresh it.
//
// Callers are expected to pass now >= createdAt. A negative elapsed time
// (clock skew between client and store) is treated as still-editable rather
// than locking the item out; this is a known edge case, not a correction.
func (w EditWindow) CanModify(createdAt, now time.Time) bool {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		return true
	}
	return elapsed < w.Window
}

// Remaining returns how long the item stays mutable, zero once locked.
// UIs poll this every second for the countdown; it must be recomputed on
// every observation, never cached.
func (w EditWindow) Remaining(createdAt, now time.Time) time.Duration {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		return w.Window
	}
	if rem := w.Window - elapsed; rem > 0 {
		return rem
	}
	return 0
}
