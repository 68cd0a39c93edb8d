// Package host declares the facilities the clock consumes from its
// surrounding UI environment: display geometry, a time source, buffer
// and window allocators, a style registry, event subscription and task
// scheduling. Implementations deliver events and scheduled callbacks
// serially on a single UI goroutine.
package host

import "time"

// StyleSpec describes a named style in the host registry.
type StyleSpec struct {
	Foreground string
	Bold       bool
}

// WindowConfig positions and decorates a floating window.
type WindowConfig struct {
	Row    int
	Col    int
	Width  int
	Height int
	// Border names a border set understood by the host: "none",
	// "normal", "rounded", "double" or "thick".
	Border string
	// Style is a name previously passed to RegisterStyle.
	Style string
	// Blend is the window transparency, 0 (opaque) to 100. Any value
	// above zero makes space cells see-through.
	Blend int
	// ZIndex orders windows; higher values stack above lower ones.
	ZIndex int
}

// Buffer is an unlisted, non-persistent text buffer. A buffer stays
// write-locked except during SetLines.
type Buffer interface {
	Valid() bool
	SetLines(lines []string) error
	Close()
}

// Window is a floating, non-focusable surface showing a Buffer.
type Window interface {
	Valid() bool
	// Move repositions or resizes the window in place. An error means
	// the host refused the update and the window must be recreated.
	Move(cfg WindowConfig) error
	SetStyle(style string, blend int) error
	Close()
}

// Task is a handle to a scheduled callback.
type Task interface {
	Stop()
}

// Event is a host notification delivered to subscribers.
type Event interface{}

// ResizeEvent reports a new display size.
type ResizeEvent struct {
	Cols int
	Rows int
}

// ShutdownEvent reports that the host is going away.
type ShutdownEvent struct{}

// Host is the full set of facilities the clock needs.
type Host interface {
	// Size reports the visible display dimensions in cells.
	Size() (cols, rows int)
	// Now returns the current wall-clock time.
	Now() time.Time
	NewBuffer(lines []string) (Buffer, error)
	NewWindow(buf Buffer, cfg WindowConfig) (Window, error)
	RegisterStyle(name string, spec StyleSpec)
	// Subscribe registers fn for host events and returns a cancel
	// function. Cancelling during dispatch is allowed.
	Subscribe(fn func(Event)) (cancel func())
	// Every schedules fn at a fixed interval with an immediate first
	// run. ok is false when the host has no recurring timer facility;
	// callers then fall back to chaining After.
	Every(d time.Duration, fn func()) (task Task, ok bool)
	After(d time.Duration, fn func()) Task
}
