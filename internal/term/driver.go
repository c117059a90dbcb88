// Package term abstracts the terminal behind a narrow driver
// interface so the animation loop can run against a real screen or a
// headless stand-in.
package term

import (
	"errors"
	"fmt"

	"github.com/san-kum/termsaver/internal/screen"
)

// ErrInit indicates the terminal could not be initialized.
var ErrInit = errors.New("terminal init failed")

// InitError wraps ErrInit with the underlying cause.
type InitError struct {
	Cause error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("terminal init failed: %v", e.Cause)
}

func (e *InitError) Unwrap() error {
	return ErrInit
}

// EventKind discriminates driver events.
type EventKind int

const (
	// EventQuit is emitted on q, Esc, or Ctrl+C.
	EventQuit EventKind = iota
	// EventResize carries the new terminal size.
	EventResize
)

// Event is a terminal event delivered to the animation loop.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
}

// Driver is the surface the animation loop draws on. Init must be
// called first; Fini restores the terminal and must run even on panic.
type Driver interface {
	Init() (width, height int, err error)
	Fini()
	SetCell(x, y int, c screen.Cell)
	Show()
	Events() <-chan Event
}
