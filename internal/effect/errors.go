package effect

import (
	"errors"
	"fmt"
)

// ErrUnknownEffect indicates a name that matches no registered effect.
var ErrUnknownEffect = errors.New("unknown effect")

// UnknownEffectError wraps ErrUnknownEffect with the offending name.
type UnknownEffectError struct {
	Name string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("unknown effect %q", e.Name)
}

func (e *UnknownEffectError) Unwrap() error {
	return ErrUnknownEffect
}

// invariantError reports a broken internal invariant found by an
// effect's Validate.
type invariantError struct {
	effect string
	detail string
	index  int
}

func (e *invariantError) Error() string {
	return fmt.Sprintf("%s: %s (index %d)", e.effect, e.detail, e.index)
}
