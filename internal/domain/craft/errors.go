package craft

import (
	"errors"
	"fmt"
)

var (
	ErrInadmissible    = errors.New("action inadmissible")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

const (
	ReasonCooldown  = "on_cooldown"
	ReasonPool      = "insufficient_pool"
	ReasonStability = "insufficient_stability"
	ReasonToxicity  = "toxicity_cap"
	ReasonNoItem    = "item_exhausted"
)

// InadmissibleError explains why a specific action cannot run from the
// current state. It unwraps to ErrInadmissible.
type InadmissibleError struct {
	ActionID string
	Reason   string
}

func (e *InadmissibleError) Error() string {
	return fmt.Sprintf("action %s inadmissible: %s", e.ActionID, e.Reason)
}

func (e *InadmissibleError) Unwrap() error { return ErrInadmissible }

func inadmissible(actionID, reason string) error {
	return &InadmissibleError{ActionID: actionID, Reason: reason}
}

// ValidationError marks a snapshot field that failed validation. It
// unwraps to ErrInvalidSnapshot.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("snapshot field %s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSnapshot }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
