package state

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is matched by errors returned from SetStrict when a partial
// names a key the state does not hold.
var ErrUnknownKey = errors.New("unknown state key")

// ErrUnknownKeyOrder is returned when a Config names an unsupported key order.
var ErrUnknownKeyOrder = errors.New("unknown key order")

// UnknownKeyError lists the keys a strict update rejected.
type UnknownKeyError struct {
	Keys []string
}

// Error implements the error interface.
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownKey, strings.Join(e.Keys, ", "))
}

// Unwrap enables errors.Is(err, ErrUnknownKey).
func (e *UnknownKeyError) Unwrap() error {
	return ErrUnknownKey
}
