package cats

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("cat not found")
)

// StoreError envuelve fallas de persistencia (DB o archivos).
// Siempre llega al caller; el handler lo traduce a 500.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
