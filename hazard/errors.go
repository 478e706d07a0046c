package hazard

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrDoubleRetire is reported through a Retired buffer's violation hook
// when the same address is retired twice without an intervening reclaim.
// Double-retire is a contract violation; this module surfaces it as a
// typed value instead of a bare assert, so tests can assert on it too.
var ErrDoubleRetire = errors.New("hazard: address retired twice without an intervening reclaim")

// ErrAlreadyReleased is returned by Handle.TryRelease when it finds the
// handle already released. Release itself is idempotent and never returns this —
// it exists for callers that want to track repeated releases explicitly.
var ErrAlreadyReleased = errors.New("hazard: handle already released")

// ReclaimViolationKind classifies a ReclaimViolation.
type ReclaimViolationKind int

const (
	// DoubleRetire marks an address retired while already pending reclaim.
	DoubleRetire ReclaimViolationKind = iota
	// DeleterPanic marks a deleter that panicked during a reclamation scan.
	DeleterPanic
)

func (k ReclaimViolationKind) String() string {
	switch k {
	case DoubleRetire:
		return "double-retire"
	case DeleterPanic:
		return "deleter-panic"
	default:
		return "unknown"
	}
}

// ReclaimViolation describes a contract violation observed by a Retired
// buffer. It is passed to the buffer's OnViolation hook (see WithOnViolation).
type ReclaimViolation struct {
	Kind ReclaimViolationKind
	Addr unsafe.Pointer
	// Err is ErrDoubleRetire or the recovered panic value wrapped as an
	// error, depending on Kind.
	Err error
}

func (v ReclaimViolation) String() string {
	return fmt.Sprintf("%s addr=%p: %v", v.Kind, v.Addr, v.Err)
}
