package hazard

import (
	"sync/atomic"
	"unsafe"
)

// noCopy helps `go vet` flag accidental copies of types that embed it. It
// has no runtime effect; Handle's actual non-copy contract is enforced by
// convention (always take and pass *Handle) since Go has no move-only types.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is a scoped hazard protection: while live, it guarantees the
// registry reports its address as hazardous to any concurrent reclamation
// scan. Construct one with Registry.Protect or Retired.Protect; release it
// with Release once the protected address is no longer dereferenced.
//
// A Handle must not be copied — pass *Handle, never Handle. Release is
// idempotent, so a caller that accidentally releases the same *Handle twice
// does not double-clear a subsequent, unrelated protection of the same
// slot; but nothing recovers a Handle that is never released at all, since
// that is an unrecoverable caller bug.
type Handle struct {
	noCopy

	reg      *Registry
	slot     *slot
	addr     unsafe.Pointer
	released int32
}

// Addr returns the address this handle protects.
func (h *Handle) Addr() unsafe.Pointer {
	return h.addr
}

// Release clears the underlying slot, provided nothing has republished a
// different address into it in the meantime. Safe to call more than once;
// only the first call has any effect.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	_ = h.TryRelease()
}

// TryRelease behaves like Release but reports ErrAlreadyReleased instead of
// silently doing nothing when called on a handle that was already
// released — for callers that want to assert their release discipline
// rather than rely on Release's idempotence.
func (h *Handle) TryRelease() error {
	if h == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&h.released, 0, 1) {
		return ErrAlreadyReleased
	}
	h.reg.clear(h.slot, h.addr)
	return nil
}
