// Copyright (c) 2026 The lockfree Authors
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package hazard

import (
	"sort"
	"sync/atomic"
	"unsafe"
)

// slot is one node of the registry's append-only linked list. Its addr
// field transitions only between nil (empty) and a concrete address; only
// the slot's owner writes it, any goroutine may read it during a snapshot.
type slot struct {
	addr unsafe.Pointer
	next unsafe.Pointer // *slot
}

// Registry is the process-wide (or, for test isolation, per-suite) set of
// hazard slots. It is a plain value rather than package-level state so that
// independent callers can run against independent registries.
type Registry struct {
	head unsafe.Pointer // *slot

	slotCount          int64
	liveAtLastSnapshot int64

	logger Logger
}

// RegistryOption configures a Registry built by NewRegistry.
type RegistryOption func(*Registry)

// WithRegistryLogger installs a Logger that observes slot-list growth.
func WithRegistryLogger(l Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{logger: NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// acquireSlot splices a freshly allocated, empty slot onto the head of the
// list via a CAS retry loop. Slots are never removed, so there is no ABA
// hazard on the list itself.
func (r *Registry) acquireSlot() *slot {
	s := &slot{}
	for {
		head := atomic.LoadPointer(&r.head)
		s.next = head
		if atomic.CompareAndSwapPointer(&r.head, head, unsafe.Pointer(s)) {
			n := atomic.AddInt64(&r.slotCount, 1)
			r.logger.Debugf("hazard: registry grew to %d slots", n)
			return s
		}
	}
}

// Protect publishes addr into a freshly acquired slot and returns a Handle
// guarding it. Callers that protect many addresses from the same logical
// thread should prefer Retired.Protect, which reuses a cached slot instead
// of acquiring a new one on every call.
func (r *Registry) Protect(addr unsafe.Pointer) *Handle {
	s := r.acquireSlot()
	atomic.StorePointer(&s.addr, addr)
	return &Handle{reg: r, slot: s, addr: addr}
}

// clear resets slot's address back to empty, but only if it still equals
// addr — a stale clear (racing against a later publish of the same slot)
// must never erase a newer protection.
func (r *Registry) clear(s *slot, addr unsafe.Pointer) {
	atomic.CompareAndSwapPointer(&s.addr, addr, nil)
}

// Snapshot traverses the registry and returns every currently-published
// address, sorted ascending by numeric value. The snapshot is a lower
// bound on the hazard set at the moment of the head load: it may include
// addresses cleared since (harmless — at most a deferred free) but includes
// every address published before the head load's linearization point.
func (r *Registry) Snapshot() []unsafe.Pointer {
	var out []unsafe.Pointer
	cur := (*slot)(atomic.LoadPointer(&r.head))
	for cur != nil {
		if a := atomic.LoadPointer(&cur.addr); a != nil {
			out = append(out, a)
		}
		cur = (*slot)(atomic.LoadPointer(&cur.next))
	}
	sort.Slice(out, func(i, j int) bool { return uintptr(out[i]) < uintptr(out[j]) })
	atomic.StoreInt64(&r.liveAtLastSnapshot, int64(len(out)))
	return out
}

// RegistryStats summarizes registry size: total slots acquired and the
// live count observed at the most recent snapshot.
type RegistryStats struct {
	// SlotCount is the total number of slots ever acquired.
	SlotCount int64
	// LiveSlotCount is the number of non-empty slots observed at the most
	// recent Snapshot call.
	LiveSlotCount int64
}

func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		SlotCount:     atomic.LoadInt64(&r.slotCount),
		LiveSlotCount: atomic.LoadInt64(&r.liveAtLastSnapshot),
	}
}
