// Copyright (c) 2026 The lockfree Authors
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package stack is the reference consumer of package hazard: a lock-free,
// multi-producer multi-consumer LIFO container built directly on top of
// the hazard registry and retired buffer, exercising every contract those
// two provide (protect-then-reread, retire-after-unlink, ABA immunity).
package stack

import (
	"sync/atomic"
	"unsafe"

	"github.com/master-spike/lockfree/hazard"
)

type node[T any] struct {
	val  T
	next unsafe.Pointer // *node[T]
}

// Stack is a lock-free LIFO safe for any number of concurrent producers and
// consumers. Its zero value is an empty, ready-to-use stack.
//
// Push needs no hazard protection — it only ever reads the head pointer it
// is racing to replace, never a node it has already unlinked. TryPop does:
// each caller must supply a *hazard.Retired representing its own logical
// mutator (see the doc comment on hazard.Retired for why this is explicit
// rather than implicit thread-local state).
type Stack[T any] struct {
	head unsafe.Pointer // *node[T]
}

// New returns an empty Stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	n := &node[T]{val: v}
	for {
		top := atomic.LoadPointer(&s.head)
		n.next = top
		if atomic.CompareAndSwapPointer(&s.head, top, unsafe.Pointer(n)) {
			return
		}
	}
}

// TryPop removes and returns the top value, or reports ok=false if the
// stack was empty. local must belong to the calling mutator alone — it is
// not safe to share one *hazard.Retired across goroutines running
// concurrently.
func (s *Stack[T]) TryPop(local *hazard.Retired) (value T, ok bool) {
	for {
		top := atomic.LoadPointer(&s.head)
		if top == nil {
			var zero T
			return zero, false
		}

		h := local.Protect(top)

		// The critical re-read: without it, a concurrent popper could
		// unlink and retire top, and a scan could free it, all between
		// our first load above and the publish our Protect call just
		// performed. Re-checking after publication closes that window —
		// if top was already unlinked, we observe a different head here
		// and retry; otherwise any later scan is guaranteed to observe
		// our hazard.
		if top != atomic.LoadPointer(&s.head) {
			h.Release()
			continue
		}

		n := (*node[T])(top)
		below := atomic.LoadPointer(&n.next)

		if atomic.CompareAndSwapPointer(&s.head, top, below) {
			value = n.val
			local.Retire(top, func(unsafe.Pointer) {
				// Go's runtime already owns the memory backing n; once
				// the hazard guarding it clears, nothing else references
				// it, and the garbage collector reclaims it on its own
				// schedule. The deleter's job here is only to run
				// whatever cleanup a caller's element type needs — this
				// stack's element is a plain value, so there is none.
			})
			h.Release()
			return value, true
		}
		h.Release()
	}
}
