// Package arena owns tree nodes and hands out generation-checked handles to
// them. Parent and child links between nodes are plain Handle values, so the
// tree never holds a pointer cycle and a freed node can never be reached
// through a stale link.
package arena

import "fmt"

// Handle addresses one slot of an Arena. The zero Handle is never issued and
// stands for "no node".
type Handle struct {
	idx uint32
	gen uint32
}

// Nil is the zero Handle.
var Nil Handle

// IsNil reports whether h is the zero Handle.
func (h Handle) IsNil() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("#%d.%d", h.idx, h.gen)
}

type slot[T any] struct {
	gen uint32 // Even: free, odd: live
	val *T
}

// Arena stores values of type T behind stable pointers. Freed slots go on a
// free list and are reused by later allocations with a bumped generation.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32 // LIFO of free slot indexes
	live  int
}

// New creates an arena with room for capacity values before it grows.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]slot[T], 0, max(capacity, 0)),
	}
}

// Alloc stores v and returns its handle.
func (a *Arena[T]) Alloc(v *T) Handle {
	a.live++

	// Reuse a freed slot when there is one
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		s.val = v
		return Handle{idx: idx, gen: s.gen}
	}

	a.slots = append(a.slots, slot[T]{gen: 1, val: v})
	return Handle{idx: uint32(len(a.slots) - 1), gen: 1}
}

// Get returns the value behind h. It panics if h is nil, out of range or
// refers to a slot that has been freed since h was issued.
func (a *Arena[T]) Get(h Handle) *T {
	if h.IsNil() {
		panic("arena: nil handle dereference")
	}
	if int(h.idx) >= len(a.slots) {
		panic(fmt.Sprintf("arena: handle %s out of range", h))
	}
	s := a.slots[h.idx]
	if s.gen != h.gen {
		panic(fmt.Sprintf("arena: stale handle %s (slot generation %d)", h, s.gen))
	}
	return s.val
}

// Valid reports whether h currently refers to a live slot.
func (a *Arena[T]) Valid(h Handle) bool {
	if h.IsNil() || int(h.idx) >= len(a.slots) {
		return false
	}
	return a.slots[h.idx].gen == h.gen
}

// Free releases the slot behind h. Freeing the same handle twice panics.
func (a *Arena[T]) Free(h Handle) {
	if !a.Valid(h) {
		panic(fmt.Sprintf("arena: free of invalid handle %s", h))
	}
	s := &a.slots[h.idx]
	s.gen++
	s.val = nil
	a.free = append(a.free, h.idx)
	a.live--
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Reset frees every slot. Handles issued before Reset are invalid after it.
func (a *Arena[T]) Reset() {
	a.free = a.free[:0]
	for i := range a.slots {
		s := &a.slots[i]
		if s.gen%2 == 1 {
			s.gen++
		}
		s.val = nil
		a.free = append(a.free, uint32(i))
	}
	a.live = 0
}
