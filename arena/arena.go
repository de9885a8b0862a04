package arena

// Ref is a generation checked handle to an arena slot.
type Ref struct {
	index uint32
	gen   uint32
}

// NoRef is the zero Ref. It never refers to a live slot.
var NoRef = Ref{}

// IsNone is true for NoRef
func (r Ref) IsNone() bool { return r.gen == 0 }

// Index returns the slot index of the ref. It is stable for the life of the
// record and is suitable for use as a dense table key.
func (r Ref) Index() uint32 { return r.index }

const noSlot = ^uint32(0)

type slot[T any] struct {
	value T
	gen   uint32
	// next links free slots, noSlot terminates the list
	next uint32
	live bool
}

// Arena stores values of T in reusable slots addressed by Ref.
type Arena[T any] struct {
	slots []slot[T]
	free  uint32
	n     int
}

// New returns an empty arena with room for hint records before it needs to
// grow.
func New[T any](hint int) *Arena[T] {
	if hint < 0 {
		hint = 0
	}
	return &Arena[T]{
		slots: make([]slot[T], 0, hint),
		free:  noSlot,
	}
}

// Alloc stores v and returns its handle.
func (a *Arena[T]) Alloc(v T) Ref {
	a.n++
	if a.free != noSlot {
		i := a.free
		s := &a.slots[i]
		a.free = s.next
		s.value = v
		s.live = true
		s.next = noSlot
		return Ref{index: i, gen: s.gen}
	}
	if uint64(len(a.slots)) >= uint64(noSlot) {
		panic("arena: exhausted")
	}
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, next: noSlot, live: true})
	return Ref{index: uint32(len(a.slots) - 1), gen: 1}
}

// Free releases the slot referenced by r. Freeing a stale ref panics.
func (a *Arena[T]) Free(r Ref) {
	s := a.slot(r)
	var zero T
	s.value = zero
	s.live = false
	s.gen = nextGen(s.gen)
	s.next = a.free
	a.free = r.index
	a.n--
}

// Get returns a pointer to the record referenced by r. It panics if r is
// NoRef or stale.
func (a *Arena[T]) Get(r Ref) *T {
	return &a.slot(r).value
}

// Valid reports whether r refers to a live record.
func (a *Arena[T]) Valid(r Ref) bool {
	if r.gen == 0 || uint64(r.index) >= uint64(len(a.slots)) {
		return false
	}
	s := &a.slots[r.index]
	return s.live && s.gen == r.gen
}

// Len returns the number of live records.
func (a *Arena[T]) Len() int { return a.n }

// Cap returns the number of slots, live or free.
func (a *Arena[T]) Cap() int { return len(a.slots) }

// Clone returns an independent copy. Refs into a are valid for the copy and
// address the copied records.
func (a *Arena[T]) Clone() *Arena[T] {
	c := *a
	c.slots = append([]slot[T](nil), a.slots...)
	return &c
}

// Clear releases every live record. All outstanding refs become stale.
func (a *Arena[T]) Clear() {
	var zero T
	a.free = noSlot
	for i := len(a.slots) - 1; i >= 0; i-- {
		s := &a.slots[i]
		if s.live {
			s.gen = nextGen(s.gen)
			s.live = false
		}
		s.value = zero
		s.next = a.free
		a.free = uint32(i)
	}
	a.n = 0
}

func (a *Arena[T]) slot(r Ref) *slot[T] {
	if r.gen == 0 {
		panic("arena: NoRef")
	}
	if uint64(r.index) >= uint64(len(a.slots)) {
		panic("arena: ref out of range")
	}
	s := &a.slots[r.index]
	if !s.live || s.gen != r.gen {
		panic("arena: stale ref")
	}
	return s
}

// nextGen skips zero so a recycled slot can never produce NoRef.
func nextGen(g uint32) uint32 {
	g++
	if g == 0 {
		g = 1
	}
	return g
}
