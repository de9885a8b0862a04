package pointstore

import (
	"iter"

	"github.com/forestrie/go-pointkdtree/arena"
)

type Ref = arena.Ref

var NoRef = arena.NoRef

// Range is an inclusive run of elements. The zero Range is empty.
type Range struct {
	First Ref
	Last  Ref
	Count int
}

func (r Range) Empty() bool { return r.Count == 0 }

// List is the head of a sequence. The zero List is empty and ready to use.
type List struct {
	head Ref
	tail Ref
	n    int
}

func (l *List) Len() int { return l.n }
func (l *List) Front() Ref { return l.head }
func (l *List) Back() Ref { return l.tail }
func (l *List) Empty() bool { return l.n == 0 }

// All returns the whole list as a Range.
func (l *List) All() Range { return Range{First: l.head, Last: l.tail, Count: l.n} }

type element[T any] struct {
	value T
	prev  Ref
	next  Ref
}

// Store holds the records of any number of Lists.
type Store[T any] struct {
	elements *arena.Arena[element[T]]
}

// New returns an empty store with room for hint records.
func New[T any](hint int) *Store[T] {
	return &Store[T]{elements: arena.New[element[T]](hint)}
}

// Clone copies the store. Lists are plain values, a copy of a List taken
// together with the store remains valid against the clone.
func (s *Store[T]) Clone() *Store[T] {
	return &Store[T]{elements: s.elements.Clone()}
}

// Len returns the number of records held across all lists.
func (s *Store[T]) Len() int { return s.elements.Len() }

func (s *Store[T]) Valid(r Ref) bool { return s.elements.Valid(r) }

func (s *Store[T]) Value(r Ref) T { return s.elements.Get(r).value }

// Ptr returns a pointer to the record. It is only valid until the next
// PushBack.
func (s *Store[T]) Ptr(r Ref) *T { return &s.elements.Get(r).value }

func (s *Store[T]) Set(r Ref, v T) { s.elements.Get(r).value = v }

// Next returns NoRef after the tail of the list holding r.
func (s *Store[T]) Next(r Ref) Ref { return s.elements.Get(r).next }

// Prev returns NoRef before the head of the list holding r.
func (s *Store[T]) Prev(r Ref) Ref { return s.elements.Get(r).prev }

// PushBack appends v to l.
func (s *Store[T]) PushBack(l *List, v T) Ref {
	r := s.elements.Alloc(element[T]{value: v, prev: l.tail, next: NoRef})
	if l.tail.IsNone() {
		l.head = r
	} else {
		s.elements.Get(l.tail).next = r
	}
	l.tail = r
	l.n++
	return r
}

// Erase removes r from l and releases it.
func (s *Store[T]) Erase(l *List, r Ref) {
	s.unlink(l, Range{First: r, Last: r, Count: 1})
	s.elements.Free(r)
}

// EraseRange removes and releases every element of the run.
func (s *Store[T]) EraseRange(l *List, rg Range) {
	if rg.Empty() {
		return
	}
	s.unlink(l, rg)
	for r, n := rg.First, rg.Count; n > 0; n-- {
		next := s.elements.Get(r).next
		s.elements.Free(r)
		r = next
	}
}

// Clear releases every element of l.
func (s *Store[T]) Clear(l *List) {
	s.EraseRange(l, l.All())
}

// Splice moves the run rg out of src and links it into dst in front of
// before. A before of NoRef appends to dst. src and dst may be the same list,
// in which case before must not lie inside the run.
func (s *Store[T]) Splice(dst *List, before Ref, src *List, rg Range) {
	if rg.Empty() || rg.First.IsNone() || rg.Last.IsNone() {
		panic("pointstore: splice of an empty run")
	}
	if src == dst && before == rg.First {
		return
	}
	s.unlink(src, rg)
	s.link(dst, before, rg)
}

// SpliceAfter is Splice with the insertion point given as the element the run
// should follow. An after of NoRef prepends to dst.
func (s *Store[T]) SpliceAfter(dst *List, after Ref, src *List, rg Range) {
	before := dst.head
	if !after.IsNone() {
		before = s.elements.Get(after).next
	}
	s.Splice(dst, before, src, rg)
}

// Partition reorders the run rg of l in place so that the elements for which
// pred is true come first, followed by the rest. Relative order is preserved on
// both sides. Only links change, payloads stay put and refs stay valid.
func (s *Store[T]) Partition(l *List, rg Range, pred func(v T) bool) (left, right Range) {
	if rg.Empty() {
		return Range{}, Range{}
	}
	before := s.elements.Get(rg.First).prev
	after := s.elements.Get(rg.Last).next

	r := rg.First
	for n := rg.Count; n > 0; n-- {
		e := s.elements.Get(r)
		next := e.next
		if pred(e.value) {
			s.chain(&left, r)
		} else {
			s.chain(&right, r)
		}
		r = next
	}

	// stitch before -> left -> right -> after
	head, tail := left.First, left.Last
	if left.Empty() {
		head, tail = right.First, right.Last
	} else if !right.Empty() {
		s.elements.Get(left.Last).next = right.First
		s.elements.Get(right.First).prev = left.Last
		tail = right.Last
	}
	s.elements.Get(head).prev = before
	s.elements.Get(tail).next = after
	if before.IsNone() {
		l.head = head
	} else {
		s.elements.Get(before).next = head
	}
	if after.IsNone() {
		l.tail = tail
	} else {
		s.elements.Get(after).prev = tail
	}
	return left, right
}

// Values iterates the run rg in order.
func (s *Store[T]) Values(rg Range) iter.Seq2[Ref, T] {
	return func(yield func(Ref, T) bool) {
		r := rg.First
		for n := rg.Count; n > 0; n-- {
			e := s.elements.Get(r)
			next := e.next
			if !yield(r, e.value) {
				return
			}
			r = next
		}
	}
}

// chain appends r to the detached run acc.
func (s *Store[T]) chain(acc *Range, r Ref) {
	e := s.elements.Get(r)
	e.next = NoRef
	e.prev = acc.Last
	if acc.Empty() {
		acc.First = r
	} else {
		s.elements.Get(acc.Last).next = r
	}
	acc.Last = r
	acc.Count++
}

func (s *Store[T]) unlink(l *List, rg Range) {
	first := s.elements.Get(rg.First)
	last := s.elements.Get(rg.Last)
	prev, next := first.prev, last.next
	if prev.IsNone() {
		l.head = next
	} else {
		s.elements.Get(prev).next = next
	}
	if next.IsNone() {
		l.tail = prev
	} else {
		s.elements.Get(next).prev = prev
	}
	first.prev = NoRef
	last.next = NoRef
	l.n -= rg.Count
}

func (s *Store[T]) link(l *List, before Ref, rg Range) {
	var prev Ref
	if before.IsNone() {
		prev = l.tail
		l.tail = rg.Last
	} else {
		b := s.elements.Get(before)
		prev = b.prev
		b.prev = rg.Last
	}
	if prev.IsNone() {
		l.head = rg.First
	} else {
		s.elements.Get(prev).next = rg.First
	}
	s.elements.Get(rg.First).prev = prev
	s.elements.Get(rg.Last).next = before
	l.n += rg.Count
}
