package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AllocGetFree(t *testing.T) {
	a := New[int](2)
	r1 := a.Alloc(10)
	r2 := a.Alloc(20)
	require.Equal(t, 2, a.Len())
	require.Equal(t, 10, *a.Get(r1))
	require.Equal(t, 20, *a.Get(r2))

	*a.Get(r1) = 11
	require.Equal(t, 11, *a.Get(r1))

	a.Free(r1)
	require.Equal(t, 1, a.Len())
	require.False(t, a.Valid(r1))
	require.True(t, a.Valid(r2))
	require.Panics(t, func() { a.Get(r1) })
	require.Panics(t, func() { a.Free(r1) })
}

func TestArena_ReuseBumpsGeneration(t *testing.T) {
	a := New[string](0)
	r1 := a.Alloc("a")
	a.Free(r1)
	r2 := a.Alloc("b")

	// the slot is recycled but the old handle must not see the new record
	assert.Equal(t, r1.Index(), r2.Index())
	assert.NotEqual(t, r1, r2)
	assert.False(t, a.Valid(r1))
	assert.True(t, a.Valid(r2))
	assert.Equal(t, 1, a.Cap())
}

func TestArena_NoRef(t *testing.T) {
	a := New[int](0)
	require.True(t, NoRef.IsNone())
	require.False(t, a.Valid(NoRef))
	require.Panics(t, func() { a.Get(NoRef) })

	r := a.Alloc(1)
	require.False(t, r.IsNone())
}

func TestArena_Clear(t *testing.T) {
	a := New[int](0)
	var refs []Ref
	for i := range 5 {
		refs = append(refs, a.Alloc(i))
	}
	a.Free(refs[2])
	a.Clear()
	require.Equal(t, 0, a.Len())
	for _, r := range refs {
		require.False(t, a.Valid(r))
	}

	// all five slots are reused before the arena grows
	for i := range 5 {
		a.Alloc(i)
	}
	require.Equal(t, 5, a.Cap())
	a.Alloc(5)
	require.Equal(t, 6, a.Cap())
}

func TestArena_Clone(t *testing.T) {
	a := New[int](0)
	r1 := a.Alloc(1)
	r2 := a.Alloc(2)
	a.Free(r2)

	c := a.Clone()
	*c.Get(r1) = 100
	require.Equal(t, 1, *a.Get(r1))
	require.Equal(t, 100, *c.Get(r1))
	require.False(t, c.Valid(r2))

	// both free lists are intact and independent
	ra := a.Alloc(3)
	rc := c.Alloc(4)
	require.Equal(t, ra, rc)
	require.Equal(t, 3, *a.Get(ra))
	require.Equal(t, 4, *c.Get(rc))
}
