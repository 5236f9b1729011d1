package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	n int
}

func TestArenaAllocGet(t *testing.T) {
	t.Parallel()

	a := New[payload](4)
	h1 := a.Alloc(&payload{n: 1})
	h2 := a.Alloc(&payload{n: 2})

	assert.False(t, h1.IsNil())
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 1, a.Get(h1).n)
	assert.Equal(t, 2, a.Get(h2).n)
	assert.Equal(t, 2, a.Len())
}

func TestArenaPointersSurviveGrowth(t *testing.T) {
	t.Parallel()

	a := New[payload](1)
	h := a.Alloc(&payload{n: 7})
	p := a.Get(h)

	// Force the slot slice to reallocate several times
	for i := 0; i < 100; i++ {
		a.Alloc(&payload{n: i})
	}

	p.n = 42
	assert.Equal(t, 42, a.Get(h).n, "pointer from Get must stay attached to the slot")
}

func TestArenaFreeInvalidatesHandle(t *testing.T) {
	t.Parallel()

	a := New[payload](0)
	h := a.Alloc(&payload{n: 1})
	a.Free(h)

	assert.False(t, a.Valid(h))
	assert.Equal(t, 0, a.Len())
	assert.Panics(t, func() { a.Get(h) }, "stale handle must not dereference")
	assert.Panics(t, func() { a.Free(h) }, "double free must panic")
}

func TestArenaReusesFreedSlots(t *testing.T) {
	t.Parallel()

	a := New[payload](0)
	old := a.Alloc(&payload{n: 1})
	a.Free(old)

	fresh := a.Alloc(&payload{n: 2})
	assert.Equal(t, old.idx, fresh.idx, "freed slot should be reused")
	assert.NotEqual(t, old.gen, fresh.gen, "reused slot must carry a new generation")
	assert.False(t, a.Valid(old))
	assert.Equal(t, 2, a.Get(fresh).n)
	assert.Len(t, a.slots, 1)
}

func TestArenaNilHandle(t *testing.T) {
	t.Parallel()

	a := New[payload](0)
	assert.True(t, Nil.IsNil())
	assert.False(t, a.Valid(Nil))
	assert.Equal(t, "nil", Nil.String())
	assert.Panics(t, func() { a.Get(Nil) })
}

func TestArenaReset(t *testing.T) {
	t.Parallel()

	a := New[payload](0)
	var hs []Handle
	for i := 0; i < 5; i++ {
		hs = append(hs, a.Alloc(&payload{n: i}))
	}
	a.Free(hs[2])

	a.Reset()
	assert.Equal(t, 0, a.Len())
	for _, h := range hs {
		assert.False(t, a.Valid(h))
	}

	h := a.Alloc(&payload{n: 9})
	require.True(t, a.Valid(h))
	assert.Equal(t, 9, a.Get(h).n)
	assert.Len(t, a.slots, 5, "reset should recycle existing slots")
}
