package btmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestMustGet(t *testing.T) {
	t.Parallel()

	tree := setup(t)
	assert.Equal(t, 21, tree.MustGet(53))

	err := recoverErr(func() { tree.MustGet(5) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	assert.Contains(t, err.Error(), "5")
}

func TestMustSet(t *testing.T) {
	t.Parallel()

	tree := setup(t)
	tree.MustSet(53, -21)
	assert.Equal(t, -21, tree.MustGet(53))

	err := recoverErr(func() { tree.MustSet(5, 1) })
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, ok := tree.Get(5)
	assert.False(t, ok, "MustSet must never insert")
	assert.Equal(t, len(scenarioData), tree.Len())
}
