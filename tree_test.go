package btmap

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioData is the 24 key/value pairs of the reference scenario.
var scenarioData = [][2]int{
	{1, 8}, {4, 9}, {6, 2}, {8, 10}, {11, 11}, {13, 3}, {14, 12}, {16, 13},
	{17, 1}, {19, 14}, {22, 15}, {23, 4}, {27, 16}, {34, 17}, {35, 5},
	{38, 18}, {45, 19}, {47, 6}, {49, 20}, {53, 21}, {55, 7}, {65, 22}, {74, 23}, {79, 24},
}

func setup(t *testing.T) *Tree[int, int] {
	t.Helper()
	tree := New[int, int](WithCheckInvariants(true))
	for _, kv := range scenarioData {
		_, replaced := tree.Insert(kv[0], kv[1])
		require.False(t, replaced)
	}
	return tree
}

func collect[K, V any](tree *Tree[K, V]) ([]K, []V) {
	var keys []K
	var vals []V
	for k, v := range tree.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	return keys, vals
}

func TestTreeEmpty(t *testing.T) {
	t.Parallel()

	tree := New[int, string]()
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.Height())
	assert.NoError(t, tree.Check())

	_, ok := tree.Get(1)
	assert.False(t, ok)
	p, ok := tree.GetMut(1)
	assert.False(t, ok)
	assert.Nil(t, p)
	_, _, ok = tree.Remove(1)
	assert.False(t, ok)
	assert.Equal(t, [][][]int{{{}}}, tree.Levels())
}

func TestTreeReadWorks(t *testing.T) {
	t.Parallel()

	tree := setup(t)
	for _, kv := range scenarioData {
		v, ok := tree.Get(kv[0])
		require.True(t, ok, "key %d", kv[0])
		assert.Equal(t, kv[1], v)
	}

	_, ok := tree.Get(5)
	assert.False(t, ok, "found a key that was never inserted")
	assert.False(t, tree.Contains(5))
	assert.True(t, tree.Contains(55))
	assert.Equal(t, len(scenarioData), tree.Len())
}

func TestTreeWriteWorks(t *testing.T) {
	t.Parallel()

	tree := setup(t)

	p, ok := tree.GetMut(55)
	require.True(t, ok)
	*p = -7
	v, _ := tree.Get(55)
	assert.Equal(t, -7, v)

	p, ok = tree.GetMut(45)
	require.True(t, ok)
	*p = -19
	v, _ = tree.Get(45)
	assert.Equal(t, -19, v)

	assert.NoError(t, tree.Check())
}

func TestTreeIterScenario(t *testing.T) {
	t.Parallel()

	tree := setup(t)
	keys, vals := collect(tree)

	wantKeys := make([]int, 0, len(scenarioData))
	wantVals := make([]int, 0, len(scenarioData))
	for _, kv := range scenarioData {
		wantKeys = append(wantKeys, kv[0])
		wantVals = append(wantVals, kv[1])
	}
	assert.Equal(t, wantKeys, keys)
	assert.Equal(t, wantVals, vals)
}

func TestTreeSplitScenario(t *testing.T) {
	t.Parallel()

	tree := New[int, int](WithCheckInvariants(true))
	for _, k := range []int{1, 4, 6, 8} {
		tree.Insert(k, k)
	}
	assert.Equal(t, uint64(0), tree.Stats().Splits)

	tree.Insert(11, 11)
	tree.Insert(13, 13)

	st := tree.Stats()
	assert.Equal(t, uint64(1), st.Splits, "exactly one split when the fifth key arrives")
	assert.Equal(t, uint64(1), st.RootSplits)
	assert.Equal(t, 2, tree.Height())
	assert.Equal(t, [][][]int{{{6}}, {{1, 4}, {8, 11, 13}}}, tree.Levels())
}

func TestTreeInsertReplace(t *testing.T) {
	t.Parallel()

	tree := New[string, int](WithCheckInvariants(true))

	old, replaced := tree.Insert("a", 1)
	assert.False(t, replaced)
	assert.Zero(t, old)
	assert.Equal(t, 1, tree.Len())

	old, replaced = tree.Insert("a", 2)
	assert.True(t, replaced)
	assert.Equal(t, 1, old)
	assert.Equal(t, 1, tree.Len(), "replacing must not grow the tree")

	v, _ := tree.Get("a")
	assert.Equal(t, 2, v)
}

func TestTreeLastWriteWins(t *testing.T) {
	t.Parallel()

	tree := New[int, string](WithCheckInvariants(true))
	for round := 0; round < 3; round++ {
		for k := 50; k > 0; k-- {
			tree.Insert(k, fmt.Sprintf("r%d-%d", round, k))
		}
	}

	keys, vals := collect(tree)
	require.Len(t, keys, 50)
	assert.True(t, slices.IsSorted(keys))
	for i, k := range keys {
		assert.Equal(t, fmt.Sprintf("r2-%d", k), vals[i])
	}
}

func TestTreeRemoveReturnsStoredPair(t *testing.T) {
	t.Parallel()

	tree := setup(t)
	for _, kv := range scenarioData {
		before, ok := tree.Get(kv[0])
		require.True(t, ok)

		k, v, ok := tree.Remove(kv[0])
		require.True(t, ok)
		assert.Equal(t, kv[0], k)
		assert.Equal(t, before, v)

		_, ok = tree.Get(kv[0])
		assert.False(t, ok)
	}
	assert.Equal(t, 0, tree.Len())
}

func TestTreeDrainBothDirections(t *testing.T) {
	t.Parallel()

	const n = 500
	orders := map[string]func(i int) int{
		"ascending":  func(i int) int { return i },
		"descending": func(i int) int { return n - 1 - i },
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			tree := New[int, int](WithCheckInvariants(true))
			for i := 0; i < n; i++ {
				tree.Insert(i, i*i)
			}
			require.Greater(t, tree.Height(), 2)

			for i := 0; i < n; i++ {
				k := order(i)
				_, v, ok := tree.Remove(k)
				require.True(t, ok, "remove %d", k)
				require.Equal(t, k*k, v)
			}

			assert.Equal(t, 0, tree.Len())
			assert.Equal(t, 1, tree.Height())
			assert.Equal(t, 1, tree.Stats().Nodes, "only the empty root leaf remains")
			assert.Equal(t, [][][]int{{{}}}, tree.Levels())
			assert.NoError(t, tree.Check())
		})
	}
}

func TestTreeRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	const n = 1000

	tree := New[int, string](WithCheckInvariants(true))
	perm := rng.Perm(n)
	for _, k := range perm {
		tree.Insert(k, fmt.Sprintf("v%d", k))
	}

	// Remove a proper subset in random order
	removed := map[int]bool{}
	for _, k := range rng.Perm(n)[:n/3] {
		_, v, ok := tree.Remove(k)
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("v%d", k), v)
		removed[k] = true
	}

	var want []int
	for k := 0; k < n; k++ {
		if !removed[k] {
			want = append(want, k)
		}
	}

	keys, vals := collect(tree)
	assert.Equal(t, want, keys)
	for i, k := range keys {
		assert.Equal(t, fmt.Sprintf("v%d", k), vals[i])
	}
	assert.Equal(t, len(want), tree.Len())
}

func TestTreeRandomOpsAgainstMap(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(99, 3))
	tree := New[int, int](WithCheckInvariants(true))
	model := map[int]int{}

	for op := 0; op < 20000; op++ {
		k := rng.IntN(1000)
		switch rng.IntN(4) {
		case 0:
			_, v, ok := tree.Remove(k)
			mv, mok := model[k]
			require.Equal(t, mok, ok, "remove %d", k)
			if ok {
				require.Equal(t, mv, v)
			}
			delete(model, k)
		case 1:
			v, ok := tree.Get(k)
			mv, mok := model[k]
			require.Equal(t, mok, ok, "get %d", k)
			require.Equal(t, mv, v)
		default:
			old, replaced := tree.Insert(k, op)
			mv, mok := model[k]
			require.Equal(t, mok, replaced, "insert %d", k)
			if replaced {
				require.Equal(t, mv, old)
			}
			model[k] = op
		}
		require.Equal(t, len(model), tree.Len())
	}

	st := tree.Stats()
	assert.Positive(t, st.Merges)
	assert.Positive(t, st.BorrowsLeft)
	assert.Positive(t, st.BorrowsRight)
	assert.Positive(t, st.RootSplits)
}

func TestTreeCustomCompare(t *testing.T) {
	t.Parallel()

	// Case-insensitive keys, descending
	tree := NewFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(b), strings.ToLower(a))
	}, WithCheckInvariants(true))

	for i, k := range []string{"b", "A", "d", "C", "e", "F", "g"} {
		tree.Insert(k, i)
	}
	_, replaced := tree.Insert("a", 100)
	assert.True(t, replaced, "keys equal under the comparator collide")

	keys, _ := collect(tree)
	assert.Equal(t, []string{"g", "F", "e", "d", "C", "b", "A"}, keys)

	assert.Panics(t, func() { NewFunc[int, int](nil) })
}

func TestTreeFakerWords(t *testing.T) {
	t.Parallel()

	tree := New[string, string](WithCheckInvariants(true))
	model := map[string]string{}
	for i := 0; i < 300; i++ {
		k := faker.Word() + faker.Word()
		v := faker.Word()
		tree.Insert(k, v)
		model[k] = v
	}

	keys, vals := collect(tree)
	require.Len(t, keys, len(model))
	assert.True(t, slices.IsSorted(keys))
	for i, k := range keys {
		assert.Equal(t, model[k], vals[i])
	}
}

func TestTreeClear(t *testing.T) {
	t.Parallel()

	tree := setup(t)
	splits := tree.Stats().Splits
	require.Positive(t, splits)

	tree.Clear()
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.Height())
	assert.NoError(t, tree.Check())
	assert.Equal(t, splits, tree.Stats().Splits, "cumulative counters survive Clear")

	_, ok := tree.Get(1)
	assert.False(t, ok)

	tree.Insert(3, 3)
	v, ok := tree.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestTreeStatsTrackShape(t *testing.T) {
	t.Parallel()

	tree := New[int, int]()
	for i := 0; i < 200; i++ {
		tree.Insert(i, i)
	}
	st := tree.Stats()
	assert.Equal(t, 200, st.Len)
	assert.Equal(t, tree.Height(), st.Height)
	assert.Equal(t, st.RootSplits, uint64(st.Height-1))
	assert.Equal(t, 1+int(st.Splits)+int(st.RootSplits), st.Nodes, "each split adds one node, root splits add a root too")
}
