package trie

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkBest verifies best on every reachable node and that the key count matches.
func checkBest[V any](t *testing.T, tr *Trie[V]) {
	t.Helper()

	var visit func(idx int32) int
	terminals := 0
	visit = func(idx int32) int {
		n := &tr.nodes[idx]
		want := 0
		if n.terminal {
			terminals++
			want = n.score
		}
		for i, e := range n.edges {
			if i > 0 {
				require.Less(t, n.edges[i-1].char, e.char, "edges must stay sorted")
			}
			if b := visit(e.child); b > want {
				want = b
			}
		}
		require.Equal(t, want, n.best, "best mismatch at key %q", n.key)
		return n.best
	}
	visit(root)
	require.Equal(t, tr.Len(), terminals)
}

func sanityTrie() *Trie[int] {
	tr := New[int]()
	for i, w := range []string{"cat", "dog", "doge", "apple", "application", "magicdog", "magic", "at", "yes", "apply"} {
		tr.Put(w, i)
	}
	return tr
}

func TestTrie_PutGet(t *testing.T) {
	tr := sanityTrie()
	assert.Equal(t, 10, tr.Len())

	v, err := tr.Get("doge")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	assert.True(t, tr.ContainsKey("magic"))
	assert.False(t, tr.ContainsKey("mag"))
	assert.False(t, tr.ContainsKey("dogs"))

	_, err = tr.Get("ma")
	assert.ErrorIs(t, err, ErrNotFound)
	checkBest(t, tr)
}

func TestTrie_OverwriteKeepsScoreAndSize(t *testing.T) {
	tr := New[string]()
	tr.Put("berkeley", "a")
	_, err := tr.Get("berkeley")
	require.NoError(t, err)

	tr.Put("berkeley", "b")
	assert.Equal(t, 1, tr.Len())

	score, err := tr.Score("berkeley")
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	v, err := tr.Peek("berkeley")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestTrie_PeekDoesNotScore(t *testing.T) {
	tr := sanityTrie()
	_, err := tr.Peek("yes")
	require.NoError(t, err)

	score, err := tr.Score("yes")
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	_, err = tr.Score("no")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrie_RankedPrefix(t *testing.T) {
	tr := sanityTrie()
	for _, k := range []string{"dog", "dog", "doge"} {
		_, err := tr.Get(k)
		require.NoError(t, err)
	}

	_, err := tr.Remove("dog")
	require.NoError(t, err)

	for _, k := range []string{"apple", "application", "application"} {
		_, err := tr.Get(k)
		require.NoError(t, err)
	}
	checkBest(t, tr)

	keys, err := tr.AllKeysWithPrefix("app")
	require.NoError(t, err)
	assert.Equal(t, []string{"application", "apple", "apply"}, keys)

	keys, err = tr.KeysWithPrefix("do", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"doge"}, keys)
}

func TestTrie_KeysWithPrefixLimit(t *testing.T) {
	tr := New[int]()
	tr.Put("cat", 0)
	tr.Put("dog", 1)
	tr.Put("doge", 2)

	for _, k := range []string{"dog", "dog", "doge"} {
		_, err := tr.Get(k)
		require.NoError(t, err)
	}

	keys, err := tr.KeysWithPrefix("do", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, keys)

	keys, err = tr.KeysWithPrefix("do", 0)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = tr.KeysWithPrefix("x", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrie_KeysWithPrefixTies(t *testing.T) {
	tr := New[int]()
	for i, w := range []string{"bb", "ba", "bc", "b"} {
		tr.Put(w, i)
	}

	keys, err := tr.AllKeysWithPrefix("b")
	require.NoError(t, err)
	// all scores zero: the prefix node first, then children in character order
	assert.Equal(t, []string{"b", "ba", "bb", "bc"}, keys)
}

func TestTrie_RemoveKeepsSharedPrefix(t *testing.T) {
	tr := New[int]()
	tr.Put("dog", 1)
	tr.Put("doge", 2)

	v, err := tr.Remove("dog")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	assert.False(t, tr.ContainsKey("dog"))
	assert.True(t, tr.ContainsKey("doge"))
	assert.Equal(t, 1, tr.Len())

	_, err = tr.Remove("dog")
	assert.ErrorIs(t, err, ErrNotFound)
	checkBest(t, tr)
}

func TestTrie_RemovePrunesAndReuses(t *testing.T) {
	tr := New[int]()
	tr.Put("car", 1)
	tr.Put("carpet", 2)
	for i := 0; i < 3; i++ {
		_, err := tr.Get("carpet")
		require.NoError(t, err)
	}
	allocated := len(tr.nodes)

	_, err := tr.Remove("carpet")
	require.NoError(t, err)
	assert.Len(t, tr.free, 3, "p, e and t are pruned")
	assert.Equal(t, 0, tr.nodes[root].best)
	checkBest(t, tr)

	tr.Put("cart", 3)
	assert.Equal(t, allocated, len(tr.nodes), "pruned nodes are reused")
	assert.Equal(t, []string{"car", "cart"}, tr.Keys())
	checkBest(t, tr)
}

func TestTrie_Clear(t *testing.T) {
	tr := sanityTrie()
	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Keys())
	assert.False(t, tr.ContainsKey("cat"))
}

func TestTrie_KeysLexicographic(t *testing.T) {
	tr := sanityTrie()
	want := []string{"apple", "application", "apply", "at", "cat", "dog", "doge", "magic", "magicdog", "yes"}
	assert.Equal(t, want, tr.Keys())
}

func TestTrie_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr := New[int]()
	model := map[string]int{}
	scores := map[string]int{}

	word := func() string {
		var b strings.Builder
		for i := 0; i < 1+rng.Intn(5); i++ {
			b.WriteByte(byte('a' + rng.Intn(3)))
		}
		return b.String()
	}

	for step := 0; step < 3000; step++ {
		k := word()
		switch rng.Intn(4) {
		case 0:
			tr.Put(k, step)
			if _, ok := model[k]; !ok {
				scores[k] = 0
			}
			model[k] = step
		case 1:
			v, err := tr.Get(k)
			if want, ok := model[k]; ok {
				require.NoError(t, err)
				require.Equal(t, want, v)
				scores[k]++
			} else {
				require.ErrorIs(t, err, ErrNotFound)
			}
		case 2:
			_, err := tr.Remove(k)
			if _, ok := model[k]; ok {
				require.NoError(t, err)
				delete(model, k)
				delete(scores, k)
			} else {
				require.ErrorIs(t, err, ErrNotFound)
			}
		case 3:
			prefix := k[:1]
			got, err := tr.KeysWithPrefix(prefix, 3)
			if err != nil {
				require.ErrorIs(t, err, ErrNotFound)
				continue
			}
			var want []int
			for key, s := range scores {
				if strings.HasPrefix(key, prefix) {
					want = append(want, s)
				}
			}
			sort.Sort(sort.Reverse(sort.IntSlice(want)))
			if len(want) > 3 {
				want = want[:3]
			}
			gotScores := make([]int, len(got))
			for i, key := range got {
				gotScores[i] = scores[key]
			}
			require.Equal(t, len(want), len(gotScores))
			if len(want) > 0 {
				require.Equal(t, want, gotScores)
			}
		}
		require.Equal(t, len(model), tr.Len())
	}
	checkBest(t, tr)
}
