package ordered

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	ids, pos := Append([]string{"a", "b"}, "c")
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, 3, pos)

	ids, pos = Append([]string{"a", "b"}, "a")
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, 1, pos)

	ids, pos = Append(nil, "x")
	assert.Equal(t, []string{"x"}, ids)
	assert.Equal(t, 1, pos)
}

func TestRemove(t *testing.T) {
	src := []string{"a", "b", "c", "d"}

	out, err := Remove(src, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, out)
	assert.Equal(t, []string{"a", "b", "c", "d"}, src)

	_, err = Remove(src, "z")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		id   string
		to   int
		want []string
		err  error
	}{
		{name: "forward", id: "a", to: 3, want: []string{"b", "c", "a", "d"}},
		{name: "backward", id: "d", to: 2, want: []string{"a", "d", "b", "c"}},
		{name: "same position", id: "c", to: 3, want: []string{"a", "b", "c", "d"}},
		{name: "to end", id: "b", to: 4, want: []string{"a", "c", "d", "b"}},
		{name: "zero", id: "a", to: 0, err: ErrOutOfRange},
		{name: "past end", id: "a", to: 5, err: ErrOutOfRange},
		{name: "unknown", id: "z", to: 1, err: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Move([]string{"a", "b", "c", "d"}, tt.id, tt.to)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestInsert(t *testing.T) {
	out, err := Insert([]string{"a", "b"}, "x", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "a", "b"}, out)

	out, err = Insert([]string{"a", "b"}, "x", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "x"}, out)

	_, err = Insert([]string{"a"}, "x", 3)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Insert([]string{"a"}, "a", 1)
	assert.Error(t, err)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "b", "a", "", "c", "b"}))
	assert.Empty(t, Dedupe(nil))
}

func TestReplace(t *testing.T) {
	out, err := Replace([]string{"a", "b", "c"}, []string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, out)

	_, err = Replace([]string{"a", "b", "c"}, []string{"c", "a"})
	assert.ErrorIs(t, err, ErrNotAPermutation)

	_, err = Replace([]string{"a", "b"}, []string{"a", "a"})
	assert.ErrorIs(t, err, ErrNotAPermutation)

	_, err = Replace([]string{"a", "b"}, []string{"a", "z"})
	assert.ErrorIs(t, err, ErrNotAPermutation)
}

func TestFromSuffixKeys(t *testing.T) {
	entries := []SuffixEntry{
		{Key: "gallery:10", ID: "j"},
		{Key: "gallery:2", ID: "b"},
		{Key: "gallery:1", ID: "a"},
		{Key: "gallery:x", ID: "z"},
		{Key: "gallery:3", ID: "a"},
	}

	assert.Equal(t, []string{"a", "b", "j", "z"}, FromSuffixKeys(entries))
}

func TestAppendRemoveSequences(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))

			var ids, want []string
			removed := map[string]bool{}
			next := 0

			for step := 0; step < 200; step++ {
				switch r := rng.Intn(10); {
				case r < 5 || len(want) == 0:
					id := fmt.Sprintf("img-%d", next)
					next++
					var pos int
					ids, pos = Append(ids, id)
					want = append(want, id)
					require.Equal(t, len(want), pos, "step %d", step)
				case r < 6:
					id := want[rng.Intn(len(want))]
					var pos int
					ids, pos = Append(ids, id)
					require.Equal(t, slices.Index(want, id)+1, pos, "step %d", step)
				case r < 9:
					id := want[rng.Intn(len(want))]
					out, err := Remove(ids, id)
					require.NoError(t, err, "step %d", step)
					ids = out
					want = slices.DeleteFunc(want, func(v string) bool { return v == id })
					removed[id] = true
				default:
					before := slices.Clone(ids)
					_, err := Remove(ids, fmt.Sprintf("img-%d", next+rng.Intn(5)))
					require.ErrorIs(t, err, ErrNotFound)
					require.Equal(t, before, ids)
				}

				require.Equal(t, want, ids, "step %d", step)
			}

			for i, id := range ids {
				assert.False(t, removed[id], "removed id %s is still listed", id)
				assert.Equal(t, i, slices.Index(want, id))
			}
		})
	}
}
