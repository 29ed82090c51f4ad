// Package ordered implements position arithmetic over injective id sequences.
// Positions are 1-based and always form the contiguous range 1..len.
package ordered

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNotFound        = errors.New("id not in sequence")
	ErrOutOfRange      = errors.New("position out of range")
	ErrNotAPermutation = errors.New("ids are not a permutation of the sequence")
)

// Append adds id at the end. An id already present is left where it is.
func Append(ids []string, id string) ([]string, int) {
	if i := slices.Index(ids, id); i >= 0 {
		return ids, i + 1
	}
	out := append(slices.Clone(ids), id)
	return out, len(out)
}

// Insert places id at position, shifting later items down. Position len+1 appends.
func Insert(ids []string, id string, position int) ([]string, error) {
	if slices.Contains(ids, id) {
		return nil, fmt.Errorf("insert %s: already present", id)
	}
	if position < 1 || position > len(ids)+1 {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrOutOfRange, position, len(ids)+1)
	}
	return slices.Insert(slices.Clone(ids), position-1, id), nil
}

// Remove deletes id and compacts the sequence.
func Remove(ids []string, id string) ([]string, error) {
	i := slices.Index(ids, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slices.Delete(slices.Clone(ids), i, i+1), nil
}

// Move relocates id to newPosition; items between the old and new positions shift by one.
func Move(ids []string, id string, newPosition int) ([]string, error) {
	i := slices.Index(ids, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if newPosition < 1 || newPosition > len(ids) {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrOutOfRange, newPosition, len(ids))
	}
	out := slices.Delete(slices.Clone(ids), i, i+1)
	return slices.Insert(out, newPosition-1, id), nil
}

// Dedupe keeps the first occurrence of every id and drops empty ids.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// IsPermutation reports whether next holds exactly the ids of current, each once.
func IsPermutation(current, next []string) bool {
	if len(current) != len(next) {
		return false
	}
	want := make(map[string]int, len(current))
	for _, id := range current {
		want[id]++
	}
	for _, id := range next {
		if want[id] == 0 {
			return false
		}
		want[id]--
	}
	return true
}

// Replace validates that next is a permutation of current and returns it.
func Replace(current, next []string) ([]string, error) {
	if !IsPermutation(current, next) {
		return nil, ErrNotAPermutation
	}
	return slices.Clone(next), nil
}

// SuffixEntry is a legacy per-position record such as key "gallery:3" pointing at an id.
type SuffixEntry struct {
	Key string
	ID  string
}

// FromSuffixKeys rebuilds a sequence from legacy keys, ordered by their trailing numeric suffix.
// Keys without a numeric suffix sort last, by key.
func FromSuffixKeys(entries []SuffixEntry) []string {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(a, b int) bool {
		na, okA := suffix(sorted[a].Key)
		nb, okB := suffix(sorted[b].Key)
		switch {
		case okA && okB:
			if na != nb {
				return na < nb
			}
			return sorted[a].Key < sorted[b].Key
		case okA:
			return true
		case okB:
			return false
		}
		return sorted[a].Key < sorted[b].Key
	})

	ids := make([]string, 0, len(sorted))
	for _, e := range sorted {
		ids = append(ids, e.ID)
	}
	return Dedupe(ids)
}

func suffix(key string) (int, bool) {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
