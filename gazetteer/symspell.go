package gazetteer

import (
	"cmp"
	"hash/fnv"
	"slices"
	"unicode/utf8"
)

const (
	maxEditDistance = 2 // maximum pre-computed edit distance
	prefixLength    = 7 // prefix length for delete generation (memory optimization)
	deletesPerKey   = 4 // estimated delete variants per key for initial map capacity
)

// fuzzyIndex is a SymSpell (symmetric delete) index over single-word alias
// keys. It is built once by New and read-only afterwards.
type fuzzyIndex struct {
	keys    []string            // indexed keys (saves memory vs storing strings in deletes)
	cities  []int               // cities[i] is the city index of keys[i]
	deletes map[uint32][]uint32 // hash(delete) -> []index into keys
	maxLen  int                 // longest key in runes
}

// candidate is a fuzzy lookup result.
type candidate struct {
	key      string
	city     int
	distance int
}

func newFuzzyIndex(capacity int) *fuzzyIndex {
	return &fuzzyIndex{
		keys:    make([]string, 0, capacity),
		cities:  make([]int, 0, capacity),
		deletes: make(map[uint32][]uint32, capacity*deletesPerKey),
	}
}

// add indexes key for city. Keys must be unique; the caller deduplicates.
func (x *fuzzyIndex) add(key string, city int) {
	idx := uint32(len(x.keys)) //nolint:gosec // gazetteer size is bounded well below uint32 max
	x.keys = append(x.keys, key)
	x.cities = append(x.cities, city)

	if n := utf8.RuneCountInString(key); n > x.maxLen {
		x.maxLen = n
	}

	prefix := truncateToRunes(key, prefixLength)
	for _, del := range append(generateDeletes(prefix, maxEditDistance), prefix) {
		h := fnvHash(del)
		x.deletes[h] = append(x.deletes[h], idx)
	}
}

// lookup returns keys within maxDist edits of input, sorted by distance.
// Exact hits are not special-cased; the caller checks its exact map first.
func (x *fuzzyIndex) lookup(input string, maxDist int) []candidate {
	if input == "" || maxDist <= 0 {
		return nil
	}
	if maxDist > maxEditDistance {
		maxDist = maxEditDistance
	}

	inputLen := utf8.RuneCountInString(input)
	if inputLen-maxDist > x.maxLen {
		return nil
	}

	var results []candidate
	seen := make(map[uint32]struct{})

	inputPrefix := truncateToRunes(input, prefixLength)
	inputDeletes := generateDeletes(inputPrefix, maxDist)
	inputDeletes = append(inputDeletes, inputPrefix)

	for _, del := range inputDeletes {
		ids, ok := x.deletes[fnvHash(del)]
		if !ok {
			continue
		}
		for _, idx := range ids {
			if _, already := seen[idx]; already {
				continue
			}
			seen[idx] = struct{}{}

			key := x.keys[idx]
			lenDiff := inputLen - utf8.RuneCountInString(key)
			if lenDiff < 0 {
				lenDiff = -lenDiff
			}
			if lenDiff > maxDist {
				continue
			}

			if dist := damerauLevenshtein(input, key); dist <= maxDist {
				results = append(results, candidate{key: key, city: x.cities[idx], distance: dist})
			}
		}
	}

	slices.SortFunc(results, func(a, b candidate) int {
		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	return results
}

// truncateToRunes returns s truncated to at most n runes.
func truncateToRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// fnvHash returns the FNV-1a 32-bit hash of s.
func fnvHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s)) // cannot fail per hash.Hash contract
	return h.Sum32()
}

// generateDeletes returns all unique strings obtainable by deleting 1 to dist
// characters from s. The original string itself is not included.
func generateDeletes(s string, dist int) []string {
	if dist == 0 || s == "" {
		return nil
	}

	type item struct {
		word  string
		depth int
	}

	seen := make(map[string]struct{})
	var results []string
	queue := []item{{s, 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		r := []rune(current.word)
		for i := range r {
			del := string(r[:i]) + string(r[i+1:])
			if _, exists := seen[del]; exists {
				continue
			}
			seen[del] = struct{}{}
			results = append(results, del)
			if current.depth+1 < dist && del != "" {
				queue = append(queue, item{del, current.depth + 1})
			}
		}
	}

	return results
}

// damerauLevenshtein computes the optimal string alignment distance between a
// and b: insertions, deletions, substitutions, and adjacent transpositions.
func damerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	la := len(ra)
	lb := len(rb)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > maxEditDistance {
		return diff
	}

	// Three rows: prev2, prev, curr for transposition support.
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			best := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)

			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = min(best, prev2[j-2]+cost)
			}

			curr[j] = best
		}

		prev2, prev, curr = prev, curr, prev2
	}

	return prev[lb]
}
