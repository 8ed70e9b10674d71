package city

import (
	"cmp"
	"slices"
	"strings"
)

// span is a half-open byte range [start, end).
type span struct {
	start, end int
}

// state is the working text of one Detect call.
//
// text starts as the normalized message and loses every span a pass claims.
// Deleted bytes are removed, not blanked, so offsets into text are only valid
// until the next claim. pos maps each byte of text back to its offset in
// original, which is how entity offsets and the tagged copy stay correct.
type state struct {
	original string
	text     string
	pos      []int
	claimed  []span // in original offsets
}

func newState(s string) *state {
	pos := make([]int, len(s))
	for i := range pos {
		pos[i] = i
	}
	return &state{original: s, text: s, pos: pos}
}

// origin converts a non-empty span of text into original offsets.
// If earlier claims were cut out of the middle of s, the result covers them.
func (st *state) origin(s span) (int, int) {
	return st.pos[s.start], st.pos[s.end-1] + 1
}

// claim deletes spans (offsets into text) from the working text and records
// them for tagging. Overlapping spans are applied once.
func (st *state) claim(spans []span) {
	if len(spans) == 0 {
		return
	}
	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.start, b.start) })

	var b strings.Builder
	b.Grow(len(st.text))
	pos := make([]int, 0, len(st.pos))

	cursor := 0
	for _, s := range spans {
		if s.start < cursor || s.start >= s.end {
			continue
		}
		start, end := st.origin(s)
		st.claimed = append(st.claimed, span{start: start, end: end})

		b.WriteString(st.text[cursor:s.start])
		pos = append(pos, st.pos[cursor:s.start]...)
		cursor = s.end
	}
	b.WriteString(st.text[cursor:])
	pos = append(pos, st.pos[cursor:]...)

	st.text = b.String()
	st.pos = pos
}

// tagged returns the original text with every claimed span replaced by tag.
func (st *state) tagged(tag string) string {
	if len(st.claimed) == 0 {
		return st.original
	}
	claimed := slices.Clone(st.claimed)
	slices.SortFunc(claimed, func(a, b span) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(b.end, a.end)
	})

	var b strings.Builder
	b.Grow(len(st.original))
	cursor := 0
	for _, s := range claimed {
		if s.start < cursor {
			continue
		}
		b.WriteString(st.original[cursor:s.start])
		b.WriteString(tag)
		cursor = s.end
	}
	b.WriteString(st.original[cursor:])
	return b.String()
}
