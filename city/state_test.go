package city

import "testing"

func TestStateClaim(t *testing.T) {
	st := newState(" from delhi to delhi ")

	// Claim the first "delhi" only.
	st.claim([]span{{start: 6, end: 11}})
	if want := " from  to delhi "; st.text != want {
		t.Fatalf("text = %q, want %q", st.text, want)
	}

	// The second "delhi" is now at 10:15 in text but 15:20 in the original.
	start, end := st.origin(span{start: 10, end: 15})
	if start != 15 || end != 20 {
		t.Errorf("origin = %d:%d, want 15:20", start, end)
	}
	if got := st.original[start:end]; got != "delhi" {
		t.Errorf("original[%d:%d] = %q, want delhi", start, end, got)
	}

	st.claim([]span{{start: 10, end: 15}})
	if want := " from  to  "; st.text != want {
		t.Errorf("text = %q, want %q", st.text, want)
	}
	if want := " from __x__ to __x__ "; st.tagged("__x__") != want {
		t.Errorf("tagged = %q, want %q", st.tagged("__x__"), want)
	}
}

func TestStateClaimUnordered(t *testing.T) {
	st := newState(" a b c ")
	st.claim([]span{{start: 5, end: 6}, {start: 1, end: 2}})
	if want := "  b  "; st.text != want {
		t.Errorf("text = %q, want %q", st.text, want)
	}
	if want := " # b # "; st.tagged("#") != want {
		t.Errorf("tagged = %q, want %q", st.tagged("#"), want)
	}
}

func TestStateClaimOverlapping(t *testing.T) {
	st := newState(" abcdef ")
	st.claim([]span{{start: 1, end: 4}, {start: 2, end: 5}, {start: 3, end: 3}})
	if want := " def "; st.text != want {
		t.Errorf("text = %q, want %q", st.text, want)
	}
}

func TestStateOriginAcrossGap(t *testing.T) {
	st := newState(" ab xy cd ")
	st.claim([]span{{start: 3, end: 6}}) // "xy "
	if want := " ab cd "; st.text != want {
		t.Fatalf("text = %q, want %q", st.text, want)
	}
	// "b c" in text straddles the deleted "xy ".
	start, end := st.origin(span{start: 2, end: 5})
	if start != 2 || end != 8 {
		t.Errorf("origin = %d:%d, want 2:8", start, end)
	}

	st.claim([]span{{start: 2, end: 5}})
	// The outer claim swallows the inner one in the tagged copy.
	if want := " a#d "; st.tagged("#") != want {
		t.Errorf("tagged = %q, want %q", st.tagged("#"), want)
	}
}

func TestStateTaggedUntouched(t *testing.T) {
	st := newState(" nothing here ")
	if got := st.tagged("#"); got != " nothing here " {
		t.Errorf("tagged = %q", got)
	}
}
