package gazetteer

import "testing"

func TestDamerauLevenshtein(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical strings", "mumbai", "mumbai", 0},
		{"one substitution", "bombay", "bombey", 1},
		{"one deletion", "chennai", "chenai", 1},
		{"one insertion", "pune", "punne", 1},
		{"transposition", "delhi", "dehli", 1},
		{"both empty", "", "", 0},
		{"a empty", "", "goa", 3},
		{"b empty", "goa", "", 3},
		{"unicode characters", "zürich", "zurich", 1},
		{"length gap beyond max", "goa", "goalpara", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := damerauLevenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("damerauLevenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestGenerateDeletes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		dist      int
		wantCount int
		wantNil   bool
	}{
		{name: "3 chars dist=1", input: "abc", dist: 1, wantCount: 3},
		{name: "3 chars dist=2", input: "abc", dist: 2, wantCount: 6},
		{name: "repeated letters collapse", input: "aab", dist: 1, wantCount: 2},
		{name: "empty string", input: "", dist: 1, wantNil: true},
		{name: "zero dist", input: "abc", dist: 0, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := generateDeletes(tt.input, tt.dist)
			if tt.wantNil {
				if got != nil {
					t.Errorf("generateDeletes(%q, %d) = %v, want nil", tt.input, tt.dist, got)
				}
				return
			}
			if len(got) != tt.wantCount {
				t.Errorf("generateDeletes(%q, %d) produced %d deletes, want %d: %v",
					tt.input, tt.dist, len(got), tt.wantCount, got)
			}
			seen := make(map[string]struct{}, len(got))
			for _, d := range got {
				if _, dup := seen[d]; dup {
					t.Errorf("duplicate delete %q", d)
				}
				if d == tt.input {
					t.Errorf("contains original string %q", d)
				}
				seen[d] = struct{}{}
			}
		})
	}
}

func TestTruncateToRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"thiruvananthapuram", 7, "thiruva"},
		{"goa", 7, "goa"},
		{"zürich", 2, "zü"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := truncateToRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateToRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFuzzyIndexLookup(t *testing.T) {
	x := newFuzzyIndex(4)
	x.add("salem", 0)
	x.add("sales", 1)
	x.add("thiruvananthapuram", 2)
	x.add("pune", 3)

	got := x.lookup("salex", 1)
	if len(got) != 2 {
		t.Fatalf("lookup(salex) = %v, want 2 candidates", got)
	}
	if got[0].key != "salem" || got[1].key != "sales" {
		t.Errorf("lookup(salex) order = %s, %s; want salem, sales", got[0].key, got[1].key)
	}

	// Only the prefix is indexed, so long keys still match on a late typo.
	got = x.lookup("thiruvananthapuran", 1)
	if len(got) != 1 || got[0].city != 2 || got[0].distance != 1 {
		t.Errorf("lookup(thiruvananthapuran) = %v", got)
	}

	if got := x.lookup("pune", 0); got != nil {
		t.Errorf("lookup with zero distance = %v, want nil", got)
	}
	if got := x.lookup("bhubaneswar", 2); got != nil {
		t.Errorf("lookup(bhubaneswar) = %v, want nil", got)
	}
	if got := x.lookup("thiruvananthapuramcentral", 2); got != nil {
		t.Errorf("lookup of too-long input = %v, want nil", got)
	}

	// Closer candidates sort first.
	got = x.lookup("sale", 2)
	if len(got) < 2 || got[0].distance != 1 {
		t.Errorf("lookup(sale) = %v, want distance 1 first", got)
	}
}
