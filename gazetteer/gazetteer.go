// Package gazetteer resolves city names in text to canonical values.
//
// A Gazetteer is built from a list of cities, each with a canonical name and
// any number of aliases ("bombay" and "bom" for Mumbai). Resolve scans a span
// left to right and reports every city it names:
//
//  1. Longest exact match of one or more consecutive words against the
//     canonical names and aliases, accent-insensitive.
//  2. Failing that, a SymSpell fuzzy match of a single word: one edit for
//     words of 5 to 7 runes, up to two for longer words. Common travel words
//     are excluded so that "leaving" never becomes a city.
//
// A Gazetteer implements city.Resolver. It is read-only after New and safe for
// concurrent use by multiple goroutines.
package gazetteer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/Yogendra14/chatbot-ner/city"
	"github.com/Yogendra14/chatbot-ner/internal/textfold"
)

const (
	defaultMinFuzzyRunes = 5 // shortest word that may fuzzy-match
	longWordRunes        = 8 // words this long may use the full edit distance
	maxAliasWords        = 6 // longest alias, in words, that New accepts
)

// ErrEmpty is returned by Resolve when the gazetteer holds no cities.
var ErrEmpty = errors.New("gazetteer: no cities loaded")

// City is one gazetteer entry.
type City struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Country    string   `json:"country,omitempty" yaml:"country,omitempty" toml:"country,omitempty"`
	Population int64    `json:"population,omitempty" yaml:"population,omitempty" toml:"population,omitempty"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty" toml:"aliases,omitempty"`
}

// Gazetteer is an alias index over a fixed list of cities.
type Gazetteer struct {
	cities        []City
	exact         map[string]int // folded alias key -> index into cities
	maxWords      int            // most words in any key
	fuzzy         *fuzzyIndex
	maxDist       int
	minFuzzyRunes int
	search        searchSource
}

// Option configures a Gazetteer.
type Option func(*Gazetteer)

// WithMaxEditDistance caps fuzzy matching at n edits (0 to 2).
// Zero disables fuzzy matching.
func WithMaxEditDistance(n int) Option {
	return func(g *Gazetteer) {
		g.maxDist = max(0, min(n, maxEditDistance))
	}
}

// WithMinFuzzyRunes sets the shortest word, in runes, that may fuzzy-match.
func WithMinFuzzyRunes(n int) Option {
	return func(g *Gazetteer) {
		if n > 0 {
			g.minFuzzyRunes = n
		}
	}
}

// New builds a gazetteer. Every city needs a name. When two cities share an
// alias, the more populous one keeps it (the earlier one on a tie).
func New(cities []City, opts ...Option) (*Gazetteer, error) {
	g := &Gazetteer{
		cities:        slices.Clone(cities),
		exact:         make(map[string]int, len(cities)*2),
		maxDist:       maxEditDistance,
		minFuzzyRunes: defaultMinFuzzyRunes,
	}
	for _, opt := range opts {
		opt(g)
	}

	for i, c := range g.cities {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("gazetteer: city %d has no name", i)
		}
		for _, alias := range append([]string{c.Name}, c.Aliases...) {
			key, n := aliasKey(alias)
			if n == 0 {
				continue
			}
			if n > maxAliasWords {
				return nil, fmt.Errorf("gazetteer: alias %q of %s has more than %d words", alias, c.Name, maxAliasWords)
			}
			if prev, ok := g.exact[key]; ok && g.cities[prev].Population >= c.Population {
				continue
			}
			g.exact[key] = i
			g.maxWords = max(g.maxWords, n)
		}
	}

	g.fuzzy = newFuzzyIndex(len(g.exact))
	keys := make([]string, 0, len(g.exact))
	for key := range g.exact {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if !strings.Contains(key, " ") {
			g.fuzzy.add(key, g.exact[key])
		}
		g.search = append(g.search, searchEntry{text: key, city: g.exact[key]})
	}

	return g, nil
}

// aliasKey returns the lookup key of an alias and its word count.
func aliasKey(alias string) (string, int) {
	toks := words(alias)
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = textfold.Key(t.text)
	}
	return strings.Join(parts, " "), len(parts)
}

// Len returns the number of cities.
func (g *Gazetteer) Len() int {
	if g == nil {
		return 0
	}
	return len(g.cities)
}

// Cities returns a copy of the city list.
func (g *Gazetteer) Cities() []City {
	if g == nil {
		return nil
	}
	return slices.Clone(g.cities)
}

// Lookup returns the city whose name or alias is exactly name
// (case- and accent-insensitive).
func (g *Gazetteer) Lookup(name string) (City, bool) {
	if g == nil {
		return City{}, false
	}
	key, _ := aliasKey(name)
	i, ok := g.exact[key]
	if !ok {
		return City{}, false
	}
	return g.cities[i], true
}

// Resolve reports the cities named in span, in order of appearance.
// Each match's Text is the literal substring span[Start:End].
func (g *Gazetteer) Resolve(span string) ([]city.Match, error) {
	if g.Len() == 0 {
		return nil, ErrEmpty
	}

	toks := words(span)
	keys := make([]string, len(toks))
	for i, t := range toks {
		keys[i] = textfold.Key(t.text)
	}

	var out []city.Match
	for i := 0; i < len(toks); {
		if n, idx, ok := g.longestExact(keys[i:]); ok {
			start, end := toks[i].start, toks[i+n-1].end
			out = append(out, city.Match{
				Value: g.cities[idx].Name,
				Text:  span[start:end],
				Start: start,
				End:   end,
			})
			i += n
			continue
		}
		if idx, ok := g.closest(keys[i]); ok {
			t := toks[i]
			out = append(out, city.Match{
				Value: g.cities[idx].Name,
				Text:  t.text,
				Start: t.start,
				End:   t.end,
			})
		}
		i++
	}
	return out, nil
}

// longestExact finds the longest prefix of keys that is a known alias.
func (g *Gazetteer) longestExact(keys []string) (n, idx int, ok bool) {
	for n = min(g.maxWords, len(keys)); n > 0; n-- {
		if idx, ok = g.exact[strings.Join(keys[:n], " ")]; ok {
			return n, idx, true
		}
	}
	return 0, 0, false
}

// closest fuzzy-matches a single word. Among equally distant candidates the
// most populous city wins.
func (g *Gazetteer) closest(key string) (int, bool) {
	runes := utf8.RuneCountInString(key)
	if g.maxDist == 0 || runes < g.minFuzzyRunes || isStopword(key) {
		return 0, false
	}
	dist := 1
	if runes >= longWordRunes {
		dist = g.maxDist
	}

	cands := g.fuzzy.lookup(key, dist)
	if len(cands) == 0 {
		return 0, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.distance != best.distance {
			break
		}
		if g.cities[c.city].Population > g.cities[best.city].Population {
			best = c
		}
	}
	return best.city, true
}

// Search returns up to limit cities whose names or aliases contain the
// characters of query in order, best first. A limit of zero means no limit.
func (g *Gazetteer) Search(query string, limit int) []City {
	if g.Len() == 0 || strings.TrimSpace(query) == "" {
		return nil
	}
	matches := fuzzy.FindFrom(textfold.Key(query), g.search)

	var out []City
	seen := make(map[int]struct{})
	for _, m := range matches {
		idx := g.search[m.Index].city
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, g.cities[idx])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// searchEntry is one searchable alias key.
type searchEntry struct {
	text string
	city int
}

// searchSource adapts the alias keys to fuzzy.Source.
type searchSource []searchEntry

func (s searchSource) String(i int) string { return s[i].text }
func (s searchSource) Len() int            { return len(s) }
