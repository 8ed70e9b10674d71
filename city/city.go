// Package city detects city mentions in travel queries and classifies each
// mention by its role in the trip: departure (From), arrival (To),
// intermediate (Via), or unclassified (Normal).
//
// Detection runs a fixed sequence of pattern passes over a working copy of
// the lowercased message. Strict two-city patterns run before loose
// single-keyword ones, and every pass deletes the spans it claimed before the
// next pass scans, so no span is reported twice:
//
//  1. "from X to Y" style pairs led by a departure keyword.
//  2. "X - Y", "X to Y", "X and Y" pairs without a leading keyword.
//  3. "to X from Y" pairs (arrival first).
//  4. A single departure keyword followed by a city.
//  5. A single arrival keyword followed by a city.
//  6. Whatever text is left. Several cities become From (first) and To
//     (last); a lone city takes its role from the previous bot prompt.
//
// Canonical city values come from a [Resolver]. The gazetteer package
// provides the standard implementation.
//
// Entity offsets refer to the normalized text returned in [Result.Text]
// (see [Normalize]).
//
// A Detector holds no per-call state and is safe for concurrent use if its
// Resolver is.
package city

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Yogendra14/chatbot-ner/internal/textfold"
)

// Role classifies the part a city plays in a trip.
type Role int

const (
	None   Role = iota // No role assigned (interior cities of an unqualified multi-city message)
	Normal             // City found, but nothing in the text or context says which end it is
	From               // Departure city
	To                 // Arrival city
	Via                // Intermediate stop
)

var roleNames = [...]string{
	None:   "none",
	Normal: "normal",
	From:   "from",
	To:     "to",
	Via:    "via",
}

var roleFromName = map[string]Role{
	"none":   None,
	"normal": Normal,
	"from":   From,
	"to":     To,
	"via":    Via,
}

// String returns the lowercase name of the role.
func (r Role) String() string {
	if int(r) >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MarshalJSON encodes the role as a JSON string (e.g. "from").
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "to") into a Role.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, ok := roleFromName[s]
	if !ok {
		const maxErrLen = 50
		if len(s) > maxErrLen {
			s = s[:maxErrLen] + "..."
		}
		return fmt.Errorf("unknown city role: %q", s)
	}
	*r = role
	return nil
}

// Method records how an entity was detected.
type Method string

// FromMessage marks entities found in the user's message text.
const FromMessage Method = "from message text"

// Entity is a detected city.
type Entity struct {
	Value  string `json:"value"`            // Canonical city name from the resolver
	Text   string `json:"original_text"`    // Surface text in the normalized message
	Start  int    `json:"start"`            // Byte offset in Result.Text (inclusive)
	End    int    `json:"end"`              // Byte offset in Result.Text (exclusive)
	Role   Role   `json:"role"`             // Role in the trip
	Method Method `json:"detection_method"` // Provenance
}

// String returns a debug representation, e.g. from:Mumbai("bombay")[6:12].
func (e Entity) String() string {
	return fmt.Sprintf("%s:%s(%q)[%d:%d]", e.Role, e.Value, e.Text, e.Start, e.End)
}

// Match is one canonical value found by a Resolver inside a span.
// Start and End are byte offsets into the span, and span[Start:End] == Text.
type Match struct {
	Value string
	Text  string
	Start int
	End   int
}

// Resolver maps a span of lowercased text to the canonical cities it names,
// in left-to-right order. Implementations must be deterministic.
// An error means the resolver could not answer, not that no city was found.
type Resolver interface {
	Resolve(span string) ([]Match, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(span string) ([]Match, error)

// Resolve calls f(span).
func (f ResolverFunc) Resolve(span string) ([]Match, error) {
	return f(span)
}

// ErrResolutionUnavailable is returned by Detect when the resolver fails.
// It is distinct from an empty result, which means no city was mentioned.
var ErrResolutionUnavailable = errors.New("city: resolution unavailable")

// Result is the outcome of one detection.
type Result struct {
	Text     string   `json:"text"`        // Normalized message the offsets refer to
	Tagged   string   `json:"tagged_text"` // Text with each detected city replaced by the tag
	Entities []Entity `json:"entities"`    // Detected cities, in pass order then text order
}

// DefaultEntityName is the entity name used for tags when none is configured.
const DefaultEntityName = "city"

// maxInputBytes is the maximum message length Detect will process.
// Longer messages produce an empty result.
const maxInputBytes = 1 << 20 // 1 MiB

// Detector runs the city detection passes.
type Detector struct {
	resolver Resolver
	tag      string
	cues     *cueMatcher
	log      *zap.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithEntityName sets the name used to build the tag ("__name__") that
// replaces detected cities in Result.Tagged.
func WithEntityName(name string) Option {
	return func(d *Detector) {
		if name != "" {
			d.tag = "__" + name + "__"
		}
	}
}

// WithCues replaces the prompt phrases used to disambiguate a lone city.
func WithCues(c Cues) Option {
	return func(d *Detector) {
		d.cues = newCueMatcher(c)
	}
}

// WithLogger sets the logger for per-pass debug output.
func WithLogger(l *zap.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.log = l
		}
	}
}

// New returns a Detector that resolves city names with r.
func New(r Resolver, opts ...Option) *Detector {
	d := &Detector{
		resolver: r,
		tag:      "__" + DefaultEntityName + "__",
		cues:     newCueMatcher(DefaultCues()),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Normalize returns the form of text that detection runs on: trimmed,
// lowercased, and padded with one space on each side.
func Normalize(text string) string {
	return " " + textfold.Lower(strings.TrimSpace(text)) + " "
}

// Detect finds the cities in text. hint is the bot prompt the user is
// answering; it may be empty. An empty or city-free message yields a Result
// with no entities and a nil error. The only error is a resolver failure,
// which wraps ErrResolutionUnavailable.
func (d *Detector) Detect(text, hint string) (Result, error) {
	if len(text) > maxInputBytes {
		return Result{}, nil
	}
	normalized := Normalize(text)
	res := Result{Text: normalized, Tagged: normalized}
	if strings.TrimSpace(normalized) == "" {
		return res, nil
	}

	st := newState(normalized)
	lowerHint := textfold.Lower(hint)

	for _, p := range passes {
		found, err := d.run(p, st, lowerHint)
		if err != nil {
			return Result{}, err
		}
		d.log.Debug("city pass",
			zap.String("pass", p.name),
			zap.Int("entities", len(found)),
			zap.String("remaining", st.text))
		res.Entities = append(res.Entities, found...)
	}

	res.Tagged = st.tagged(d.tag)
	return res, nil
}

// Cities is Detect without the tagged text.
func (d *Detector) Cities(text, hint string) ([]Entity, error) {
	res, err := d.Detect(text, hint)
	if err != nil {
		return nil, err
	}
	return res.Entities, nil
}

// run applies one pass to st: finds claims in the remaining text, resolves
// each part, settles roles, and deletes the resolved spans.
func (d *Detector) run(p pass, st *state, hint string) ([]Entity, error) {
	claims := p.find(st.text)
	if len(claims) == 0 {
		return nil, nil
	}

	var found []Entity
	var spans []span
	for _, c := range claims {
		var claimed []Entity
		for _, pt := range c.parts {
			part := st.text[pt.start:pt.end]
			matches, err := d.resolver.Resolve(part)
			if err != nil {
				return nil, fmt.Errorf("%w: pass %s: %w", ErrResolutionUnavailable, p.name, err)
			}
			for _, m := range placeMatches(part, matches) {
				s := span{start: pt.start + m.Start, end: pt.start + m.End}
				start, end := st.origin(s)
				claimed = append(claimed, Entity{
					Value:  m.Value,
					Text:   m.Text,
					Start:  start,
					End:    end,
					Role:   pt.role,
					Method: FromMessage,
				})
				spans = append(spans, s)
			}
		}
		if p.settle != nil {
			p.settle(claimed, d.cues.role(hint))
		}
		found = append(found, claimed...)
	}

	st.claim(spans)
	return found, nil
}

// placeMatches checks resolver output against the span it was given.
// Matches whose offsets do not point at their text are relocated by searching
// forward from the previous match; matches that cannot be placed, or that
// overlap an earlier one, are dropped.
func placeMatches(part string, matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	cursor := 0
	for _, m := range matches {
		if m.Text == "" {
			continue
		}
		if m.Start < cursor || m.End > len(part) || m.Start > m.End || part[m.Start:m.End] != m.Text {
			i := strings.Index(part[cursor:], m.Text)
			if i < 0 {
				continue
			}
			m.Start = cursor + i
			m.End = m.Start + len(m.Text)
		}
		out = append(out, m)
		cursor = m.End
	}
	return out
}
