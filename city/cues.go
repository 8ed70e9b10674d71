package city

import (
	"regexp"
	"strings"

	"github.com/Yogendra14/chatbot-ner/internal/textfold"
)

// Cues are phrases looked for in the bot's previous prompt. When the user
// answers with a single bare city, a departure cue makes it From and an
// arrival cue makes it To. Departure cues are checked first.
type Cues struct {
	Departure []string `json:"departure" yaml:"departure" mapstructure:"departure_cues"`
	Arrival   []string `json:"arrival" yaml:"arrival" mapstructure:"arrival_cues"`
}

// DefaultCues returns the built-in prompt phrases.
func DefaultCues() Cues {
	return Cues{
		Departure: []string{
			"departure city",
			"origin city",
			"origin",
			"traveling from",
			"leaving from",
			"flying from",
			"travelling from",
			"departing from",
		},
		Arrival: []string{
			"traveling to",
			"travelling to",
			"arrival city",
			"arrival",
			"destination city",
			"destination",
			"leaving to",
			"flying to",
		},
	}
}

// cueMatcher holds the compiled form of Cues. A nil regexp matches nothing.
type cueMatcher struct {
	departure *regexp.Regexp
	arrival   *regexp.Regexp
}

func newCueMatcher(c Cues) *cueMatcher {
	return &cueMatcher{
		departure: compilePhrases(c.Departure),
		arrival:   compilePhrases(c.Arrival),
	}
}

// compilePhrases builds a literal alternation of the lowercased phrases.
func compilePhrases(phrases []string) *regexp.Regexp {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(textfold.Lower(p))
		if p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// role returns the role a lone city should take after the given prompt.
// hint must already be lowercased.
func (m *cueMatcher) role(hint string) Role {
	if hint == "" {
		return Normal
	}
	if m.departure != nil && m.departure.MatchString(hint) {
		return From
	}
	if m.arrival != nil && m.arrival.MatchString(hint) {
		return To
	}
	return Normal
}
