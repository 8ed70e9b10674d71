package city

import "regexp"

// Keyword alternations shared by the pair and single-keyword patterns.
const (
	departureKeywords = `from|frm|departing|depart|leaving|leave`
	arrivalKeywords   = `and|to|2|for|fr|arriving|arrive|reaching|reach|rch`
)

// Compiled patterns, one per pass. All of them start with \s, which is why
// Normalize pads the message with spaces.
var (
	// "from X to Y", "leaving X reaching Y"
	rePairKeywords = regexp.MustCompile(
		`\s((?:` + departureKeywords + `)\s*([A-Za-z]+)\s*(?:` + arrivalKeywords + `)\s*([A-Za-z]+))\.?\b`)

	// "X - Y", "X to Y", "X 2 Y", "X and Y". The right side may hold several words.
	// Word separators must stand alone so "toronto" is not split at "to".
	rePair = regexp.MustCompile(
		`\s(([A-Za-z]+)\s*(-|\bto\b|\b2\b|\band\b)\s*([A-Za-z\s]+))\.?\b`)

	// "to X from Y", "reaching X leaving Y"
	rePairReversed = regexp.MustCompile(
		`\s((?:` + arrivalKeywords + `)\s*([A-Za-z]+)\s*(?:` + departureKeywords + `)\s*([A-Za-z]+))\.?\b`)

	// "from X", "origin city: X", "going to X". The phrases go first so that
	// "departure city:" is not taken as "depart" + "ure".
	reDeparture = regexp.MustCompile(
		`\s((?:origin city:|departure city:|going to|` + departureKeywords + `)\s*([A-Za-z]+))\.?\s`)

	// "to X", "arriving X", "destination city: X"
	reArrival = regexp.MustCompile(
		`\s((?:to|2|for|fr|arriving|arrive|reaching|reach|rch|destination city:|arrival city:)\s*([A-Za-z]+))\.?\s`)

	// Everything left, across line breaks, up to the last word boundary.
	reAny = regexp.MustCompile(`(?s)\s(.+)\.?\b`)
)

// part is a sub-span of a claim handed to the resolver, with the role its
// cities receive.
type part struct {
	start, end int
	role       Role
}

// claim is one pattern match: the spans to resolve, in text order.
type claim struct {
	parts []part
}

// pass is one detection rule. find is a pure function of the remaining text.
// settle, if set, adjusts the roles of the entities resolved from one claim.
type pass struct {
	name   string
	find   func(s string) []claim
	settle func(entities []Entity, cue Role)
}

// passes run in this order. Strict patterns come before loose ones so the
// loose ones only see text nobody else wanted.
var passes = []pass{
	{name: "departure-arrival-keywords", find: findPairKeywords},
	{name: "departure-arrival", find: findPair},
	{name: "arrival-departure", find: findPairReversed},
	{name: "departure", find: findDeparture},
	{name: "arrival", find: findArrival},
	{name: "any", find: findAny, settle: settleAny},
}

// findPairKeywords matches "from X to Y": X is From, Y is To.
func findPairKeywords(s string) []claim {
	var out []claim
	for _, m := range rePairKeywords.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, claim{parts: []part{
			{start: m[4], end: m[5], role: From},
			{start: m[6], end: m[7], role: To},
		}})
	}
	return out
}

// findPair matches "X - Y" and friends: X is From, Y is To.
func findPair(s string) []claim {
	var out []claim
	for _, m := range rePair.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, claim{parts: []part{
			{start: m[4], end: m[5], role: From},
			{start: m[8], end: m[9], role: To},
		}})
	}
	return out
}

// findPairReversed matches "to X from Y": X is To, Y is From.
func findPairReversed(s string) []claim {
	var out []claim
	for _, m := range rePairReversed.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, claim{parts: []part{
			{start: m[4], end: m[5], role: To},
			{start: m[6], end: m[7], role: From},
		}})
	}
	return out
}

// findDeparture matches a departure keyword followed by one word.
func findDeparture(s string) []claim {
	return findSingle(reDeparture, s, From)
}

// findArrival matches an arrival keyword followed by one word.
func findArrival(s string) []claim {
	return findSingle(reArrival, s, To)
}

func findSingle(re *regexp.Regexp, s string, role Role) []claim {
	var out []claim
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, claim{parts: []part{{start: m[4], end: m[5], role: role}}})
	}
	return out
}

// findAny claims the whole remaining text as one span. Roles are decided by
// settleAny once the resolver has said how many cities it holds.
func findAny(s string) []claim {
	var out []claim
	for _, m := range reAny.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, claim{parts: []part{{start: m[2], end: m[3], role: None}}})
	}
	return out
}

// settleAny assigns roles to the cities of the unqualified remainder. With two or
// more, the first departs and the last arrives; cities in between keep None.
// A single city takes the role suggested by the bot's previous prompt.
func settleAny(entities []Entity, cue Role) {
	switch {
	case len(entities) > 1:
		entities[0].Role = From
		entities[len(entities)-1].Role = To
	case len(entities) == 1:
		entities[0].Role = cue
	}
}
