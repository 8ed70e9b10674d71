package gazetteer

// stopwords never fuzzy-match a city. They are the long words of ordinary
// travel requests, which would otherwise sit one or two edits away from some
// alias. Exact alias matches are not affected.
var stopwords = map[string]struct{}{
	// Direction keywords
	"departing": {}, "leaving": {}, "arriving": {}, "reaching": {},
	"going": {}, "coming": {}, "return": {}, "returning": {},
	// Travel nouns
	"flight": {}, "flights": {}, "ticket": {}, "tickets": {}, "train": {}, "trains": {},
	"booking": {}, "hotel": {}, "hotels": {}, "airport": {}, "station": {},
	"origin": {}, "destination": {}, "departure": {}, "arrival": {}, "cities": {},
	// Verbs
	"travel": {}, "travelling": {}, "traveling": {}, "flying": {}, "wants": {},
	"would": {}, "could": {}, "should": {}, "please": {}, "check": {}, "search": {},
	// Time
	"today": {}, "tomorrow": {}, "tonight": {}, "morning": {}, "evening": {},
	"night": {}, "weekend": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
	// Function words
	"there": {}, "where": {}, "which": {}, "about": {}, "after": {}, "before": {},
	"between": {}, "through": {}, "their": {}, "these": {}, "those": {},
	"cheap": {}, "cheapest": {}, "direct": {}, "hello": {}, "thanks": {},
}

func isStopword(key string) bool {
	_, ok := stopwords[key]
	return ok
}
