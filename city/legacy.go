package city

// Flags is the four-boolean role shape used by older slot-filling consumers.
type Flags struct {
	From   bool `json:"from"`
	To     bool `json:"to"`
	Via    bool `json:"via"`
	Normal bool `json:"normal"`
}

// Flags returns the legacy booleans for r. None yields all false.
func (r Role) Flags() Flags {
	return Flags{
		From:   r == From,
		To:     r == To,
		Via:    r == Via,
		Normal: r == Normal,
	}
}

// LegacyValue is one entry of the legacy entity list.
type LegacyValue struct {
	City string `json:"city"`
	Flags
}

// Legacy splits entities into the three parallel lists older consumers
// expect: values with role flags, the original surface texts, and the
// detection methods.
func Legacy(entities []Entity) (values []LegacyValue, originals []string, methods []string) {
	values = make([]LegacyValue, 0, len(entities))
	originals = make([]string, 0, len(entities))
	methods = make([]string, 0, len(entities))
	for _, e := range entities {
		values = append(values, LegacyValue{City: e.Value, Flags: e.Role.Flags()})
		originals = append(originals, e.Text)
		methods = append(methods, string(e.Method))
	}
	return values, originals, methods
}
