package scenario

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Event is a single domain occurrence within a scenario.
//
// Events are immutable once parsed. Their order inside Scenario.Events is
// simulated chronological order, not merely declaration order.
type Event struct {
	// EventType is the two-part identifier of the domain transition,
	// e.g. "CreditFacilityEvent::Initialized".
	EventType string

	// Entity is the string key of the logical entity instance this event
	// applies to, e.g. "facility_1". Entities are referenced by key only;
	// resolution happens by lookup during translation.
	Entity string

	// After is how far to advance the simulated clock before applying
	// this event, relative to the previous event's application time.
	After time.Duration

	// Values holds event-specific parameters: amounts in minor units,
	// nested duration and rate encodings, free-form strings.
	Values map[string]any
}

// EnumName returns the enum half of the event type, e.g. "CustomerEvent".
func (e Event) EnumName() string {
	name, _, _ := strings.Cut(e.EventType, "::")
	return name
}

// VariantName returns the variant half of the event type, e.g. "Initialized".
func (e Event) VariantName() string {
	_, variant, _ := strings.Cut(e.EventType, "::")
	return variant
}

// Scenario is one complete scenario definition.
type Scenario struct {
	Name        string
	Description string

	// Seed drives determinism in the downstream simulation. Opaque here.
	Seed int64

	// StartTime anchors the first event's clock.
	StartTime time.Time

	Events []Event
}

// ModuleName derives a stable code-module identifier from the scenario name:
// lowercase, Unicode-folded, with non-alphanumeric runs collapsed to single
// underscores and leading/trailing underscores trimmed.
func (s *Scenario) ModuleName() string {
	folded := norm.NFKD.String(strings.ToLower(s.Name))

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.Is(unicode.Mn, r):
			// Combining marks left over from decomposition vanish
			// without splitting the word.
		default:
			pendingSep = true
		}
	}
	return b.String()
}
