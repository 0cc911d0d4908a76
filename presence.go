package mappable

import "strings"

// Presence is the bit flag recorded for every declared field during Build.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // A source key held a non-null value.
	PresenceDefaultApplied                      // The descriptor default was used.
	PresenceNull                                // The field was hydrated to the absent marker.
	PresenceDeleted                             // No value; the field is omitted from output.
)

// Has reports whether all bits of f are set.
func (p Presence) Has(f Presence) bool { return p&f == f }

func (p Presence) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, x := range []struct {
		f    Presence
		name string
	}{
		{PresenceSeen, "seen"},
		{PresenceDefaultApplied, "default"},
		{PresenceNull, "null"},
		{PresenceDeleted, "deleted"},
	} {
		if p&x.f != 0 {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "|")
}

// PresenceMap maps field identifiers to Presence flags.
type PresenceMap map[string]Presence
