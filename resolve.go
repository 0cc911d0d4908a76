package mappable

import "strings"

// ResolveKey returns the value stored under the first candidate that is an
// own key of raw. The first present key wins even when it holds null, and a
// null value resolves as absent.
func ResolveKey(raw map[string]any, candidates ...string) (any, bool) {
	_, v, ok := resolveKeyed(raw, candidates)
	return v, ok
}

// resolveKeyed is ResolveKey that also reports the key that matched.
func resolveKeyed(raw map[string]any, candidates []string) (string, any, bool) {
	for _, k := range candidates {
		v, ok := raw[k]
		if !ok {
			continue
		}
		if v == nil {
			return k, nil, false
		}
		return k, v, true
	}
	return "", nil, false
}

// ConventionKeys lists the lookup candidates for an identifier under the
// given prefix: the unprefixed name first, then the prefixed one.
//
//	ConventionKeys("_id", "_") // ["id", "_id"]
//	ConventionKeys("id", "_")  // ["id", "_id"]
func ConventionKeys(identifier, prefix string) []string {
	if prefix == "" {
		return []string{identifier}
	}
	name := strings.TrimPrefix(identifier, prefix)
	return []string{name, prefix + name}
}

// sourceKeys returns the keys consulted for a field. An explicit MapFrom
// bypasses the naming convention.
func sourceKeys(identifier, prefix string, p Property) []string {
	if p.mapFrom != "" {
		return []string{p.mapFrom}
	}
	return ConventionKeys(identifier, prefix)
}

// outputKey is the default serialization key for an identifier.
func outputKey(identifier, prefix string) string {
	if prefix == "" {
		return identifier
	}
	return strings.TrimPrefix(identifier, prefix)
}
