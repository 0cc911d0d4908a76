package mappable

import "context"

// Base is the embeddable base of every mappable struct. It owns the raw
// input captured at construction, the output-key renames recorded during
// hydration and the per-field presence flags.
//
//	type Seller struct {
//		mappable.Base
//		Name  string
//		Email string
//	}
//
// Only values created through Schema.New, Schema.Parse or FromJSON are bound
// to their schema; Build and ToJSON on a bare Base are no-ops. Mappable
// structs are used through pointers and must not be copied after
// construction.
type Base struct {
	raw      map[string]any
	renames  map[string]string
	presence PresenceMap
	issues   Issues
	opt      ParseOpt

	build   func(context.Context, ParseOpt)
	entries func() []entry
}

// entry is one serialized field in declaration order.
type entry struct {
	key   string
	value any
}

func (o *Base) base() *Base { return o }

// Build hydrates the declared fields. Calling it again re-coerces from the
// captured raw input with the options of the previous Parse.
func (o *Base) Build(ctx context.Context) {
	if o.build == nil {
		return
	}
	o.build(ctx, o.opt)
}

// ToJSON returns the serialized fields keyed by output key.
func (o *Base) ToJSON() map[string]any {
	es := o.fields()
	out := make(map[string]any, len(es))
	for _, e := range es {
		out[e.key] = e.value
	}
	return out
}

// MarshalJSON encodes the object with keys in declaration order.
func (o *Base) MarshalJSON() ([]byte, error) { return Marshal(o) }

func (o *Base) Issues() Issues { return o.issues }

// Presence returns the flags recorded for a field identifier.
func (o *Base) Presence(identifier string) Presence { return o.presence[identifier] }

// Has reports whether the field survived hydration (it was not deleted).
func (o *Base) Has(identifier string) bool {
	p, ok := o.presence[identifier]
	return ok && p&PresenceDeleted == 0
}

func (o *Base) fields() []entry {
	if o.entries == nil {
		return nil
	}
	return o.entries()
}
