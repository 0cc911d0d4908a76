package mappable

// Property describes one declared field: the kind it coerces to, its default,
// key renames, an optional nested type and structural flags.
//
// A Property is an immutable value; construct it with Integer, Float, Boolean,
// String, Object, Array or Map.
type Property struct {
	kind              Kind
	def               any
	hasDef            bool
	mapFrom           string
	mapTo             string
	class             NestedType
	deleteIfUndefined bool
	useSetterOnInit   bool
	setWith           func(any) any
}

// Option configures a Property at construction time.
type Option func(*propertyConfig)

type propertyConfig struct {
	def               any
	hasDef            bool
	mapFrom           string
	mapTo             string
	mapBoth           string
	class             NestedType
	deleteIfUndefined bool
	useSetterOnInit   *bool
	setWith           func(any) any
}

// Def sets the default used when the source value is absent or cannot be
// coerced. Def(nil) is an explicit absent marker and disables deletion.
func Def(v any) Option {
	return func(c *propertyConfig) { c.def, c.hasDef = v, true }
}

// MapFrom reads the field from the literal key k instead of the
// naming-convention candidates.
func MapFrom(k string) Option { return func(c *propertyConfig) { c.mapFrom = k } }

// MapTo writes the field under k when serializing.
func MapTo(k string) Option { return func(c *propertyConfig) { c.mapTo = k } }

// MapBoth is MapFrom(k) and MapTo(k) in one option. It wins over both.
func MapBoth(k string) Option { return func(c *propertyConfig) { c.mapBoth = k } }

// Class sets the nested type used to hydrate Object values and Array elements.
func Class(nt NestedType) Option { return func(c *propertyConfig) { c.class = nt } }

// DeleteIfUndefined removes the field from the hydrated object when no value
// can be resolved, instead of synthesizing a kind default.
func DeleteIfUndefined() Option { return func(c *propertyConfig) { c.deleteIfUndefined = true } }

// UseSetterOnInit controls whether hydration assigns through the field's
// setter (when one is bound). It defaults to true unless SetWith is given.
func UseSetterOnInit(b bool) Option {
	return func(c *propertyConfig) { c.useSetterOnInit = &b }
}

// SetWith registers a hook that transforms every defined coerced value before
// it is assigned.
func SetWith(fn func(any) any) Option { return func(c *propertyConfig) { c.setWith = fn } }

// Integer declares an int64 field (default 0).
func Integer(opts ...Option) Property { return newProperty(KindInteger, opts) }

// Float declares a float64 field (default 0.0).
func Float(opts ...Option) Property { return newProperty(KindFloat, opts) }

// Boolean declares a bool field (default false).
func Boolean(opts ...Option) Property { return newProperty(KindBoolean, opts) }

// String declares a string field (default absent).
func String(opts ...Option) Property { return newProperty(KindString, opts) }

// Object declares a structure field, optionally hydrated through Class.
func Object(opts ...Option) Property { return newProperty(KindObject, opts) }

// Array declares a sequence field (default empty), optionally with Class
// elements.
func Array(opts ...Option) Property { return newProperty(KindArray, opts) }

// Map declares a map field. Only the default is applied during hydration.
func Map(opts ...Option) Property { return newProperty(KindMap, opts) }

func newProperty(kind Kind, opts []Option) Property {
	var c propertyConfig
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	p := Property{
		kind:              kind,
		def:               c.def,
		hasDef:            c.hasDef,
		mapFrom:           c.mapFrom,
		mapTo:             c.mapTo,
		class:             c.class,
		deleteIfUndefined: c.deleteIfUndefined,
		setWith:           c.setWith,
	}
	if c.mapBoth != "" {
		p.mapFrom, p.mapTo = c.mapBoth, c.mapBoth
	}
	switch {
	case c.setWith != nil:
		p.useSetterOnInit = false
	case c.useSetterOnInit != nil:
		p.useSetterOnInit = *c.useSetterOnInit
	default:
		p.useSetterOnInit = true
	}
	if !p.hasDef && !p.deleteIfUndefined {
		p.def, p.hasDef = DefaultFor(kind), true
	}
	return p
}

// DefaultFor returns the default synthesized for kind when none is declared.
func DefaultFor(kind Kind) any {
	switch kind {
	case KindInteger:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindBoolean:
		return false
	case KindArray:
		return []any{}
	default:
		return nil
	}
}

func (p Property) Kind() Kind { return p.kind }

// Default returns the default value and whether one exists. A false second
// result means the field is deleted when no value can be resolved.
func (p Property) Default() (any, bool) {
	if !p.hasDef {
		return nil, false
	}
	return cloneShallow(p.def), true
}

// MapFrom returns the source-key override ("" when the naming convention applies).
func (p Property) MapFrom() string { return p.mapFrom }

// MapTo returns the target-key override ("" when the identifier is used).
func (p Property) MapTo() string { return p.mapTo }

func (p Property) Class() NestedType       { return p.class }
func (p Property) DeleteIfUndefined() bool { return p.deleteIfUndefined }
func (p Property) UseSetterOnInit() bool   { return p.useSetterOnInit }

// SetWith returns the value hook, or nil.
func (p Property) SetWith() func(any) any { return p.setWith }

// cloneShallow copies slice and map defaults so hydrated objects never share
// the descriptor's backing storage.
func cloneShallow(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		copy(out, t)
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = vv
		}
		return out
	default:
		return v
	}
}
