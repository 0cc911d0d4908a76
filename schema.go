package mappable

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/reoring/mappable/i18n"
)

// Schema is the ordered field list of a mappable struct T. It is immutable
// once defined and safe for concurrent use.
type Schema[T any] struct {
	name   string
	prefix string
	fields []FieldDef[T]
}

var _ NestedType = (*Schema[Base])(nil)

// Define builds the schema for T. T must embed Base, and identifiers must
// be unique; violations panic since they are programming errors.
func Define[T any](fields ...FieldDef[T]) *Schema[T] {
	if _, ok := any(new(T)).(Mappable); !ok {
		panic(fmt.Sprintf("mappable.Define: %s does not embed mappable.Base", reflect.TypeFor[T]()))
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.name]; dup {
			panic(fmt.Sprintf("mappable.Define: duplicate field %q", f.name))
		}
		seen[f.name] = struct{}{}
	}
	return &Schema[T]{
		name:   reflect.TypeFor[T]().Name(),
		prefix: DefaultPrefix,
		fields: append([]FieldDef[T](nil), fields...),
	}
}

// WithPrefix returns a copy of the schema using p as the internal identifier
// prefix ("" disables the naming convention).
func (s *Schema[T]) WithPrefix(p string) *Schema[T] {
	cp := *s
	cp.prefix = p
	return &cp
}

func (s *Schema[T]) TypeName() string { return s.name }
func (s *Schema[T]) Prefix() string   { return s.prefix }

// Fields returns the declared identifiers in order.
func (s *Schema[T]) Fields() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// New constructs a *T bound to this schema and captures raw without
// hydrating it. A nil raw is treated as an empty object.
func (s *Schema[T]) New(raw any) (*T, error) {
	m, err := asRawObject(raw)
	if err != nil {
		return nil, err
	}
	t := new(T)
	o := any(t).(Mappable).base()
	o.raw = m
	o.renames = map[string]string{}
	o.presence = PresenceMap{}
	o.build = func(ctx context.Context, opt ParseOpt) { s.build(ctx, t, opt) }
	o.entries = func() []entry { return s.entries(t) }
	return t, nil
}

// Parse constructs and hydrates a *T. The error is non-nil when raw is not an
// object, or, with ParseOpt.Strict, when issues were recorded (the hydrated
// value is returned in that case too).
func (s *Schema[T]) Parse(ctx context.Context, raw any, opts ...ParseOpt) (*T, error) {
	t, err := s.New(raw)
	if err != nil {
		return nil, err
	}
	opt := lastOpt(opts)
	s.build(ctx, t, opt)
	if iss := any(t).(Mappable).Issues(); opt.Strict && len(iss) > 0 {
		return t, iss
	}
	return t, nil
}

// FromJSON is Parse with a background context.
func (s *Schema[T]) FromJSON(raw any) (*T, error) { return s.Parse(context.Background(), raw) }

// Construct implements NestedType. Unlike Parse it rejects a nil raw value.
func (s *Schema[T]) Construct(ctx context.Context, raw any) (Mappable, error) {
	if raw == nil {
		return nil, singleIssue("/", CodeNotObject, ErrNotObject)
	}
	t, err := s.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	return any(t).(Mappable), nil
}

// ToJSON serializes t; it is what the promoted Base.ToJSON calls.
func (s *Schema[T]) ToJSON(t *T) map[string]any {
	return any(t).(Mappable).ToJSON()
}

func asRawObject(raw any) (map[string]any, error) {
	switch t := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return t, nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out[it.Key().String()] = it.Value().Interface()
		}
		return out, nil
	}
	return nil, singleIssue("/", CodeNotObject, fmt.Errorf("%w: got %T", ErrNotObject, raw))
}

// isRawObject reports whether raw can be handed to a nested constructor.
func isRawObject(raw any) bool {
	if _, ok := raw.(map[string]any); ok {
		return true
	}
	rv := reflect.ValueOf(raw)
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

// hydration carries the per-Build state shared by all fields.
type hydration struct {
	ctx context.Context
	o   *Base
	log *slog.Logger
}

func (s *Schema[T]) build(ctx context.Context, t *T, opt ParseOpt) {
	start := time.Now()
	o := any(t).(Mappable).base()
	h := &hydration{ctx: ctx, o: o, log: opt.Logger}
	if h.log == nil {
		h.log = Logger()
	}
	o.opt = opt
	o.issues = nil
	clear(o.renames)
	clear(o.presence)
	for _, f := range s.fields {
		s.hydrateField(h, t, f)
	}
	h.log.LogAttrs(ctx, slog.LevelDebug, "mappable: build complete",
		slog.String("type", s.name),
		slog.Int("fields", len(s.fields)),
		slog.Int("issues", len(o.issues)),
	)
	emitBuildComplete(ctx, s.name, len(s.fields), len(o.issues), time.Since(start))
}

func (s *Schema[T]) hydrateField(h *hydration, t *T, f FieldDef[T]) {
	p := f.prop
	if p.mapTo != "" {
		h.o.renames[f.name] = p.mapTo
	}
	keys := sourceKeys(f.name, s.prefix, p)
	key, raw, present := resolveKeyed(h.o.raw, keys)
	if !present {
		key = keys[0]
	}
	var flags Presence
	if present {
		flags |= PresenceSeen
	}

	v, defined, fromDefault := s.coerce(h, f, "/"+key, raw, present)
	if fromDefault {
		flags |= PresenceDefaultApplied
	}
	if !defined {
		f.zero(t)
		h.o.presence[f.name] = flags | PresenceDeleted
		return
	}
	if p.setWith != nil {
		v = p.setWith(v)
	}
	if v == nil {
		flags |= PresenceNull
	}
	if err := f.store(t, v); err != nil {
		h.o.issues = append(h.o.issues, Issue{
			Path:    "/" + key,
			Code:    CodeUnassignable,
			Message: i18n.T(CodeUnassignable, map[string]string{"field": f.name}),
			Cause:   err,
		})
		f.zero(t)
		flags |= PresenceDeleted
	}
	h.o.presence[f.name] = flags
}

// coerce dispatches on the property kind. defined is false when the field is
// deleted; fromDefault reports that the descriptor default was used.
func (s *Schema[T]) coerce(h *hydration, f FieldDef[T], path string, raw any, present bool) (v any, defined, fromDefault bool) {
	p := f.prop
	switch p.kind {
	case KindArray:
		seq, ok := AsSequence(raw)
		if !present || !ok {
			d, has := p.Default()
			if !has {
				return nil, false, true
			}
			if seq, ok = AsSequence(d); !ok {
				return d, true, true
			}
			fromDefault = true
		}
		if p.class != nil {
			seq = s.constructEach(h, f, path, seq)
		}
		return seq, true, fromDefault
	case KindObject:
		if present && p.class == nil && IsStructure(raw) {
			return cloneShallow(raw), true, false
		}
		if !present || p.class == nil || !isRawObject(raw) {
			d, has := p.Default()
			if !has {
				return nil, false, true
			}
			if d == nil || p.class == nil {
				return d, true, true
			}
			raw, fromDefault = d, true
		}
		child, ok := s.constructOne(h, f, path, raw)
		if !ok {
			return nil, false, fromDefault
		}
		return child, true, fromDefault
	case KindMap:
		d, has := p.Default()
		return d, has, true
	default:
		if present {
			if v, ok := p.parseScalar(raw); ok {
				return v, true, false
			}
		}
		d, has := p.Default()
		return d, has, true
	}
}

func (s *Schema[T]) constructOne(h *hydration, f FieldDef[T], path string, raw any) (Mappable, bool) {
	child, err := f.prop.class.Construct(h.ctx, raw)
	if err != nil {
		s.nestedFailed(h, f, path, err)
		return nil, false
	}
	if iss := child.Issues(); len(iss) > 0 {
		h.o.issues = append(h.o.issues, rebase(iss, path)...)
	}
	return child, true
}

// constructEach replaces every element with its nested construction, in
// place. Elements that are not objects are constructed from an empty object;
// elements whose constructor fails are dropped.
func (s *Schema[T]) constructEach(h *hydration, f FieldDef[T], path string, seq []any) []any {
	out := make([]any, 0, len(seq))
	for i, e := range seq {
		if !isRawObject(e) {
			e = map[string]any{}
		}
		child, ok := s.constructOne(h, f, fmt.Sprintf("%s/%d", path, i), e)
		if !ok {
			continue
		}
		out = append(out, child)
	}
	return out
}

func (s *Schema[T]) nestedFailed(h *hydration, f FieldDef[T], path string, err error) {
	nested := f.prop.class.TypeName()
	h.o.issues = append(h.o.issues, Issue{
		Path:    path,
		Code:    CodeNestedConstruction,
		Message: i18n.T(CodeNestedConstruction, map[string]string{"type": nested}),
		Cause:   err,
	})
	h.log.LogAttrs(h.ctx, slog.LevelWarn, "mappable: nested construction failed",
		slog.String("type", s.name),
		slog.String("field", f.name),
		slog.String("nested", nested),
		slog.String("path", path),
		slog.Any("error", err),
	)
	emitNestedFailed(h.ctx, s.name, f.name, err)
}

// entries lists the serialized fields of t in declaration order.
func (s *Schema[T]) entries(t *T) []entry {
	o := any(t).(Mappable).base()
	out := make([]entry, 0, len(s.fields))
	for _, f := range s.fields {
		flags := o.presence[f.name]
		if flags&PresenceDeleted != 0 {
			continue
		}
		key, ok := o.renames[f.name]
		if !ok {
			key = outputKey(f.name, s.prefix)
		}
		var v any
		if flags&PresenceNull == 0 || !f.isZero(t) {
			v = f.get(t)
		}
		out = append(out, entry{key: key, value: v})
	}
	return out
}
