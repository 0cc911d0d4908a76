package mappable

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// FieldDef binds a field identifier and its Property to a struct field of T.
// Obtain it via Field so the binding is checked at compile time.
type FieldDef[T any] struct {
	name   string
	prop   Property
	get    func(*T) any
	assign func(*T, any) error
	zero   func(*T)
	isZero func(*T) bool
	setter func(*T, any)
}

// Field declares a field. The selector must return the address of the struct
// field that receives the hydrated value, e.g.:
//
//	mappable.Field("_price", mappable.Float(), func(p *Product) *float64 { return &p.Price })
//
// Hydrated values are converted to F when they are not already of that type:
// numbers convert between numeric kinds, sequences convert element-wise and
// maps decode into structs through their json tags.
func Field[T, F any](name string, prop Property, selector func(*T) *F) FieldDef[T] {
	if selector == nil {
		panic("mappable.Field: selector must not be nil")
	}
	if name == "" {
		panic("mappable.Field: identifier must not be empty")
	}
	return FieldDef[T]{
		name: name,
		prop: prop,
		get:  func(t *T) any { return *selector(t) },
		assign: func(t *T, v any) error {
			dst := selector(t)
			if v == nil {
				var zero F
				*dst = zero
				return nil
			}
			if fv, ok := v.(F); ok {
				*dst = fv
				return nil
			}
			return assignValue(reflect.ValueOf(dst).Elem(), v)
		},
		zero: func(t *T) {
			var zero F
			*selector(t) = zero
		},
		isZero: func(t *T) bool { return reflect.ValueOf(selector(t)).Elem().IsZero() },
	}
}

// Setter routes hydration through fn instead of direct assignment, as long as
// the Property keeps UseSetterOnInit enabled.
func (d FieldDef[T]) Setter(fn func(*T, any)) FieldDef[T] {
	d.setter = fn
	return d
}

func (d FieldDef[T]) Name() string       { return d.name }
func (d FieldDef[T]) Property() Property { return d.prop }

func (d FieldDef[T]) store(t *T, v any) error {
	if d.setter != nil && d.prop.useSetterOnInit {
		d.setter(t, v)
		return nil
	}
	return d.assign(t, v)
}

// assignValue stores v into dst, converting where a lossless shape change is
// possible.
func assignValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	sv := reflect.ValueOf(v)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}
	switch {
	case isNumeric(sv.Kind()) && isNumeric(dst.Kind()),
		sv.Kind() == reflect.String && dst.Kind() == reflect.String,
		sv.Kind() == reflect.Bool && dst.Kind() == reflect.Bool:
		dst.Set(sv.Convert(dst.Type()))
		return nil
	}
	switch dst.Kind() {
	case reflect.Pointer:
		if sv.Kind() != reflect.Pointer {
			n := reflect.New(dst.Type().Elem())
			if err := assignValue(n.Elem(), v); err != nil {
				return err
			}
			dst.Set(n)
			return nil
		}
	case reflect.Slice:
		if seq, ok := AsSequence(v); ok {
			out := reflect.MakeSlice(dst.Type(), len(seq), len(seq))
			for i, e := range seq {
				if err := assignValue(out.Index(i), e); err != nil {
					return fmt.Errorf("index %d: %w", i, err)
				}
			}
			dst.Set(out)
			return nil
		}
	case reflect.Map, reflect.Struct:
		if sv.Kind() == reflect.Map {
			return decodeStructure(dst, v)
		}
	}
	return fmt.Errorf("cannot assign %T to %s", v, dst.Type())
}

// decodeStructure fills a map or struct target from a raw structure.
func decodeStructure(dst reflect.Value, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst.Addr().Interface(),
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(v)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
