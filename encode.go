package mappable

import (
	"math"
	"reflect"

	"github.com/iancoleman/orderedmap"
)

// Plain deep-converts v into generic values: Mappables become
// map[string]any through ToJSON, slices become []any and string-keyed maps
// become map[string]any. NaN and infinities become nil, as JSON has no
// literal for them. Other values are returned as is.
func Plain(v any) any {
	if m, ok := v.(Mappable); ok {
		if isNilPointer(m) {
			return nil
		}
		src := m.ToJSON()
		out := make(map[string]any, len(src))
		for k, e := range src {
			out[k] = Plain(e)
		}
		return out
	}
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(t)
	case float32:
		if finite(float64(t)) == nil {
			return nil
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Plain(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Plain(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v
		}
		out := make(map[string]any, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out[it.Key().String()] = Plain(it.Value().Interface())
		}
		return out
	}
	return v
}

// Marshal encodes m as JSON text with keys in field declaration order,
// nested Mappables included. The current JSON driver does the encoding.
func Marshal(m Mappable) ([]byte, error) {
	return getJSONDriver().Marshal(ordered(m))
}

func ordered(v any) any {
	if m, ok := v.(Mappable); ok {
		if isNilPointer(m) {
			return nil
		}
		om := orderedmap.New()
		for _, e := range m.base().fields() {
			om.Set(e.key, ordered(e.value))
		}
		return om
	}
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(t)
	case float32:
		if finite(float64(t)) == nil {
			return nil
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ordered(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = ordered(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && !rv.IsNil() && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = ordered(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// finite keeps f unless it is NaN or infinite.
func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
