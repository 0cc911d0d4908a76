package mappable

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// TextOf renders a raw value the way loosely typed JSON consumers stringify
// it: numbers in shortest decimal form, sequences joined with commas and
// structures as "[object Object]".
func TextOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := t.Float64(); err == nil {
			return numberText(f)
		}
		return string(t)
	case float64:
		return numberText(t)
	case float32:
		return numberText(float64(t))
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(t).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(t).Uint(), 10)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = TextOf(e)
		}
		return strings.Join(parts, ",")
	case map[string]any, Mappable:
		return "[object Object]"
	case fmt.Stringer:
		return t.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if seq, ok := AsSequence(v); ok {
			return TextOf(seq)
		}
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}

func numberText(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseInteger converts v with leading-prefix integer parsing: "42abc" is 42,
// "3.9" is 3, "0x1A" is 26. The second result is false when no number can be
// read (including booleans and structures). Values outside int64 saturate.
func ParseInteger(v any) (int64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(t).Int(), true
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(t).Uint()
		if u > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(u), true
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return i, true
		}
	}
	return parseIntPrefix(TextOf(v))
}

func parseIntPrefix(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], base, 64)
	if errors.Is(err, strconv.ErrRange) {
		if neg {
			return math.MinInt64, true
		}
		return math.MaxInt64, true
	}
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

// ParseNumber converts v with leading-prefix float parsing: "3.14xyz" is
// 3.14, "1e3" is 1000, "Infinity" is +Inf. The second result is false for NaN.
func ParseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), !math.IsNaN(float64(t))
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(t).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(t).Uint()), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	}
	return parseFloatPrefix(TextOf(v))
}

func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	intDigits := scanDigits(s, i)
	end := i + intDigits
	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		fracDigits = scanDigits(s, end+1)
		if intDigits > 0 || fracDigits > 0 {
			end += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := scanDigits(s, j); n > 0 {
			end = j + n
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// out-of-range literals saturate to ±Inf or 0
		var ne *strconv.NumError
		if !errors.As(err, &ne) || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return f, true
}

func scanDigits(s string, from int) int {
	n := 0
	for from+n < len(s) && s[from+n] >= '0' && s[from+n] <= '9' {
		n++
	}
	return n
}

// Truthy reports whether v counts as true in a boolean context: false, zero,
// NaN, "" and nil are falsy, everything else (including "0") is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int, int8, int16, int32, int64:
		return reflect.ValueOf(t).Int() != 0
	case uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(t).Uint() != 0
	}
	return true
}

// ParseBoolean maps the literal "false" to false and everything else through
// Truthy.
func ParseBoolean(v any) bool {
	if s, ok := v.(string); ok && s == "false" {
		return false
	}
	return Truthy(v)
}

// AsSequence returns a fresh []any holding the elements of v when v is a
// slice or array.
func AsSequence(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		copy(out, s)
		return out, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// IsStructure reports whether v is object-like: a map, a sequence, a struct or
// a Mappable.
func IsStructure(v any) bool {
	switch v.(type) {
	case nil:
		return false
	case map[string]any, []any, Mappable:
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

// parseScalar converts a present value for the scalar kinds. It reports
// false when the value has to fall back to the default.
func (p Property) parseScalar(v any) (any, bool) {
	switch p.kind {
	case KindString:
		return TextOf(v), true
	case KindInteger:
		if n, ok := ParseInteger(v); ok {
			return n, true
		}
	case KindFloat:
		if f, ok := ParseNumber(v); ok {
			return f, true
		}
	case KindBoolean:
		return ParseBoolean(v), true
	}
	return nil, false
}
