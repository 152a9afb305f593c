// Package fieldpath resolves dotted paths such as "client.name" against
// structs, maps and pointers without ever panicking.
package fieldpath

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Lookup walks path through v. Struct fields match on their json tag first
// and their Go name (case-insensitive) second. The second return value is
// false when any segment is missing or a nil is hit along the way.
func Lookup(v any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	cur := reflect.ValueOf(v)
	for _, seg := range strings.Split(path, ".") {
		cur = indirect(cur)
		if !cur.IsValid() {
			return nil, false
		}

		switch cur.Kind() {
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			next := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
			if !next.IsValid() {
				return nil, false
			}
			cur = next
		case reflect.Struct:
			next, ok := structField(cur, seg)
			if !ok {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}

	cur = indirect(cur)
	if !cur.IsValid() || !cur.CanInterface() {
		return nil, false
	}
	return cur.Interface(), true
}

// Text renders a resolved value the way a user would type it into a search box.
// Empty strings report false so callers can treat them as absent.
func Text(v any) (string, bool) {
	var s string
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s = val
	case time.Time:
		if val.IsZero() {
			return "", false
		}
		s = val.Format("2006-01-02")
	case fmt.Stringer:
		s = val.String()
	case bool:
		s = strconv.FormatBool(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		s = fmt.Sprintf("%d", val)
	case float32:
		s = strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		s = fmt.Sprint(val)
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// Number coerces a resolved value to float64. Strings are parsed; types
// exposing Float64() (such as decimal.Decimal) are converted.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	case interface{ Float64() (float64, bool) }:
		f, _ := val.Float64()
		return f, true
	}
	return 0, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	fallback := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("json") == "" {
			if inner, ok := structField(v.Field(i), name); ok {
				return inner, true
			}
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return v.Field(i), true
		}
		if fallback < 0 && tag != "-" && strings.EqualFold(f.Name, name) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return v.Field(fallback), true
	}
	return reflect.Value{}, false
}
