package xconsole

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// inspectLines expands v into the lines written by Logger.Inspect: a type tag,
// then one "key: value" line per field, map entry or element of a structured
// value, or the plain string form of anything else. A nil v yields nothing.
func inspectLines(v any, colours bool) []string {
	if v == nil {
		return nil
	}
	lines := []string{paint(colours, colourRed, fmt.Sprintf("%T", v))}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return append(lines, "<nil>")
		}
		rv = rv.Elem()
	}

	kv := func(k string, val reflect.Value) string {
		return paint(colours, colourCyan, k) + ": " + valueString(val)
	}

	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			lines = append(lines, kv(fmt.Sprint(k.Interface()), rv.MapIndex(k)))
		}
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			name, ok := fieldName(rt.Field(i))
			if !ok {
				continue
			}
			lines = append(lines, kv(name, rv.Field(i)))
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Byte payloads read better as text.
			return append(lines, valueString(rv))
		}
		for i := 0; i < rv.Len(); i++ {
			lines = append(lines, kv(strconv.Itoa(i), rv.Index(i)))
		}
	default:
		lines = append(lines, valueString(rv))
	}
	return lines
}

// fieldName returns the display name of an exported struct field, honouring
// the json tag. ok is false for unexported or json:"-" fields.
func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

func valueString(rv reflect.Value) string {
	if !rv.IsValid() || !rv.CanInterface() {
		return "<nil>"
	}
	switch v := rv.Interface().(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case []byte:
		return string(v)
	case error:
		if isNil(v) {
			return "<nil>"
		}
		return v.Error()
	case fmt.Stringer:
		if isNil(v) {
			return "<nil>"
		}
		return v.String()
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "<nil>"
		}
		rv = rv.Elem()
	}
	return fmt.Sprintf("%+v", rv.Interface())
}
