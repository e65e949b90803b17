package converter

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

// TimestampLayout is the wire rendering of timestamps (millisecond precision, as the
// locker sends them). Values with sub-millisecond precision fall back to RFC 3339 nano.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var timeType = reflect.TypeOf(time.Time{})

// Accepted ISO-8601 shapes, tried in order. Layouts without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// FormatTimestamp renders t the way ParseTimestamp reads it back.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()%int(time.Millisecond) == 0 {
		return t.Format(TimestampLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func structureTime(data any) (any, error) {
	switch typed := data.(type) {
	case string:
		return ParseTimestamp(typed)
	case time.Time:
		return typed, nil
	default:
		return nil, fmt.Errorf("expected an ISO-8601 string, got %T", data)
	}
}

func unstructureTime(v reflect.Value) (any, error) {
	return FormatTimestamp(v.Interface().(time.Time)), nil
}

// rejectNulls fails when a mapping carries null for a struct field that cannot hold it.
// mapstructure skips nil inputs silently, so the check happens one level up, on the struct.
func rejectNulls(to reflect.Type, data any) error {
	if to.Kind() != reflect.Struct {
		return nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	var problems []string
	for i := 0; i < to.NumField(); i++ {
		field := to.Field(i)
		if !field.IsExported() {
			continue
		}
		name, ok := fieldName(field)
		if !ok {
			continue
		}
		if value, present := lookupKey(m, name); present && value == nil && !nullable(field.Type) {
			problems = append(problems, fmt.Sprintf("'%s' is null but %s is not optional", name, field.Type))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, ", "))
	}
	return nil
}

// rejectNullItems fails when a sequence or mapping carries null where its element
// type cannot hold it. mapstructure would otherwise leave a zero value in that slot.
func rejectNullItems(to reflect.Type, data any) error {
	switch to.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
	default:
		return nil
	}
	if nullable(to.Elem()) {
		return nil
	}

	var problems []string
	switch typed := data.(type) {
	case []any:
		for i, item := range typed {
			if item == nil {
				problems = append(problems, fmt.Sprintf("item %d is null but %s is not optional", i, to.Elem()))
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key, value := range typed {
			if value == nil {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			problems = append(problems, fmt.Sprintf("'%s' is null but %s is not optional", key, to.Elem()))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, ", "))
	}
	return nil
}

// rejectFractions keeps 1.5 from quietly becoming 1 in an integer field.
func rejectFractions(to reflect.Type, data any) error {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil
	}
	var f float64
	switch typed := data.(type) {
	case float64:
		f = typed
	case float32:
		f = float64(typed)
	default:
		return nil
	}
	if math.Trunc(f) != f {
		return fmt.Errorf("expected an integer, got %v", f)
	}
	return nil
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// lookupKey mirrors mapstructure's field matching: exact key first, then case-insensitive.
func lookupKey(m map[string]any, name string) (any, bool) {
	if value, ok := m[name]; ok {
		return value, true
	}
	for key, value := range m {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get(TagName)
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, true
}
