package converter

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag field names are read from, for both directions.
const TagName = "json"

// StructureFunc turns a raw value into a value assignable to the hook's target type.
type StructureFunc func(data any) (any, error)

// UnstructureFunc renders a typed value into its JSON-like form.
type UnstructureFunc func(v reflect.Value) (any, error)

// Converter holds the rule set used to structure and unstructure records.
// It is immutable once built and safe for concurrent use.
type Converter struct {
	structureHooks   map[reflect.Type]StructureFunc
	unstructureHooks map[reflect.Type]UnstructureFunc
}

// Option registers extra rules while a Converter is being built.
type Option func(*Converter)

// WithStructureHook registers fn for every field or value of type t.
func WithStructureHook(t reflect.Type, fn StructureFunc) Option {
	return func(c *Converter) {
		c.structureHooks[t] = fn
	}
}

// WithUnstructureHook registers fn for every value of type t.
func WithUnstructureHook(t reflect.Type, fn UnstructureFunc) Option {
	return func(c *Converter) {
		c.unstructureHooks[t] = fn
	}
}

// New builds a Converter with the default timestamp rules plus any extra options.
func New(opts ...Option) *Converter {
	c := &Converter{
		structureHooks: map[reflect.Type]StructureFunc{
			timeType: structureTime,
		},
		unstructureHooks: map[reflect.Type]UnstructureFunc{
			timeType: unstructureTime,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default returns the process-wide Converter with the default rule set.
var Default = sync.OnceValue(func() *Converter {
	return New()
})

// Load structures data into a new T. With convertCase, keys are rewritten to
// snake_case first.
func Load[T any](c *Converter, data any, convertCase bool) (T, error) {
	var out T
	err := c.LoadInto(data, &out, convertCase)
	return out, err
}

// LoadInto structures data into target, which must be a non-nil pointer.
func (c *Converter) LoadInto(data any, target any, convertCase bool) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("converter: target must be a non-nil pointer, got %T", target)
	}
	targetType := rv.Type().Elem()

	if data == nil {
		return newStructuringError(targetType, errors.New("no data to structure"))
	}
	if convertCase {
		data = SnakeKeys(data)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(c.structureHook),
		ErrorUnset: true,
		TagName:    TagName,
		Result:     target,
	})
	if err != nil {
		return fmt.Errorf("converter: create decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return newStructuringError(targetType, err)
	}
	return nil
}

func (c *Converter) structureHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if err := rejectNulls(to, data); err != nil {
		return nil, err
	}
	if err := rejectNullItems(to, data); err != nil {
		return nil, err
	}
	if err := rejectFractions(to, data); err != nil {
		return nil, err
	}
	if fn, ok := c.structureHooks[to]; ok {
		return fn(data)
	}
	return data, nil
}

// Dump unstructures value into map[string]any / []any / scalars keyed by the
// records' snake_case names. With convertCase, keys are rewritten to camelCase after.
func (c *Converter) Dump(value any, convertCase bool) (any, error) {
	out, err := c.unstructure(reflect.ValueOf(value))
	if err != nil {
		return nil, fmt.Errorf("converter: dump %T: %w", value, err)
	}
	if convertCase {
		out = CamelKeys(out)
	}
	return out, nil
}

func (c *Converter) unstructure(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if fn, ok := c.unstructureHooks[v.Type()]; ok {
		return fn(v)
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return c.unstructure(v.Elem())

	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, ok := fieldName(field)
			if !ok {
				continue
			}
			value, err := c.unstructure(v.Field(i))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out[name] = value
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			value, err := c.unstructure(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = value
		}
		return out, nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %s is not a string", v.Type().Key())
		}
		if v.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			value, err := c.unstructure(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
			out[iter.Key().String()] = value
		}
		return out, nil

	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.Interface(), nil

	default:
		return nil, fmt.Errorf("cannot unstructure %s", v.Type())
	}
}
