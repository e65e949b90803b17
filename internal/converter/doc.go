// Package converter moves data between the locker's wire format and typed records.
//
// Two independent steps are composed in a fixed order:
//
//   - key casing: camelCase (wire) <-> snake_case (record tags)
//   - shape: untyped JSON-like values (map[string]any, []any, scalars) <-> structs
//
// Loading renames keys first and then structures; dumping unstructures first and
// then renames. The typed records therefore only ever see snake_case names and stay
// reusable against any API that differs only in casing.
//
// # Usage
//
// Build the rule set once and pass it to the call sites that need it:
//
//	conv := converter.New()
//	cells, err := converter.Load[[]entities.Cell](conv, payload["data"], true)
//
//	raw, err := conv.Dump(cells, true) // []any of camelCase maps
//
// Structuring failures (missing field, wrong type, null in a non-optional field,
// bad timestamp) are reported as *StructuringError.
package converter
