package converter

import (
	"sort"

	"github.com/iancoleman/strcase"
)

// ToSnake rewrites a camelCase or PascalCase key to snake_case.
func ToSnake(key string) string {
	return strcase.ToSnake(key)
}

// ToCamel rewrites a snake_case key to lower camelCase, the locker's wire convention.
func ToCamel(key string) string {
	return strcase.ToLowerCamel(key)
}

// SnakeKeys returns a copy of data with every mapping key, at every depth, in snake_case.
// Sequence items and scalar values are carried over unchanged.
//
// When several keys of one mapping rename to the same key (cellId and cell_id),
// a key already spelled in the target case wins; otherwise the lexically
// smallest original key wins.
func SnakeKeys(data any) any {
	return rewriteKeys(data, ToSnake)
}

// CamelKeys is the inverse of SnakeKeys.
func CamelKeys(data any) any {
	return rewriteKeys(data, ToCamel)
}

func rewriteKeys(data any, rename func(string) string) any {
	switch typed := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			renamed := rename(key)
			if _, taken := out[renamed]; taken && key != renamed {
				continue
			}
			out[renamed] = rewriteKeys(typed[key], rename)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = rewriteKeys(item, rename)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = rewriteKeys(item, rename)
		}
		return out
	default:
		return data
	}
}
