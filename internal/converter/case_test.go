package converter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cellId", "cell_id"},
		{"CellId", "cell_id"},
		{"sessionId", "session_id"},
		{"createdAt", "created_at"},
		{"id", "id"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnake(tt.input))
		})
	}
}

func TestToCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cell_id", "cellId"},
		{"session_id", "sessionId"},
		{"updated_at", "updatedAt"},
		{"name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCamel(tt.input))
		})
	}
}

func TestCaseRoundTrip(t *testing.T) {
	keys := []string{"id", "name", "cellId", "active", "sessionId", "position", "block", "createdAt", "updatedAt", "lastEventTimestamp"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, key, ToCamel(ToSnake(key)))
		})
	}
}

func TestSnakeKeys_Nested(t *testing.T) {
	input := map[string]any{
		"message": "OK",
		"data": []any{
			map[string]any{"cellId": float64(1), "sessionId": nil},
			"plainString",
		},
		"meta": map[string]any{"totalCount": float64(1)},
		"rows": []map[string]any{{"blockName": "A"}},
	}

	out := SnakeKeys(input).(map[string]any)

	data := out["data"].([]any)
	first := data[0].(map[string]any)
	assert.Contains(t, first, "cell_id")
	assert.Contains(t, first, "session_id")
	assert.Equal(t, "plainString", data[1], "scalar values are not renamed")

	assert.Contains(t, out["meta"].(map[string]any), "total_count")
	assert.Contains(t, out["rows"].([]any)[0].(map[string]any), "block_name")

	assert.Contains(t, input["meta"].(map[string]any), "totalCount", "input must not be mutated")
}

func TestCamelKeys_Scalar(t *testing.T) {
	assert.Equal(t, "some_value", CamelKeys("some_value"))
	assert.Equal(t, float64(3), CamelKeys(float64(3)))
	assert.Nil(t, CamelKeys(nil))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2022-08-23T07:07:45.000Z", time.Date(2022, 8, 23, 7, 7, 45, 0, time.UTC)},
		{"2022-08-23T07:07:45Z", time.Date(2022, 8, 23, 7, 7, 45, 0, time.UTC)},
		{"2022-08-23T10:07:45+03:00", time.Date(2022, 8, 23, 7, 7, 45, 0, time.UTC)},
		{"2022-08-23T07:07:45.123456", time.Date(2022, 8, 23, 7, 7, 45, 123456000, time.UTC)},
		{"2022-08-23 07:07:45", time.Date(2022, 8, 23, 7, 7, 45, 0, time.UTC)},
		{"2022-08-23", time.Date(2022, 8, 23, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "ParseTimestamp(%q) = %v, expected %v", tt.input, got, tt.expected)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "23.08.2022", "2022-13-01T00:00:00Z"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimestamp(input)
			assert.Error(t, err)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	ms := time.Date(2022, 8, 23, 7, 7, 45, 0, time.UTC)
	assert.Equal(t, "2022-08-23T07:07:45.000Z", FormatTimestamp(ms))

	fine := time.Date(2022, 8, 23, 7, 7, 45, 1500, time.UTC)
	assert.Equal(t, "2022-08-23T07:07:45.0000015Z", FormatTimestamp(fine))

	parsed, err := ParseTimestamp(FormatTimestamp(fine))
	require.NoError(t, err)
	assert.True(t, fine.Equal(parsed))
}

func TestRewriteKeys_Collisions(t *testing.T) {
	for i := 0; i < 20; i++ {
		snake := SnakeKeys(map[string]any{"cellId": float64(1), "cell_id": float64(2), "CellId": float64(3)}).(map[string]any)
		assert.Equal(t, map[string]any{"cell_id": float64(2)}, snake, "key already in snake_case wins")

		camel := CamelKeys(map[string]any{"session_id": "a", "sessionId": "b"}).(map[string]any)
		assert.Equal(t, map[string]any{"sessionId": "b"}, camel, "key already in camelCase wins")

		mixed := SnakeKeys(map[string]any{"cellId": float64(1), "CellId": float64(3)}).(map[string]any)
		assert.Equal(t, map[string]any{"cell_id": float64(3)}, mixed, "lexically smallest original key wins")
	}
}
