package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchingAllSearchParams(t *testing.T) {
	var bret Record
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &bret))

	tests := []struct {
		name   string
		params SearchParams
		want   bool
	}{
		{
			name:   "matching id and username",
			params: SearchParams{"id": 1, "username": "Bret"},
			want:   true,
		},
		{
			name:   "wrong id",
			params: SearchParams{"id": 2, "username": "Bret"},
			want:   false,
		},
		{
			name:   "key missing from record",
			params: SearchParams{"id": 1, "username": "Bret", "phoneNumber": "1234566"},
			want:   false,
		},
		{
			name:   "extra field",
			params: SearchParams{"phone": "1-770-736-8031 x56442"},
			want:   true,
		},
		{
			name:   "nested extra field",
			params: SearchParams{"address": map[string]interface{}{"city": "Gwenborough", "zipcode": "92998-3874"}},
			want:   true,
		},
		{
			name:   "string does not equal number",
			params: SearchParams{"id": "1"},
			want:   false,
		},
		{
			name:   "float id",
			params: SearchParams{"id": 1.0},
			want:   true,
		},
		{
			name:   "null is a value, not a wildcard",
			params: SearchParams{"email": nil},
			want:   false,
		},
		{
			name:   "case sensitive",
			params: SearchParams{"username": "bret"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMatchingAllSearchParams(bret, tt.params))
		})
	}
}

func TestIsMatchingAllSearchParams_OwnFields(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "username": "Bret", "email": "Sincere@april.biz", "website": "hildegard.org"},
		{"id": 2, "username": "Antonette", "email": "Shanna@melissa.tv", "active": true},
		{"id": 3, "username": "Samantha"}
	]`), &s))

	for _, r := range s {
		params := SearchParams{}
		for _, key := range []string{"id", "username", "email", "website", "active"} {
			if v, ok := r.Field(key); ok {
				params[key] = v
				assert.True(t, IsMatchingAllSearchParams(r, params), "record %d should match its own %v", r.ID, params)
			}
		}
	}
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b interface{}
		want bool
	}{
		{"int and float64", 1, float64(1), true},
		{"int64 and int", int64(5), 5, true},
		{"json number", json.Number("3"), 3, true},
		{"different numbers", 1, 2, false},
		{"number and string", 1, "1", false},
		{"string and number", "1", 1, false},
		{"strings", "a", "a", true},
		{"bools", true, true, true},
		{"bool and string", true, "true", false},
		{"nil values", nil, nil, true},
		{"large int64s differ", int64(9007199254740993), int64(9007199254740992), false},
		{"large int64 and uint64", int64(9007199254740993), uint64(9007199254740993), true},
		{"negative int and uint", -1, uint(1), false},
		{"large int64 and rounded float", int64(9007199254740993), float64(9007199254740992), false},
		{"fractional float and int", 1.5, 1, false},
		{"floats", 1.5, float32(1.5), true},
		{"large json number", json.Number("9007199254740993"), int64(9007199254740993), true},
		{"exponent json number", json.Number("1e3"), 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValuesEqual(tt.a, tt.b))
		})
	}
}
