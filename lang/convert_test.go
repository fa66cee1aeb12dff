package lang

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		want    float64
		wantErr bool
	}{
		{"float passthrough", 3.5, 3.5, false},
		{"true is one", true, 1, false},
		{"false is zero", false, 0, false},
		{"numeric string", "42", 42, false},
		{"nil errors", nil, 0, true},
		{"empty string errors", "", 0, true},
		{"non-numeric string errors", "abc", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toNumber(tc.in)
			if tc.wantErr {
				require.NotNil(t, err)

				return
			}

			require.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToBoolean(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"zero", 0.0, false},
		{"nonzero", 1.0, true},
		{"empty string", "", false},
		{"false word", "false", false},
		{"no word", "No", false},
		{"true word", "TRUE", true},
		{"arbitrary string", "hello", true},
		{"empty slice", []any{}, false},
		{"nonempty slice", []any{1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, toBoolean(tc.in))
		})
	}
}

func TestNumericEqualNaN(t *testing.T) {
	assert.False(t, numericEqual(math.NaN(), math.NaN()))
	assert.False(t, numericEqual(math.NaN(), 1))
	assert.True(t, numericEqual(1, 1))
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, valuesEqual(nil, nil))
	assert.False(t, valuesEqual(nil, 0.0))
	assert.False(t, valuesEqual("1", 1.0))
	assert.True(t, valuesEqual("a", "a"))
	assert.True(t, valuesEqual(1.0, 1.0))
	assert.False(t, valuesEqual(true, false))
	assert.False(t, valuesEqual(true, 1.0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", formatNumber(3.0))
	assert.Equal(t, "3.5", formatNumber(3.5))
}

func TestParseTimestamp(t *testing.T) {
	if _, ok := parseTimestamp(""); ok {
		t.Fatal("expected empty string to fail")
	}

	if _, ok := parseTimestamp("1700000000000"); !ok {
		t.Fatal("expected epoch-ms to parse")
	}

	if _, ok := parseTimestamp("2024-01-15T00:00:00Z"); !ok {
		t.Fatal("expected RFC3339 to parse")
	}

	if _, ok := parseTimestamp("2024-01-15"); !ok {
		t.Fatal("expected bare date to parse")
	}
}
