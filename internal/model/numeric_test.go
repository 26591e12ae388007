package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Numeric
	}{
		{"number", `125.5`, 125.5},
		{"quoted number", `"250"`, 250},
		{"quoted decimal", `"99.90"`, 99.9},
		{"comma decimal", `"12,5"`, 12.5},
		{"garbage", `"abc"`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Numeric
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &n))
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestNumericMarshalAsNumber(t *testing.T) {
	out, err := json.Marshal(Numeric(250))
	require.NoError(t, err)
	assert.Equal(t, "250", string(out))
}

func TestParseNumeric(t *testing.T) {
	assert.Equal(t, Numeric(12.5), ParseNumeric("12,5"))
	assert.Equal(t, Numeric(100), ParseNumeric(" 100 "))
	assert.Equal(t, Numeric(0), ParseNumeric("n/a"))
	assert.Equal(t, Numeric(0), ParseNumeric(""))
}
