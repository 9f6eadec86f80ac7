package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"1990-01-15":       "1990-01-15",
		"01/15/1990":       "1990-01-15",
		"1990/01/15":       "1990-01-15",
		"January 15, 1990": "1990-01-15",
		"Jan 15, 1990":     "1990-01-15",
		"15 January 1990":  "1990-01-15",
		"  1990-01-15  ":   "1990-01-15",
		"not a date":       "",
		"":                 "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeDate(input), "input %q", input)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "John Doe", NormalizeName("  john   doe "))
	assert.Equal(t, "Jane Smith", NormalizeName("JANE SMITH"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "123 Main Street", NormalizeAddress("123 Main St"))
	assert.Equal(t, "999 Oak Avenue", NormalizeAddress("999 Oak Ave."))
	assert.Equal(t, "5 Elm Boulevard Apartment 2", NormalizeAddress("5  Elm Blvd Apt 2"))
	assert.Equal(t, "", NormalizeAddress(""))
}

func TestNormalizeIDNumber(t *testing.T) {
	assert.Equal(t, "DL12345678", NormalizeIDNumber("dl-1234 5678"))
	assert.Equal(t, "AB123", NormalizeIDNumber("a.b.123"))
	assert.Equal(t, "", NormalizeIDNumber("---"))
}
