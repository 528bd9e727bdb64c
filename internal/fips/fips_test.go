package fips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "06", NormalizeState("6"))
	assert.Equal(t, "06", NormalizeState("06"))
	assert.Equal(t, "55", NormalizeState(" 55 "))
	assert.Equal(t, "", NormalizeState(""))
}

func TestNormalizeCounty(t *testing.T) {
	assert.Equal(t, "001", NormalizeCounty("1"))
	assert.Equal(t, "025", NormalizeCounty("25"))
	assert.Equal(t, "025", NormalizeCounty("025"))
	assert.Equal(t, "", NormalizeCounty(""))
}

func TestCombine(t *testing.T) {
	assert.Equal(t, "06037", Combine("6", "37"))
	assert.Equal(t, "55025", Combine("55", "025"))
	assert.Equal(t, "", Combine("", "037"))
	assert.Equal(t, "", Combine("55", ""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "06", Format(6, 2))
	assert.Equal(t, "06037", Format(6037, 5))
	assert.Equal(t, "01001", Format(1001, 5))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "01001", Normalize("1001"))
	assert.Equal(t, "55025", Normalize("55025"))
	assert.Equal(t, "", Normalize("  "))
	assert.Equal(t, "abcd", Normalize("abcd"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("55025"))
	assert.False(t, Valid("5502"))
	assert.False(t, Valid("5502a"))
	assert.False(t, Valid(""))
}

func TestValidState(t *testing.T) {
	assert.True(t, ValidState("55"))
	assert.True(t, ValidState(NormalizeState("6")))
	assert.False(t, ValidState("555"))
	assert.False(t, ValidState("W1"))
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, "55", StateOf("55025"))
	assert.Equal(t, "", StateOf("5"))
}

func TestIsNYC(t *testing.T) {
	assert.True(t, IsNYC("New York City", "New York"))
	assert.False(t, IsNYC("New York", "New York"))
	assert.False(t, IsNYC("New York City", "New Jersey"))
	assert.Len(t, NYCBoroughs, 5)
}
