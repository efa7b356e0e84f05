package rlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input   string
		kind    Kind
		content string
		rest    string
	}{
		{"01", Byte, "01", ""},
		{"7f02", Byte, "7f", "02"},
		{"80", String, "", ""},
		{"8180", String, "80", ""},
		{"83646f6701", String, "646f67", "01"},
		{"c0", List, "", ""},
		{"c20102c0", List, "0102", "c0"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, content, rest, err := Split(unhex(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, k)
			assert.Equal(t, unhex(tt.content), content)
			assert.Equal(t, unhex(tt.rest), rest)
		})
	}
}

func TestSplitTyped(t *testing.T) {
	content, rest, err := SplitList(unhex("c2010280"))
	require.NoError(t, err)
	assert.Equal(t, unhex("0102"), content)
	assert.Equal(t, unhex("80"), rest)

	_, _, err = SplitList(unhex("80"))
	assert.ErrorIs(t, err, ErrExpectedList)

	content, _, err = SplitString(unhex("8180"))
	require.NoError(t, err)
	assert.Equal(t, unhex("80"), content)

	_, _, err = SplitString(unhex("c0"))
	assert.ErrorIs(t, err, ErrExpectedString)

	_, _, _, err = Split(nil)
	assert.Error(t, err)
}

func TestCountValues(t *testing.T) {
	n, err := CountValues(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = CountValues(unhex("0180c0c20102"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = CountValues(unhex("0183"))
	assert.ErrorIs(t, err, ErrValueTooLarge)
}
