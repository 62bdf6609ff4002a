package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByValue(t *testing.T) {
	eci, err := ByValue(3)
	require.NoError(t, err)
	assert.Equal(t, ISO8859_1, eci)

	// Historical double assignments.
	eci, err = ByValue(0)
	require.NoError(t, err)
	assert.Equal(t, Cp437, eci)
	eci, err = ByValue(170)
	require.NoError(t, err)
	assert.Equal(t, ASCII, eci)

	// In range but unassigned.
	eci, err = ByValue(42)
	require.NoError(t, err)
	assert.Nil(t, eci)

	for _, v := range []int{-1, 900, 1000} {
		_, err = ByValue(v)
		assert.ErrorIs(t, err, ErrFormatECI, "value %d", v)
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, ShiftJIS, ByName("Shift_JIS"))
	assert.Equal(t, UTF8, ByName("UTF-8"))
	assert.Nil(t, ByName("KOI8-R"))
}

func TestDecode(t *testing.T) {
	// 0xE9 is e-acute in Latin-1 and Windows-1252.
	assert.Equal(t, "é", ISO8859_1.Decode([]byte{0xe9}))
	assert.Equal(t, "é", Cp1252.Decode([]byte{0xe9}))

	// Shift_JIS katakana "a".
	assert.Equal(t, "ア", ShiftJIS.Decode([]byte{0x83, 0x41}))

	// UTF-8 and ASCII pass bytes through.
	assert.Equal(t, "héllo", UTF8.Decode([]byte("héllo")))
	assert.Equal(t, "hello", ASCII.Decode([]byte("hello")))

	// UTF-16BE pairs.
	assert.Equal(t, "AB", UTF16BE.Decode([]byte{0x00, 0x41, 0x00, 0x42}))
}
