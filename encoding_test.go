package jay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utf16Bytes expands ASCII text into UTF-16 code units.
func utf16Bytes(s string, littleEndian bool) []byte {
	var out []byte
	for i := 0; i < len(s); i++ {
		if littleEndian {
			out = append(out, s[i], 0x00)
		} else {
			out = append(out, 0x00, s[i])
		}
	}
	return out
}

// utf32Bytes expands ASCII text into UTF-32 code units.
func utf32Bytes(s string, littleEndian bool) []byte {
	var out []byte
	for i := 0; i < len(s); i++ {
		if littleEndian {
			out = append(out, s[i], 0x00, 0x00, 0x00)
		} else {
			out = append(out, 0x00, 0x00, 0x00, s[i])
		}
	}
	return out
}

func TestNormalizePassthrough(t *testing.T) {
	input := []byte(`{"a": [1, 2]}`)
	out, err := NormalizeUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestNormalizeStripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[1]`)...)
	out, err := NormalizeUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), out)
}

func TestNormalizeUTF16(t *testing.T) {
	t.Run("LE with BOM", func(t *testing.T) {
		input := append([]byte{0xFF, 0xFE}, utf16Bytes(`{"a":1}`, true)...)
		out, err := NormalizeUTF8(input)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(out))
	})
	t.Run("BE with BOM", func(t *testing.T) {
		input := append([]byte{0xFE, 0xFF}, utf16Bytes(`[true]`, false)...)
		out, err := NormalizeUTF8(input)
		require.NoError(t, err)
		assert.Equal(t, `[true]`, string(out))
	})
	t.Run("LE without BOM", func(t *testing.T) {
		out, err := NormalizeUTF8(utf16Bytes(`[1,2]`, true))
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(out))
	})
	t.Run("BE without BOM", func(t *testing.T) {
		out, err := NormalizeUTF8(utf16Bytes(`null`, false))
		require.NoError(t, err)
		assert.Equal(t, `null`, string(out))
	})
}

func TestNormalizeUTF32(t *testing.T) {
	t.Run("LE with BOM", func(t *testing.T) {
		input := append([]byte{0xFF, 0xFE, 0x00, 0x00}, utf32Bytes(`{}`, true)...)
		out, err := NormalizeUTF8(input)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(out))
	})
	t.Run("BE with BOM", func(t *testing.T) {
		input := append([]byte{0x00, 0x00, 0xFE, 0xFF}, utf32Bytes(`42`, false)...)
		out, err := NormalizeUTF8(input)
		require.NoError(t, err)
		assert.Equal(t, `42`, string(out))
	})
	t.Run("LE without BOM", func(t *testing.T) {
		out, err := NormalizeUTF8(utf32Bytes(`"x"`, true))
		require.NoError(t, err)
		assert.Equal(t, `"x"`, string(out))
	})
	t.Run("BE without BOM", func(t *testing.T) {
		out, err := NormalizeUTF8(utf32Bytes(`[[]]`, false))
		require.NoError(t, err)
		assert.Equal(t, `[[]]`, string(out))
	})
}

func TestDecodeAny(t *testing.T) {
	input := append([]byte{0xFF, 0xFE}, utf16Bytes(`{"n": 42}`, true)...)
	v, err := DecodeAny(input)
	require.NoError(t, err)
	member, ok := v.Get("n")
	require.True(t, ok)
	assert.Equal(t, int64(42), member.Int())
}

func TestNormalizeShortBuffers(t *testing.T) {
	// Too short for any mark or pattern: passes through.
	for _, input := range [][]byte{{}, {'1'}, {'4', '2'}} {
		out, err := NormalizeUTF8(input)
		require.NoError(t, err)
		assert.Equal(t, input, out)
	}
}
