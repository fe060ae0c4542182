package jay

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// ============================================================================
// Encoding Pre-Pass
// ============================================================================
//
// The scanner only understands UTF-8. This pre-pass inspects the first few
// bytes of a buffer for UTF-16/UTF-32 byte-order marks or the characteristic
// null-byte patterns of BOM-less encodings, and transcodes the whole buffer
// to UTF-8 when it finds one. Transcoding is a reasonably expensive,
// rarely-hit path; plain UTF-8 input passes through unchanged apart from
// stripping a UTF-8 BOM.

// sourceEncoding identifies what the sniffer saw.
type sourceEncoding int

const (
	encUTF8 sourceEncoding = iota
	encUTF16LE
	encUTF16BE
	encUTF32LE
	encUTF32BE
)

// NormalizeUTF8 returns the buffer transcoded to UTF-8 with any byte-order
// mark removed. Buffers already in UTF-8 are returned as-is (minus the BOM,
// when present).
func NormalizeUTF8(data []byte) ([]byte, error) {
	enc, skip := sniffEncoding(data)
	data = data[skip:]
	switch enc {
	case encUTF16LE:
		return transcode(data, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "UTF-16LE")
	case encUTF16BE:
		return transcode(data, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "UTF-16BE")
	case encUTF32LE:
		return transcode(data, utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), "UTF-32LE")
	case encUTF32BE:
		return transcode(data, utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), "UTF-32BE")
	default:
		return data, nil
	}
}

// DecodeAny normalizes the buffer's encoding and decodes it with the
// default config. It is a convenience for callers whose input may arrive in
// any Unicode encoding.
func DecodeAny(data []byte) (Value, error) {
	normalized, err := NormalizeUTF8(data)
	if err != nil {
		return Value{}, err
	}
	return Decode(normalized)
}

// sniffEncoding inspects the first 2-4 bytes and returns the detected
// encoding plus the number of BOM bytes to strip. BOMs are checked longest
// first: a UTF-32LE BOM begins with a UTF-16LE BOM.
func sniffEncoding(data []byte) (sourceEncoding, int) {
	switch {
	case len(data) >= 4 && data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00:
		return encUTF32LE, 4
	case len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF:
		return encUTF32BE, 4
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return encUTF16LE, 2
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return encUTF16BE, 2
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return encUTF8, 3
	}
	// BOM-less detection: JSON text starts with an ASCII character, so the
	// position of null bytes in the first machine word gives the encoding
	// away.
	switch {
	case len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x00 && data[3] != 0x00:
		return encUTF32BE, 0
	case len(data) >= 4 && data[0] != 0x00 && data[1] == 0x00 && data[2] == 0x00 && data[3] == 0x00:
		return encUTF32LE, 0
	case len(data) >= 2 && data[0] == 0x00 && data[1] != 0x00:
		return encUTF16BE, 0
	case len(data) >= 2 && data[0] != 0x00 && data[1] == 0x00:
		return encUTF16LE, 0
	}
	return encUTF8, 0
}

// transcode converts the whole buffer to UTF-8 with the given encoding.
func transcode(data []byte, enc encoding.Encoding, name string) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, errors.Wrapf(err, "transcoding %s input", name)
	}
	return out, nil
}
