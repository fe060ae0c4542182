// Package jay implements encoding and decoding of JSON documents.
//
// JAY is Just Another Yet-another-JSON-codec: it converts between a byte
// buffer of JSON text and a dynamic Value tree, and back, with precise
// line/column diagnostics and a configurable layout on output.
//
// # Decoding Pipeline
//
// The decoder operates in two phases over a UTF-8 buffer:
//
//  1. Scanner: Walks the raw bytes, producing tokens that reference spans
//     of the input. Literal values are materialized lazily.
//
//  2. Parser: Recursive descent over the token stream, building the Value
//     tree and enforcing grammar and the nesting-depth limit.
//
// Encoding is the reverse walk: the printer visits the Value tree and emits
// bytes through a fixed-size buffer flushed to the sink.
//
// Every call is synchronous and owns its own cursor and buffer state, so
// concurrent calls are safe as long as each uses its own input and output
// buffers. A Config is an immutable value and freely shareable. The only
// bound on runaway work is the maximum nesting depth; callers needing a
// time or size budget must bound the input before decoding.
package jay

import (
	"bytes"
	"io"
)

// DefaultMaxDepth is the nesting-depth limit used when a Config leaves
// MaxDepth at zero.
const DefaultMaxDepth = 512

// Config bundles the options of both directions. The zero Config decodes
// with the default depth limit and encodes compactly.
type Config struct {
	// MaxDepth bounds container nesting for both decoding and encoding.
	// Zero means DefaultMaxDepth. Empty containers do not nest.
	MaxDepth int

	// Indent enables indented layout when positive: that many spaces per
	// nesting level, a newline after each open container, and a trailing
	// newline after the whole document. Zero or negative keeps the
	// compact layout.
	Indent int

	// Spatial inserts a single space after ":" and "," when indentation
	// is off: compact but readable.
	Spatial bool

	// ASCIIOnly escapes every non-ASCII scalar in strings as \uXXXX,
	// emitting surrogate pairs for scalars above U+FFFF.
	ASCIIOnly bool

	// AllowNonFinite permits NaN and the infinities to print as the bare
	// non-standard keywords nan, inf, and -inf. Off by default: standard
	// JSON has no such literals, and printing them is an error.
	AllowNonFinite bool
}

// DefaultConfig returns the default options: depth limit 512, compact
// layout, raw UTF-8 output, non-finite reals rejected.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// normalized resolves defaulted fields.
func (c Config) normalized() Config {
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	return c
}

// pretty reports whether indented layout is on.
func (c Config) pretty() bool {
	return c.Indent > 0
}

// Decode parses a UTF-8 buffer holding exactly one JSON value into a Value
// tree, using the config's depth limit. The error, when non-nil, is a
// *ParseError carrying the kind and 1-based position of the failure.
func (c Config) Decode(data []byte) (Value, error) {
	c = c.normalized()
	value, err := parseDocument(data, c.MaxDepth)
	if err != nil {
		return Value{}, err
	}
	return value, nil
}

// Encode serializes a value into one owned buffer, applying the config's
// layout. The error, when non-nil, is a *PrintError.
func (c Config) Encode(v Value) ([]byte, error) {
	var out bytes.Buffer
	if err := c.EncodeTo(&out, v); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodeTo serializes a value incrementally to a caller-supplied sink. The
// sink receives output in bounded chunks, so the whole document never needs
// to be in memory at once.
func (c Config) EncodeTo(w io.Writer, v Value) error {
	return newPrinter(w, c).printDocument(v)
}

// Decode parses a document with the default config.
func Decode(data []byte) (Value, error) {
	return DefaultConfig().Decode(data)
}

// Encode serializes a value compactly with the default config.
func Encode(v Value) ([]byte, error) {
	return DefaultConfig().Encode(v)
}
