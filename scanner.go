package jay

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ============================================================================
// Phase 1: Scanner
// ============================================================================
//
// The scanner walks the raw input bytes and produces tokens on demand. A
// token is a kind plus a byte span into the input; no literal is copied or
// decoded until the parser asks for its value. Line and column numbers are
// recovered by re-walking the buffer from the start, which only happens on
// the error path.

// tokenKind identifies the kind of a scanned token.
type tokenKind int

const (
	tokObjectOpen tokenKind = iota // {
	tokObjectClose                 // }
	tokArrayOpen                   // [
	tokArrayClose                  // ]
	tokColon                       // :
	tokComma                       // ,
	tokString                      // "..." including the quotes
	tokInteger                     // number with no fraction or exponent
	tokReal                        // number with a fraction or exponent
	tokTrue                        // true
	tokFalse                       // false
	tokNull                        // null
	tokEOF                         // end of input
)

// token is a lexical unit referencing a byte range of the input. String
// tokens span the quotes; the literal value is materialized separately.
type token struct {
	kind  tokenKind
	start int // offset of the first byte
	end   int // offset past the last byte
}

// scanner is the cursor state of one decode operation.
type scanner struct {
	data []byte
	pos  int
}

// errorAt builds a ParseError with the 1-based line and column of the given
// byte offset, found by re-walking the buffer from the start.
func (s *scanner) errorAt(kind ParseErrKind, offset int) *ParseError {
	line, column := 1, 1
	for i := 0; i < offset && i < len(s.data); i++ {
		if s.data[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return &ParseError{Kind: kind, Line: line, Column: column}
}

// next scans and returns the next token, advancing the cursor past it.
func (s *scanner) next() (token, *ParseError) {
	s.skipWhitespace()
	if s.pos >= len(s.data) {
		return token{kind: tokEOF, start: s.pos, end: s.pos}, nil
	}

	start := s.pos
	c := s.data[s.pos]
	switch {
	case c == '{':
		s.pos++
		return token{kind: tokObjectOpen, start: start, end: s.pos}, nil
	case c == '}':
		s.pos++
		return token{kind: tokObjectClose, start: start, end: s.pos}, nil
	case c == '[':
		s.pos++
		return token{kind: tokArrayOpen, start: start, end: s.pos}, nil
	case c == ']':
		s.pos++
		return token{kind: tokArrayClose, start: start, end: s.pos}, nil
	case c == ':':
		s.pos++
		return token{kind: tokColon, start: start, end: s.pos}, nil
	case c == ',':
		s.pos++
		return token{kind: tokComma, start: start, end: s.pos}, nil
	case c == '"':
		return s.scanString()
	case c == '-' || isDigit(c):
		return s.scanNumber()
	case isLetter(c):
		return s.scanKeyword()
	default:
		return token{}, s.errorAt(ErrUnexpectedToken, start)
	}
}

// skipWhitespace advances past ASCII whitespace between tokens.
func (s *scanner) skipWhitespace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\n', '\r', '\t':
			s.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ============================================================================
// String Tokens
// ============================================================================

// scanString scans a string literal, including both quotes. A quote preceded
// by an odd run of backslashes is escaped, not a terminator. Reaching the
// end of input first is an error at the opening quote.
func (s *scanner) scanString() (token, *ParseError) {
	start := s.pos
	s.pos++ // opening quote
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case '\\':
			// Consume the backslash and the byte it escapes, so an
			// escaped quote never terminates the scan.
			s.pos++
			if s.pos < len(s.data) {
				s.pos++
			}
		case '"':
			s.pos++
			return token{kind: tokString, start: start, end: s.pos}, nil
		default:
			s.pos++
		}
	}
	return token{}, s.errorAt(ErrUnterminatedString, start)
}

// materializeString decodes the literal value of a string token, switching
// between runs of ordinary UTF-8 bytes and runs of backslash escapes. Any
// malformed escape, bad hex digit, unpaired surrogate, control byte, or
// invalid UTF-8 sequence fails the whole string - there is no lossy
// substitution.
func (s *scanner) materializeString(t token) (string, *ParseError) {
	body := s.data[t.start+1 : t.end-1]
	// Fast path: no escapes and pure printable ASCII.
	plain := true
	for _, c := range body {
		if c == '\\' || c < 0x20 || c >= utf8.RuneSelf {
			plain = false
			break
		}
	}
	if plain {
		return string(body), nil
	}

	out := make([]byte, 0, len(body))
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == '\\':
			decoded, next, err := s.decodeEscape(body, i, t.start+1)
			if err != nil {
				return "", err
			}
			out = append(out, decoded...)
			i = next
		case c < 0x20:
			return "", s.errorAt(ErrInvalidString, t.start+1+i)
		case c < utf8.RuneSelf:
			out = append(out, c)
			i++
		default:
			r, size := utf8.DecodeRune(body[i:])
			if r == utf8.RuneError && size == 1 {
				return "", s.errorAt(ErrInvalidString, t.start+1+i)
			}
			out = append(out, body[i:i+size]...)
			i += size
		}
	}
	return string(out), nil
}

// decodeEscape decodes one backslash escape starting at body[i], including
// surrogate-pair assembly across two \uXXXX escapes. base is the offset of
// body[0] in the input buffer, for error positions. Returns the decoded
// bytes and the index past the escape.
func (s *scanner) decodeEscape(body []byte, i, base int) ([]byte, int, *ParseError) {
	if i+1 >= len(body) {
		return nil, 0, s.errorAt(ErrInvalidString, base+i)
	}
	switch body[i+1] {
	case '"':
		return []byte{'"'}, i + 2, nil
	case '\\':
		return []byte{'\\'}, i + 2, nil
	case '/':
		return []byte{'/'}, i + 2, nil
	case 'b':
		return []byte{'\b'}, i + 2, nil
	case 'f':
		return []byte{'\f'}, i + 2, nil
	case 'n':
		return []byte{'\n'}, i + 2, nil
	case 'r':
		return []byte{'\r'}, i + 2, nil
	case 't':
		return []byte{'\t'}, i + 2, nil
	case 'u':
		return s.decodeUnicodeEscape(body, i, base)
	default:
		return nil, 0, s.errorAt(ErrInvalidString, base+i)
	}
}

// decodeUnicodeEscape decodes a \uXXXX escape. A high surrogate must be
// followed immediately by a low surrogate escape; the pair combines into one
// scalar. A lone or misordered surrogate is an error.
func (s *scanner) decodeUnicodeEscape(body []byte, i, base int) ([]byte, int, *ParseError) {
	unit, ok := hex4(body, i+2)
	if !ok {
		return nil, 0, s.errorAt(ErrInvalidString, base+i)
	}
	next := i + 6
	r := rune(unit)
	if utf16.IsSurrogate(r) {
		// Only a high surrogate can begin a pair.
		if r >= 0xDC00 {
			return nil, 0, s.errorAt(ErrInvalidString, base+i)
		}
		if next+1 >= len(body) || body[next] != '\\' || body[next+1] != 'u' {
			return nil, 0, s.errorAt(ErrInvalidString, base+i)
		}
		unit2, ok := hex4(body, next+2)
		if !ok {
			return nil, 0, s.errorAt(ErrInvalidString, base+next)
		}
		combined := utf16.DecodeRune(r, rune(unit2))
		if combined == utf8.RuneError {
			return nil, 0, s.errorAt(ErrInvalidString, base+i)
		}
		r = combined
		next += 6
	}
	return utf8.AppendRune(nil, r), next, nil
}

// hex4 reads four hex digits at body[i:] as a UTF-16 code unit.
func hex4(body []byte, i int) (uint16, bool) {
	if i+4 > len(body) {
		return 0, false
	}
	var unit uint16
	for j := i; j < i+4; j++ {
		c := body[j]
		var digit uint16
		switch {
		case c >= '0' && c <= '9':
			digit = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			digit = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = uint16(c-'A') + 10
		default:
			return 0, false
		}
		unit = unit<<4 | digit
	}
	return unit, true
}

// ============================================================================
// Number Tokens
// ============================================================================

// scanNumber scans a number literal:
//
//	-? (0 | [1-9][0-9]*) ('.' [0-9]+)? ([eE] [+-]? [0-9]+)?
//
// A leading zero followed by more digits, a bare minus, a dot with no
// following digit, and an exponent marker with no following digit are each
// rejected here at the token level. The token kind records whether a
// fraction or exponent was present, because integers and reals materialize
// and round-trip differently.
func (s *scanner) scanNumber() (token, *ParseError) {
	start := s.pos
	kind := tokInteger

	if s.data[s.pos] == '-' {
		s.pos++
	}
	switch {
	case s.pos >= len(s.data) || !isDigit(s.data[s.pos]):
		return token{}, s.errorAt(ErrInvalidNumber, start)
	case s.data[s.pos] == '0':
		s.pos++
		if s.pos < len(s.data) && isDigit(s.data[s.pos]) {
			return token{}, s.errorAt(ErrInvalidNumber, start)
		}
	default:
		for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
			s.pos++
		}
	}

	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		kind = tokReal
		s.pos++
		if s.pos >= len(s.data) || !isDigit(s.data[s.pos]) {
			return token{}, s.errorAt(ErrInvalidNumber, start)
		}
		for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
			s.pos++
		}
	}

	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		kind = tokReal
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		if s.pos >= len(s.data) || !isDigit(s.data[s.pos]) {
			return token{}, s.errorAt(ErrInvalidNumber, start)
		}
		for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
			s.pos++
		}
	}

	return token{kind: kind, start: start, end: s.pos}, nil
}

// materializeInteger parses an integer token. An out-of-range literal
// saturates to the int64 minimum or maximum rather than failing; strconv
// already returns the clamped value alongside its range error.
func (s *scanner) materializeInteger(t token) int64 {
	n, _ := strconv.ParseInt(string(s.data[t.start:t.end]), 10, 64)
	return n
}

// materializeReal parses a real token. An overflowing exponent saturates to
// ±Inf and an underflowing one to zero, again via strconv's range behavior.
func (s *scanner) materializeReal(t token) float64 {
	f, _ := strconv.ParseFloat(string(s.data[t.start:t.end]), 64)
	return f
}

// ============================================================================
// Keyword Tokens
// ============================================================================

// scanKeyword scans a run of letters and matches it against the three JSON
// keywords. Any other run is an unknown keyword, not silently passed over.
func (s *scanner) scanKeyword() (token, *ParseError) {
	start := s.pos
	for s.pos < len(s.data) && isLetter(s.data[s.pos]) {
		s.pos++
	}
	switch string(s.data[start:s.pos]) {
	case "true":
		return token{kind: tokTrue, start: start, end: s.pos}, nil
	case "false":
		return token{kind: tokFalse, start: start, end: s.pos}, nil
	case "null":
		return token{kind: tokNull, start: start, end: s.pos}, nil
	default:
		return token{}, s.errorAt(ErrUnknownKeyword, start)
	}
}
