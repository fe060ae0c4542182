package jay

import "fmt"

// ============================================================================
// Error Reporting
// ============================================================================
//
// Decode errors carry a kind and the 1-based line and column of the
// offending token. Encode errors carry a kind and a short detail string (the
// offending numeric keyword or a type description) - a position would be
// meaningless when serializing a value rather than text. Both directions are
// fail-fast: the first error aborts the whole call and there is no partial
// result.

// ParseErrKind classifies decode failures.
type ParseErrKind int

const (
	// ErrUnexpectedToken: a byte that cannot start any token, or a token
	// that cannot appear where it did (punctuation in value position).
	ErrUnexpectedToken ParseErrKind = iota
	// ErrUnknownKeyword: a run of letters that is not true, false, or null.
	ErrUnknownKeyword
	// ErrUnterminatedString: input ended inside a string literal.
	ErrUnterminatedString
	// ErrInvalidString: a bad escape, bad hex digit, unpaired surrogate,
	// control byte, or invalid UTF-8 inside a string literal.
	ErrInvalidString
	// ErrInvalidNumber: a malformed number literal (leading zero, bare
	// minus, dot or exponent with no digits).
	ErrInvalidNumber
	// ErrExpectedString: object key position held something other than a
	// string literal.
	ErrExpectedString
	// ErrExpectedColon: missing ":" after an object key.
	ErrExpectedColon
	// ErrExpectedArrayClose: missing "," or "]" after an array element.
	ErrExpectedArrayClose
	// ErrExpectedObjectClose: missing "," or "}" after an object member.
	ErrExpectedObjectClose
	// ErrExpectedValue: input ended where a value was required.
	ErrExpectedValue
	// ErrExpectedEOF: trailing content after the document's single value.
	ErrExpectedEOF
	// ErrMaxDepth: nesting exceeded the configured maximum depth.
	ErrMaxDepth
)

var parseErrMessages = map[ParseErrKind]string{
	ErrUnexpectedToken:     "unexpected token",
	ErrUnknownKeyword:      "unknown keyword",
	ErrUnterminatedString:  "unterminated string",
	ErrInvalidString:       "invalid string",
	ErrInvalidNumber:       "invalid number literal",
	ErrExpectedString:      "expected string",
	ErrExpectedColon:       "expected colon",
	ErrExpectedArrayClose:  "expected comma or closing bracket",
	ErrExpectedObjectClose: "expected comma or closing brace",
	ErrExpectedValue:       "expected value",
	ErrExpectedEOF:         "expected end of input",
	ErrMaxDepth:            "max depth exceeded",
}

// String returns the fixed message for the kind.
func (k ParseErrKind) String() string {
	if msg, ok := parseErrMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("parse error %d", int(k))
}

// ParseError describes a decode failure at a position in the input.
type ParseError struct {
	Kind   ParseErrKind
	Line   int // 1-based
	Column int // 1-based
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Kind, e.Line, e.Column)
}

// PrintErrKind classifies encode failures.
type PrintErrKind int

const (
	// PrintErrNonFinite: a real with no JSON representation (NaN, ±Inf).
	PrintErrNonFinite PrintErrKind = iota
	// PrintErrUnsupportedValue: a value outside the closed variant set.
	PrintErrUnsupportedValue
	// PrintErrMaxDepth: nesting exceeded the configured maximum depth.
	PrintErrMaxDepth
)

// PrintError describes an encode failure. Detail names the offending
// numeric keyword ("nan", "inf", "-inf") or describes the offending type.
type PrintError struct {
	Kind   PrintErrKind
	Detail string
}

func (e *PrintError) Error() string {
	switch e.Kind {
	case PrintErrNonFinite:
		return fmt.Sprintf("invalid numeric value %q", e.Detail)
	case PrintErrUnsupportedValue:
		return fmt.Sprintf("unexpected value of type %s", e.Detail)
	case PrintErrMaxDepth:
		return "max depth exceeded"
	default:
		return fmt.Sprintf("print error %d", int(e.Kind))
	}
}
