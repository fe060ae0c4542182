package jay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string) []token {
	t.Helper()
	s := &scanner{data: []byte(input)}
	var tokens []token
	for {
		tok, err := s.next()
		require.Nil(t, err, "scanning %q", input)
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens
		}
	}
}

func TestScannerTokenKinds(t *testing.T) {
	tokens := scanAll(t, ` {"a": [1, -2.5, 1e3, true, false, null]} `)
	kinds := make([]tokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.kind
	}
	assert.Equal(t, []tokenKind{
		tokObjectOpen, tokString, tokColon,
		tokArrayOpen,
		tokInteger, tokComma,
		tokReal, tokComma,
		tokReal, tokComma,
		tokTrue, tokComma,
		tokFalse, tokComma,
		tokNull,
		tokArrayClose, tokObjectClose,
		tokEOF,
	}, kinds)
}

func TestScannerTokenSpans(t *testing.T) {
	tokens := scanAll(t, `  "ab" 12`)
	require.Len(t, tokens, 3)
	assert.Equal(t, `"ab"`, `  "ab" 12`[tokens[0].start:tokens[0].end])
	assert.Equal(t, `12`, `  "ab" 12`[tokens[1].start:tokens[1].end])
}

func TestScannerNumberSubKinds(t *testing.T) {
	cases := map[string]tokenKind{
		"0":       tokInteger,
		"-7":      tokInteger,
		"42":      tokInteger,
		"0.5":     tokReal,
		"-42.5":   tokReal,
		"1e3":     tokReal,
		"1E3":     tokReal,
		"2e+10":   tokReal,
		"2e-10":   tokReal,
		"3.25e-2": tokReal,
	}
	for input, kind := range cases {
		t.Run(input, func(t *testing.T) {
			tokens := scanAll(t, input)
			require.Len(t, tokens, 2)
			assert.Equal(t, kind, tokens[0].kind)
		})
	}
}

func TestScannerRejectsMalformedNumbers(t *testing.T) {
	cases := []string{"01", "-", "-x", "1.", ".5", "1.e3", "1e", "1e+", "-01"}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			s := &scanner{data: []byte(input)}
			var err *ParseError
			for err == nil {
				var tok token
				tok, err = s.next()
				if err == nil && tok.kind == tokEOF {
					t.Fatalf("scanned %q without error", input)
				}
			}
			// ".5" fails as an unexpected leading dot rather than a
			// number token.
			if input == ".5" {
				assert.Equal(t, ErrUnexpectedToken, err.Kind)
			} else {
				assert.Equal(t, ErrInvalidNumber, err.Kind)
			}
		})
	}
}

func TestScannerKeywords(t *testing.T) {
	for _, input := range []string{"tru", "truth", "nul", "nullx", "TRUE", "falsely"} {
		t.Run(input, func(t *testing.T) {
			s := &scanner{data: []byte(input)}
			_, err := s.next()
			require.NotNil(t, err)
			assert.Equal(t, ErrUnknownKeyword, err.Kind)
		})
	}
}

func TestScannerUnexpectedByte(t *testing.T) {
	for _, input := range []string{"+12", "*", "'a'", ";"} {
		t.Run(input, func(t *testing.T) {
			s := &scanner{data: []byte(input)}
			_, err := s.next()
			require.NotNil(t, err)
			assert.Equal(t, ErrUnexpectedToken, err.Kind)
			assert.Equal(t, 1, err.Line)
			assert.Equal(t, 1, err.Column)
		})
	}
}

func TestScannerUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, `"ab\"`, `"ab\\\"`, `"`} {
		t.Run(input, func(t *testing.T) {
			s := &scanner{data: []byte(input)}
			_, err := s.next()
			require.NotNil(t, err)
			assert.Equal(t, ErrUnterminatedString, err.Kind)
		})
	}
}

func TestScannerEscapedQuoteDoesNotTerminate(t *testing.T) {
	// An odd run of backslashes escapes the quote; an even run does not.
	tokens := scanAll(t, `"a\\" 1`)
	require.Len(t, tokens, 3)
	assert.Equal(t, tokString, tokens[0].kind)
	assert.Equal(t, tokInteger, tokens[1].kind)
}

func TestMaterializeString(t *testing.T) {
	cases := map[string]string{
		`""`:                    "",
		`"abc"`:                 "abc",
		`"a\nb"`:                "a\nb",
		`"\"\\\/\b\f\n\r\t"`:    "\"\\/\b\f\n\r\t",
		`"\u0041"`:              "A",
		`"\u2728"`:              "\u2728",
		`"\uD834\uDD1E"`:        "\U0001D11E",
		`"\ud834\udd1e"`:        "\U0001D11E",
		`"h\u00e9llo"`:          "h\u00e9llo",
		"\"snow \u2603 man\"":   "snow \u2603 man",
		`"\u0000"`:              "\x00",
		"\"caf\u00e9 \\u00e9\"": "caf\u00e9 \u00e9",
	}
	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			s := &scanner{data: []byte(input)}
			tok, err := s.next()
			require.Nil(t, err)
			require.Equal(t, tokString, tok.kind)
			got, err := s.materializeString(tok)
			require.Nil(t, err)
			assert.Equal(t, expected, got)
		})
	}
}

func TestMaterializeStringErrors(t *testing.T) {
	cases := [][]byte{
		[]byte(`"\q"`),            // unknown escape
		[]byte(`"\u12G4"`),        // bad hex digit
		[]byte(`"\u123"`),         // truncated hex run
		[]byte(`"\uD834"`),        // unpaired high surrogate
		[]byte(`"\uD834\n"`),      // high surrogate without \u follower
		[]byte(`"\uD834A"`),  // high surrogate with non-surrogate
		[]byte(`"\uDD1E\uD834"`),  // surrogates in the wrong order
		[]byte(`"\uDC00"`),        // lone low surrogate
		{'"', 0x01, '"'},          // raw control byte
		{'"', '\t', '"'},          // raw tab
		{'"', 0xFF, '"'},          // invalid UTF-8 byte
		{'"', 0xC3, '"'},          // truncated UTF-8 sequence
	}
	for _, input := range cases {
		t.Run(string(input), func(t *testing.T) {
			s := &scanner{data: input}
			tok, err := s.next()
			require.Nil(t, err)
			_, err = s.materializeString(tok)
			require.NotNil(t, err)
			assert.Equal(t, ErrInvalidString, err.Kind)
		})
	}
}

func TestErrorPositions(t *testing.T) {
	s := &scanner{data: []byte("{\n  \"a\": x\n}")}
	err := s.errorAt(ErrUnknownKeyword, 9)
	assert.Equal(t, 2, err.Line)
	assert.Equal(t, 8, err.Column)

	s = &scanner{data: []byte("abc")}
	err = s.errorAt(ErrUnexpectedToken, 0)
	assert.Equal(t, 1, err.Line)
	assert.Equal(t, 1, err.Column)
}
