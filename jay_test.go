package jay

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripDocs = []string{
	`null`,
	`true`,
	`false`,
	`0`,
	`-7`,
	`42`,
	`-42.5`,
	`1e3`,
	`3.141592653589793`,
	`""`,
	`"hello"`,
	`"tab\tnewline\nquote\" backslash\\"`,
	`"✨ 𝄞"`,
	`[]`,
	`{}`,
	`[1,2,3]`,
	`[[],{},[{}]]`,
	`{"a":1,"b":[true,null],"c":{"d":"e"}}`,
	`{"nested":{"deep":{"deeper":[1,2,{"deepest":null}]}}}`,
	`[1.5,-0.25,2e10,3e-10]`,
}

// TestRoundTrip checks decode(encode(decode(D))) against decode(D) for every
// layout mode.
func TestRoundTrip(t *testing.T) {
	configs := map[string]Config{
		"compact": DefaultConfig(),
		"spatial": {Spatial: true},
		"indent2": {Indent: 2},
		"ascii":   {ASCIIOnly: true},
	}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			for _, doc := range roundTripDocs {
				first, err := Decode([]byte(doc))
				require.NoError(t, err, "decoding %q", doc)

				encoded, err := cfg.Encode(first)
				require.NoError(t, err, "encoding %q", doc)

				second, err := Decode(encoded)
				require.NoError(t, err, "re-decoding %q as %q", doc, encoded)

				assert.True(t, first.Equal(second),
					"round trip of %q through %q changed the tree:\n%s",
					doc, encoded, cmp.Diff(first.Go(), second.Go()))
			}
		})
	}
}

func TestEncodeIsDecodable(t *testing.T) {
	// Indented and spatial output both re-decode: the layout whitespace is
	// exactly the whitespace the scanner skips.
	v := ObjectOf(map[string]Value{
		"list": ArrayOf(IntOf(1), RealOf(2.5), StringOf("three")),
		"flag": BoolOf(true),
	})
	for _, cfg := range []Config{{Indent: 2}, {Spatial: true}, DefaultConfig()} {
		encoded, err := cfg.Encode(v)
		require.NoError(t, err)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.True(t, v.Equal(decoded))
	}
}

func TestIntegerRealDistinctionSurvives(t *testing.T) {
	// 1e3 is a real even though its value is integral; 1000 is an integer.
	real1000 := mustDecode(t, "1e3")
	int1000 := mustDecode(t, "1000")
	require.Equal(t, KindReal, real1000.Kind())
	require.Equal(t, KindInteger, int1000.Kind())
	assert.False(t, real1000.Equal(int1000))

	encoded, err := Encode(real1000)
	require.NoError(t, err)
	again, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, KindReal, again.Kind())
}

func FuzzDecode(f *testing.F) {
	for _, doc := range roundTripDocs {
		f.Add([]byte(doc))
	}
	f.Add([]byte(`{"a":`))
	f.Add([]byte(`[1,2`))
	f.Add([]byte("01"))
	f.Fuzz(func(t *testing.T, data []byte) {
		v, err := Decode(data)
		if err != nil {
			return
		}
		encoded, err := Encode(v)
		if err != nil {
			// Saturating literals like 1e999 decode to an infinity,
			// which has no JSON representation.
			var printErr *PrintError
			if errors.As(err, &printErr) && printErr.Kind == PrintErrNonFinite {
				return
			}
			t.Fatalf("encoding decoded value of %q: %v", data, err)
		}
		again, err := Decode(encoded)
		if err != nil {
			t.Fatalf("re-decoding %q (from %q): %v", encoded, data, err)
		}
		// One encode normalizes (signed zero, duplicate keys); after that
		// the encoding must be a fixed point.
		stable, err := Encode(again)
		if err != nil {
			t.Fatalf("re-encoding %q: %v", encoded, err)
		}
		if string(encoded) != string(stable) {
			t.Fatalf("encoding of %q is not stable: %q then %q", data, encoded, stable)
		}
	})
}
