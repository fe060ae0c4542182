package jay

import (
	"io"
	"math"
	"sort"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ============================================================================
// Printer
// ============================================================================
//
// The printer walks a value tree recursively and emits bytes through a
// fixed-size buffer that flushes to the sink when full and once more at the
// end, so serialization can stream without first building the whole output
// in memory. Layout is controlled by Config: compact, spatial (single
// spaces after ":" and ","), or indented. The printer mirrors the parser's
// depth guard; an empty container never nests and is always written as {}
// or [] with no interior whitespace.

// printBufSize is the capacity of the printer's write-through buffer.
const printBufSize = 4096

// printer is the output state of one encode operation.
type printer struct {
	w       io.Writer
	buf     []byte
	cfg     Config
	scratch [32]byte // number formatting
}

// newPrinter returns a printer writing to w with a normalized config.
func newPrinter(w io.Writer, cfg Config) *printer {
	return &printer{w: w, buf: make([]byte, 0, printBufSize), cfg: cfg.normalized()}
}

// flush writes any buffered bytes to the sink.
func (p *printer) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	if _, err := p.w.Write(p.buf); err != nil {
		return err
	}
	p.buf = p.buf[:0]
	return nil
}

// writeByte appends one byte, flushing first if the buffer is full.
func (p *printer) writeByte(c byte) error {
	if len(p.buf) == cap(p.buf) {
		if err := p.flush(); err != nil {
			return err
		}
	}
	p.buf = append(p.buf, c)
	return nil
}

// writeString appends a string, flushing as needed.
func (p *printer) writeString(s string) error {
	for len(s) > 0 {
		if len(p.buf) == cap(p.buf) {
			if err := p.flush(); err != nil {
				return err
			}
		}
		n := copy(p.buf[len(p.buf):cap(p.buf)], s)
		p.buf = p.buf[:len(p.buf)+n]
		s = s[n:]
	}
	return nil
}

// writeBytes appends a byte slice, flushing as needed.
func (p *printer) writeBytes(b []byte) error {
	for len(b) > 0 {
		if len(p.buf) == cap(p.buf) {
			if err := p.flush(); err != nil {
				return err
			}
		}
		n := copy(p.buf[len(p.buf):cap(p.buf)], b)
		p.buf = p.buf[:len(p.buf)+n]
		b = b[n:]
	}
	return nil
}

// writeIndent writes the newline and indentation that precede a line at the
// given depth.
func (p *printer) writeIndent(depth int) error {
	if err := p.writeByte('\n'); err != nil {
		return err
	}
	for i := 0; i < depth*p.cfg.Indent; i++ {
		if err := p.writeByte(' '); err != nil {
			return err
		}
	}
	return nil
}

// printDocument prints the value followed by the trailing newline that
// indented layout puts after the whole document.
func (p *printer) printDocument(v Value) error {
	if err := p.printValue(v, 0); err != nil {
		return err
	}
	if p.cfg.pretty() {
		if err := p.writeByte('\n'); err != nil {
			return err
		}
	}
	return p.flush()
}

// printValue dispatches on the value's variant. The variant set is closed:
// a kind outside it is an error, never silently stringified.
func (p *printer) printValue(v Value, depth int) error {
	switch v.kind {
	case KindNull:
		return p.writeString("null")
	case KindBool:
		if v.b {
			return p.writeString("true")
		}
		return p.writeString("false")
	case KindInteger:
		return p.writeBytes(strconv.AppendInt(p.scratch[:0], v.n, 10))
	case KindReal:
		return p.printReal(v.f)
	case KindString:
		return p.printString(v.s)
	case KindArray:
		return p.printArray(v.a, depth)
	case KindObject:
		return p.printObject(v.o, depth)
	default:
		return &PrintError{Kind: PrintErrUnsupportedValue, Detail: v.kind.String()}
	}
}

// ============================================================================
// Numbers
// ============================================================================

// printReal prints a real with the shortest representation that round-trips
// the IEEE-754 value. A form that would read back as an integer gets a ".0"
// suffix so the value stays a real across a round trip. Signed zero is
// normalized to 0. NaN and the infinities have no JSON representation and
// fail unless the config permits them as bare non-standard keywords.
func (p *printer) printReal(f float64) error {
	switch {
	case math.IsNaN(f):
		return p.printNonFinite("nan")
	case math.IsInf(f, 1):
		return p.printNonFinite("inf")
	case math.IsInf(f, -1):
		return p.printNonFinite("-inf")
	case f == 0:
		return p.writeByte('0')
	}
	out := strconv.AppendFloat(p.scratch[:0], f, 'g', -1, 64)
	if integralForm(out) {
		out = append(out, '.', '0')
	}
	return p.writeBytes(out)
}

// printNonFinite writes a non-finite keyword when permitted and fails with
// the keyword's name otherwise.
func (p *printer) printNonFinite(keyword string) error {
	if p.cfg.AllowNonFinite {
		return p.writeString(keyword)
	}
	return &PrintError{Kind: PrintErrNonFinite, Detail: keyword}
}

// integralForm reports whether a formatted float carries neither a fraction
// nor an exponent.
func integralForm(out []byte) bool {
	for _, c := range out {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

// ============================================================================
// Strings
// ============================================================================

const hexDigits = "0123456789abcdef"

// printString prints a quoted string. Control characters, the quote, and the
// backslash always escape, using the short forms where defined. With
// ASCIIOnly set, every non-ASCII scalar escapes as well, splitting scalars
// above U+FFFF into a UTF-16 surrogate pair.
func (p *printer) printString(s string) error {
	if err := p.writeByte('"'); err != nil {
		return err
	}
	for _, r := range s {
		if err := p.printRune(r); err != nil {
			return err
		}
	}
	return p.writeByte('"')
}

// printRune prints one scalar of a string body, escaped as required.
func (p *printer) printRune(r rune) error {
	switch r {
	case '"':
		return p.writeString(`\"`)
	case '\\':
		return p.writeString(`\\`)
	case '\b':
		return p.writeString(`\b`)
	case '\f':
		return p.writeString(`\f`)
	case '\n':
		return p.writeString(`\n`)
	case '\r':
		return p.writeString(`\r`)
	case '\t':
		return p.writeString(`\t`)
	}
	if r < 0x20 {
		return p.printUnicodeEscape(uint16(r))
	}
	if p.cfg.ASCIIOnly && r > 0x7E {
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			if err := p.printUnicodeEscape(uint16(hi)); err != nil {
				return err
			}
			return p.printUnicodeEscape(uint16(lo))
		}
		return p.printUnicodeEscape(uint16(r))
	}
	return p.writeBytes(utf8.AppendRune(p.scratch[:0], r))
}

// printUnicodeEscape prints one \uXXXX escape for a UTF-16 code unit.
func (p *printer) printUnicodeEscape(unit uint16) error {
	return p.writeBytes([]byte{
		'\\', 'u',
		hexDigits[unit>>12&0xF],
		hexDigits[unit>>8&0xF],
		hexDigits[unit>>4&0xF],
		hexDigits[unit&0xF],
	})
}

// ============================================================================
// Containers
// ============================================================================

// enter checks the depth guard on entering a non-empty container body.
func (p *printer) enter(depth int) error {
	if depth+1 > p.cfg.MaxDepth {
		return &PrintError{Kind: PrintErrMaxDepth}
	}
	return nil
}

// printArray prints an array. Empty arrays are [] regardless of layout.
func (p *printer) printArray(elems []Value, depth int) error {
	if len(elems) == 0 {
		return p.writeString("[]")
	}
	if err := p.enter(depth); err != nil {
		return err
	}
	if err := p.writeByte('['); err != nil {
		return err
	}
	for i, elem := range elems {
		if i > 0 {
			if err := p.writeByte(','); err != nil {
				return err
			}
			if p.cfg.Spatial && !p.cfg.pretty() {
				if err := p.writeByte(' '); err != nil {
					return err
				}
			}
		}
		if p.cfg.pretty() {
			if err := p.writeIndent(depth + 1); err != nil {
				return err
			}
		}
		if err := p.printValue(elem, depth+1); err != nil {
			return err
		}
	}
	if p.cfg.pretty() {
		if err := p.writeIndent(depth); err != nil {
			return err
		}
	}
	return p.writeByte(']')
}

// printObject prints an object. Keys are emitted in sorted order: the map
// has no semantic order and sorting keeps the output deterministic. Empty
// objects are {} regardless of layout.
func (p *printer) printObject(members map[string]Value, depth int) error {
	if len(members) == 0 {
		return p.writeString("{}")
	}
	if err := p.enter(depth); err != nil {
		return err
	}
	if err := p.writeByte('{'); err != nil {
		return err
	}
	keys := make([]string, 0, len(members))
	for key := range members {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		if i > 0 {
			if err := p.writeByte(','); err != nil {
				return err
			}
			if p.cfg.Spatial && !p.cfg.pretty() {
				if err := p.writeByte(' '); err != nil {
					return err
				}
			}
		}
		if p.cfg.pretty() {
			if err := p.writeIndent(depth + 1); err != nil {
				return err
			}
		}
		if err := p.printString(key); err != nil {
			return err
		}
		if err := p.writeByte(':'); err != nil {
			return err
		}
		if p.cfg.pretty() || p.cfg.Spatial {
			if err := p.writeByte(' '); err != nil {
				return err
			}
		}
		if err := p.printValue(members[key], depth+1); err != nil {
			return err
		}
	}
	if p.cfg.pretty() {
		if err := p.writeIndent(depth); err != nil {
			return err
		}
	}
	return p.writeByte('}')
}
