package jay

// ============================================================================
// Phase 2: Parser
// ============================================================================
//
// The parser is classic recursive descent with one token of lookahead held
// on the cursor and no backtracking. The document must contain exactly one
// value: trailing non-whitespace content after it is an error. Entering a
// non-empty object or array body increments a depth counter and the parse
// fails before recursing past the configured maximum, which bounds stack
// usage against adversarial deeply-nested input. An empty {} or [] does not
// nest.

// parser is the cursor state of one parse operation: the current token and
// the current nesting depth. It is owned by a single call and never shared.
type parser struct {
	scan     *scanner
	tok      token
	depth    int
	maxDepth int
}

// parseDocument decodes a whole document: root := value EOF.
func parseDocument(data []byte, maxDepth int) (Value, *ParseError) {
	p := &parser{scan: &scanner{data: data}, maxDepth: maxDepth}
	if err := p.advance(); err != nil {
		return Value{}, err
	}
	value, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	if p.tok.kind != tokEOF {
		return Value{}, p.errorHere(ErrExpectedEOF)
	}
	return value, nil
}

// advance replaces the lookahead token with the next one from the scanner.
func (p *parser) advance() *ParseError {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// errorHere builds a ParseError at the lookahead token.
func (p *parser) errorHere(kind ParseErrKind) *ParseError {
	return p.scan.errorAt(kind, p.tok.start)
}

// parseValue parses one value starting at the lookahead token and leaves
// the cursor on the token after it.
func (p *parser) parseValue() (Value, *ParseError) {
	switch p.tok.kind {
	case tokObjectOpen:
		return p.parseObject()
	case tokArrayOpen:
		return p.parseArray()
	case tokString:
		s, err := p.scan.materializeString(p.tok)
		if err != nil {
			return Value{}, err
		}
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return StringOf(s), nil
	case tokInteger:
		n := p.scan.materializeInteger(p.tok)
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return IntOf(n), nil
	case tokReal:
		f := p.scan.materializeReal(p.tok)
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return RealOf(f), nil
	case tokTrue:
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return BoolOf(true), nil
	case tokFalse:
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return BoolOf(false), nil
	case tokNull:
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return Null(), nil
	case tokEOF:
		return Value{}, p.errorHere(ErrExpectedValue)
	default:
		return Value{}, p.errorHere(ErrUnexpectedToken)
	}
}

// parseObject parses an object body with the lookahead on "{". Duplicate
// keys are permitted by the grammar; a later member overwrites an earlier
// one for the same key, since objects are maps and not ordered pair lists.
func (p *parser) parseObject() (Value, *ParseError) {
	if err := p.advance(); err != nil {
		return Value{}, err
	}
	members := map[string]Value{}
	if p.tok.kind == tokObjectClose {
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return Value{kind: KindObject, o: members}, nil
	}

	if err := p.enter(); err != nil {
		return Value{}, err
	}
	for {
		switch p.tok.kind {
		case tokString:
			// The key position holds a string literal.
		case tokEOF:
			return Value{}, p.errorHere(ErrExpectedValue)
		default:
			return Value{}, p.errorHere(ErrExpectedString)
		}
		key, err := p.scan.materializeString(p.tok)
		if err != nil {
			return Value{}, err
		}
		if err := p.advance(); err != nil {
			return Value{}, err
		}

		switch p.tok.kind {
		case tokColon:
			if err := p.advance(); err != nil {
				return Value{}, err
			}
		case tokEOF:
			return Value{}, p.errorHere(ErrExpectedValue)
		default:
			return Value{}, p.errorHere(ErrExpectedColon)
		}

		member, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		members[key] = member

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return Value{}, err
			}
		case tokObjectClose:
			p.leave()
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindObject, o: members}, nil
		case tokEOF:
			return Value{}, p.errorHere(ErrExpectedValue)
		default:
			return Value{}, p.errorHere(ErrExpectedObjectClose)
		}
	}
}

// parseArray parses an array body with the lookahead on "[".
func (p *parser) parseArray() (Value, *ParseError) {
	if err := p.advance(); err != nil {
		return Value{}, err
	}
	elems := []Value{}
	if p.tok.kind == tokArrayClose {
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		return Value{kind: KindArray, a: elems}, nil
	}

	if err := p.enter(); err != nil {
		return Value{}, err
	}
	for {
		elem, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return Value{}, err
			}
		case tokArrayClose:
			p.leave()
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, a: elems}, nil
		case tokEOF:
			return Value{}, p.errorHere(ErrExpectedValue)
		default:
			return Value{}, p.errorHere(ErrExpectedArrayClose)
		}
	}
}

// enter records entry into a non-empty container body, failing when the
// nesting would exceed the configured maximum.
func (p *parser) enter() *ParseError {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorHere(ErrMaxDepth)
	}
	return nil
}

// leave records a container's successful close.
func (p *parser) leave() {
	p.depth--
}
