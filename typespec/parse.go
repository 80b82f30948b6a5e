package typespec

import (
	"strconv"

	"github.com/wippyai/ffi-types/ctype"
	"github.com/wippyai/ffi-types/errors"
)

type parser struct {
	src string
	pos int
}

// Parse builds a Type from a single signature such as "{i64, {u8}, ptr}".
func Parse(src string) (*ctype.Type, error) {
	p := &parser{src: src}
	t, err := p.parseType(nil)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		t.Free()
		return nil, errors.Syntax(p.pos, "unexpected %q after type", p.src[p.pos:])
	}
	return t, nil
}

// ParseList builds a TypeArray from a comma-separated list such as
// "pointer, i32, {f64, f64}". An empty or blank input yields an empty array.
func ParseList(src string) (*ctype.TypeArray, error) {
	p := &parser{src: src}
	p.skipSpace()
	if p.eof() {
		return ctype.NewTypeArray(), nil
	}

	var elems []*ctype.Type
	for {
		t, err := p.parseType([]string{strconv.Itoa(len(elems))})
		if err != nil {
			freeAll(elems)
			return nil, err
		}
		elems = append(elems, t)

		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			freeAll(elems)
			return nil, errors.Syntax(p.pos, "expected ',' between list elements, got %q", p.peek())
		}
		p.pos++
	}
	return ctype.NewTypeArray(elems...), nil
}

func (p *parser) parseType(path []string) (*ctype.Type, error) {
	p.skipSpace()
	if p.eof() {
		return nil, errors.WithPath(errors.UnexpectedEOF(p.pos, "type"), path...)
	}
	if p.peek() == '{' {
		p.pos++
		return p.parseStruct(path)
	}

	start := p.pos
	for !p.eof() && isIdent(p.peek()) {
		p.pos++
	}
	if start == p.pos {
		return nil, errors.WithPath(errors.Syntax(p.pos, "unexpected %q, expected type", p.peek()), path...)
	}

	name := p.src[start:p.pos]
	ctor, ok := lookup(name)
	if !ok {
		return nil, errors.UnknownType(path, name)
	}
	return ctor(), nil
}

func (p *parser) parseStruct(path []string) (*ctype.Type, error) {
	var fields []*ctype.Type
	for {
		p.skipSpace()
		if p.eof() {
			freeAll(fields)
			return nil, errors.WithPath(errors.UnexpectedEOF(p.pos, "'}'"), path...)
		}
		if p.peek() == '}' {
			p.pos++
			return ctype.Structure(fields...), nil
		}

		f, err := p.parseType(appendPath(path, len(fields)))
		if err != nil {
			freeAll(fields)
			return nil, err
		}
		fields = append(fields, f)

		p.skipSpace()
		switch {
		case p.eof():
			freeAll(fields)
			return nil, errors.WithPath(errors.UnexpectedEOF(p.pos, "',' or '}'"), path...)
		case p.peek() == ',':
			p.pos++
		case p.peek() == '}':
		default:
			freeAll(fields)
			return nil, errors.WithPath(errors.Syntax(p.pos, "expected ',' or '}', got %q", p.peek()), path...)
		}
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isIdent(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func appendPath(path []string, idx int) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, strconv.Itoa(idx))
}

func freeAll(ts []*ctype.Type) {
	for _, t := range ts {
		t.Free()
	}
}
