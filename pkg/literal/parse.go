package literal

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds literal nesting before a token degrades to Raw.
const DefaultMaxDepth = 64

var (
	errBadLiteral = errors.New("not a literal")
	errTooDeep    = errors.New("nesting too deep")
)

// Parse turns a raw token into its intermediate value. It is total: a token
// that is not valid literal syntax comes back as Raw, never an error. Bare
// unquoted words are only literals inside containers; a bare top-level token
// stays Raw so the coercion layer can decide what it means.
func Parse(token string) Value {
	return ParseDepth(token, DefaultMaxDepth)
}

func ParseDepth(token string, maxDepth int) Value {
	p := &parser{src: token, maxDepth: maxDepth}

	p.skipSpace()
	v, err := p.parseStrict(0)
	if err != nil {
		return Raw(token)
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return Raw(token)
	}

	return v
}

type parser struct {
	src      string
	pos      int
	maxDepth int

	// quotedLast records whether the most recent scalar came from quoted
	// syntax, which distinguishes "'None'" from a bare None.
	quotedLast bool
}

// parseStrict accepts only quoted, byte-quoted, integer, and container
// syntax. It is the top-level entry: bare words fail here.
func (p *parser) parseStrict(depth int) (Value, error) {
	v, err := p.parseValue(depth)
	if err != nil {
		return nil, err
	}

	switch v.(type) {
	case Str, Bool, None:
		if !p.quotedLast {
			return nil, errBadLiteral
		}
	}

	return v, nil
}

func (p *parser) parseValue(depth int) (Value, error) {
	if depth > p.maxDepth {
		return nil, errTooDeep
	}

	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, errBadLiteral
	}

	switch c := p.src[p.pos]; {
	case c == '\'' || c == '"':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		p.quotedLast = true
		return Str(s), nil

	case (c == 'b' || c == 'B') && p.pos+1 < len(p.src) &&
		(p.src[p.pos+1] == '\'' || p.src[p.pos+1] == '"'):
		p.pos++
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		p.quotedLast = true
		return Bytes(s), nil

	case c == '[':
		return p.parseSeq(depth, ']', TagList)

	case c == '(':
		return p.parseSeq(depth, ')', TagTuple)

	case c == '{':
		return p.parseBrace(depth)

	default:
		return p.parseScalar()
	}
}

func (p *parser) parseSeq(depth int, close byte, tag SeqTag) (Value, error) {
	p.pos++ // opening bracket
	seq := &Seq{Tag: tag}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == close {
		p.pos++
		return seq, nil
	}

	for {
		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		seq.Elems = append(seq.Elems, elem)

		done, err := p.endElement(close)
		if err != nil {
			return nil, err
		}
		if done {
			return seq, nil
		}
	}
}

func (p *parser) parseBrace(depth int) (Value, error) {
	p.pos++ // opening brace

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		// Empty braces are an empty mapping: a dict literal with zero
		// pairs is valid syntax, a set literal needs at least one element.
		p.pos++
		return &Mapping{}, nil
	}

	first, err := p.parseValue(depth + 1)
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ':' {
		return p.parseMapping(depth, first)
	}

	set := &SetLit{Elems: []Value{first}}
	for {
		done, err := p.endElement('}')
		if err != nil {
			return nil, err
		}
		if done {
			return set, nil
		}

		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		set.Elems = append(set.Elems, elem)
	}
}

// parseMapping continues a brace literal after the first key and its colon
// have been seen.
func (p *parser) parseMapping(depth int, key Value) (Value, error) {
	m := &Mapping{}

	for {
		p.pos++ // colon
		value, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		m.Pairs = append(m.Pairs, Pair{Key: key, Value: value})

		done, err := p.endElement('}')
		if err != nil {
			return nil, err
		}
		if done {
			return m, nil
		}

		key, err = p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, errBadLiteral
		}
	}
}

// endElement consumes a separator after a container element. It reports
// done when the closing bracket (possibly after a trailing comma) was
// consumed.
func (p *parser) endElement(close byte) (bool, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return false, errBadLiteral
	}

	switch p.src[p.pos] {
	case close:
		p.pos++
		return true, nil
	case ',':
		p.pos++
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == close {
			p.pos++
			return true, nil
		}
		return false, nil
	default:
		return false, errBadLiteral
	}
}

func (p *parser) parseQuoted() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil

		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", errBadLiteral
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			case 'x':
				if p.pos+2 > len(p.src) {
					return "", errBadLiteral
				}
				n, err := strconv.ParseUint(p.src[p.pos:p.pos+2], 16, 8)
				if err != nil {
					return "", errBadLiteral
				}
				sb.WriteByte(byte(n))
				p.pos += 2
			default:
				// Unrecognized escapes keep the backslash, as the
				// source notation does.
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}

		default:
			sb.WriteByte(c)
			p.pos++
		}
	}

	return "", errBadLiteral
}

// parseScalar reads a bare word up to the next delimiter and classifies it.
// Quotes, brackets, whitespace, and comment markers inside a bare word make
// the whole token unparsable rather than splitting it.
func (p *parser) parseScalar() (Value, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == ':' || c == ']' || c == ')' || c == '}' {
			break
		}
		if strings.IndexByte("[({'\"\\#", c) >= 0 {
			return nil, errBadLiteral
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			// A space ends the word; anything but a delimiter after it
			// is a syntax error.
			break
		}
		p.pos++
	}

	word := p.src[start:p.pos]
	if word == "" {
		return nil, errBadLiteral
	}
	p.quotedLast = false

	switch word {
	case "True":
		return Bool(true), nil
	case "False":
		return Bool(false), nil
	case "None":
		return None{}, nil
	}

	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		return Int(n), nil
	}

	return Str(word), nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}
