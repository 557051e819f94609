package hint

import (
	"fmt"
	"strings"
)

// Parse reads the textual hint grammar used on the command line:
// primitives (str, int, bytes, bool, datetime, date, any, None),
// parameterized containers (List[T], Set[T], Dict[K, V], Tuple[T1, ..., Tn]),
// Optional[T] and Union[T1, ..., Tn], and any other identifier as a
// registered single-argument-constructible type. Heads are matched
// case-insensitively.
func Parse(s string) (Hint, error) {
	p := &hintParser{src: s}

	h, err := p.parseHint()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos], p.pos, p.src)
	}

	return h, nil
}

type hintParser struct {
	src string
	pos int
}

func (p *hintParser) parseHint() (Hint, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return p.bareHint(name)
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	return p.parameterizedHint(name, args)
}

func (p *hintParser) bareHint(name string) (Hint, error) {
	switch strings.ToLower(name) {
	case "str", "string":
		return Str, nil
	case "int":
		return Int, nil
	case "bytes":
		return Bytes, nil
	case "bool":
		return Bool, nil
	case "datetime":
		return DateTime, nil
	case "date":
		return Date, nil
	case "any":
		return Any, nil
	case "none", "nonetype":
		return None, nil
	case "list", "set", "dict", "tuple", "optional", "union":
		return nil, fmt.Errorf("type %q requires parameters", name)
	default:
		return NewConstructor(name), nil
	}
}

func (p *hintParser) parameterizedHint(name string, args []Hint) (Hint, error) {
	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d parameter(s), got %d", name, n, len(args))
		}
		return nil
	}

	switch strings.ToLower(name) {
	case "list":
		if err := arity(1); err != nil {
			return nil, err
		}
		return NewList(args[0]), nil
	case "set":
		if err := arity(1); err != nil {
			return nil, err
		}
		return NewSet(args[0]), nil
	case "dict":
		if err := arity(2); err != nil {
			return nil, err
		}
		return NewDict(args[0], args[1]), nil
	case "tuple":
		return NewTuple(args...), nil
	case "optional":
		if err := arity(1); err != nil {
			return nil, err
		}
		return NewOptional(args[0]), nil
	case "union":
		return NewUnion(args...), nil
	default:
		return nil, fmt.Errorf("type %q does not take parameters", name)
	}
}

func (p *hintParser) parseArgs() ([]Hint, error) {
	p.pos++ // opening bracket

	var args []Hint
	for {
		arg, err := p.parseHint()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated parameter list in type %q", p.src)
		}

		switch p.src[p.pos] {
		case ']':
			p.pos++
			return args, nil
		case ',':
			p.pos++
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos], p.pos, p.src)
		}
	}
}

func (p *hintParser) parseIdent() (string, error) {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' || c == '_' || c == '.' {
			p.pos++
			continue
		}
		break
	}

	if start == p.pos {
		if p.pos < len(p.src) {
			return "", fmt.Errorf("unexpected %q at offset %d in type %q", p.src[p.pos], p.pos, p.src)
		}
		return "", fmt.Errorf("missing type name in %q", p.src)
	}

	return p.src[start:p.pos], nil
}

func (p *hintParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}
