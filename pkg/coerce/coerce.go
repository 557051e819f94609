package coerce

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/kindling-dev/kindling/pkg/hint"
	"github.com/kindling-dev/kindling/pkg/hint/kinds"
	"github.com/kindling-dev/kindling/pkg/literal"
)

func (e *Engine) coerce(v literal.Value, h hint.Hint, depth int) (any, error) {
	if depth > e.Config.MaxDepth {
		return nil, DepthError{Limit: e.Config.MaxDepth}
	}

	switch h := hint.Resolve(h).(type) {
	case hint.Kind:
		return e.coerceKind(v, h, depth)
	case *hint.Union:
		return e.coerceUnion(v, h, depth)
	case *hint.List:
		return e.coerceList(v, h, depth)
	case *hint.Set:
		return e.coerceSet(v, h, depth)
	case *hint.Dict:
		return e.coerceDict(v, h, depth)
	case *hint.Tuple:
		return e.coerceTuple(v, h, depth)
	case *hint.Constructor:
		return e.coerceConstructor(v, h)
	default:
		return nil, UnsupportedError{From: v, To: h}
	}
}

func (e *Engine) coerceKind(v literal.Value, h hint.Kind, depth int) (any, error) {
	switch h.Kind() {
	case kinds.Any:
		return e.anyValue(v, depth)
	case kinds.None:
		return coerceNone(v)
	case kinds.Str:
		return coerceStr(v)
	case kinds.Int:
		return coerceInt(v, h)
	case kinds.Bytes:
		return coerceBytes(v, h)
	case kinds.Bool:
		return coerceBool(v, h)
	case kinds.DateTime:
		return coerceTime(v, h, false)
	case kinds.Date:
		return coerceTime(v, h, true)
	default:
		return nil, UnsupportedError{From: v, To: h}
	}
}

// coerceStr converts leaves by their textual form and renders containers
// back to literal notation. Only the absent-value sentinel is refused.
func coerceStr(v literal.Value) (any, error) {
	switch v := v.(type) {
	case literal.Str:
		return string(v), nil
	case literal.Raw:
		return string(v), nil
	case literal.Int:
		return strconv.FormatInt(int64(v), 10), nil
	case literal.Bytes:
		return string(v), nil
	case literal.None:
		return nil, MismatchError{Want: hint.Str, Got: v}
	default:
		return v.String(), nil
	}
}

func coerceInt(v literal.Value, h hint.Hint) (any, error) {
	switch v := v.(type) {
	case literal.Int:
		return int64(v), nil
	case literal.Str:
		return parseInt(string(v), h)
	case literal.Raw:
		return parseInt(string(v), h)
	case literal.Bytes:
		return nil, UnsupportedError{From: v, To: h}
	default:
		return nil, MismatchError{Want: h, Got: v}
	}
}

func parseInt(text string, h hint.Hint) (any, error) {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, FormatError{Text: text, Want: h}
	}
	return n, nil
}

func coerceBytes(v literal.Value, h hint.Hint) (any, error) {
	switch v := v.(type) {
	case literal.Bytes:
		return []byte(v), nil
	case literal.Str:
		return []byte(v), nil
	case literal.Raw:
		return []byte(v), nil
	case literal.Int:
		// 8-byte big-endian two's complement.
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(int64(v)))
		return buf, nil
	default:
		return nil, MismatchError{Want: h, Got: v}
	}
}

func coerceBool(v literal.Value, h hint.Hint) (any, error) {
	switch v := v.(type) {
	case literal.Bool:
		return bool(v), nil
	case literal.Str:
		return parseBool(string(v), h)
	case literal.Raw:
		return parseBool(string(v), h)
	default:
		return nil, MismatchError{Want: h, Got: v}
	}
}

func parseBool(text string, h hint.Hint) (any, error) {
	switch text {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return nil, FormatError{Text: text, Want: h}
	}
}

func coerceTime(v literal.Value, h hint.Hint, dateOnly bool) (any, error) {
	switch v := v.(type) {
	case literal.Str:
		return parseTime(string(v), h, dateOnly)
	case literal.Raw:
		return parseTime(string(v), h, dateOnly)
	case literal.Int, literal.Bytes:
		return nil, UnsupportedError{From: v, To: h}
	default:
		return nil, MismatchError{Want: h, Got: v}
	}
}

func coerceNone(v literal.Value) (any, error) {
	if isNone(v) {
		return nil, nil
	}
	return nil, MismatchError{Want: hint.None, Got: v}
}

// coerceUnion tries each member in declaration order; the first success
// wins. The absent-value sentinel short-circuits a nullable union so no
// earlier member can swallow it as text. An exhausted union carries every
// member failure.
func (e *Engine) coerceUnion(v literal.Value, h *hint.Union, depth int) (any, error) {
	if isNone(v) {
		for _, member := range h.Members() {
			if member.Kind() == kinds.None {
				return nil, nil
			}
		}
	}

	ue := &UnionError{Hint: h}

	for _, member := range h.Members() {
		out, err := e.coerce(v, member, depth)
		if err == nil {
			return out, nil
		}
		ue.Add(err)
	}

	return nil, ue
}

func isNone(v literal.Value) bool {
	switch v := v.(type) {
	case literal.None:
		return true
	case literal.Raw:
		return string(v) == "None"
	default:
		return false
	}
}

func (e *Engine) coerceList(v literal.Value, h *hint.List, depth int) (any, error) {
	seq, ok := v.(*literal.Seq)
	if !ok || seq.Tag != literal.TagList {
		return nil, shapeError(v, h)
	}

	out := make([]any, len(seq.Elems))
	for i, elem := range seq.Elems {
		converted, err := e.coerce(elem, h.Elem(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = converted
	}

	return out, nil
}

func (e *Engine) coerceSet(v literal.Value, h *hint.Set, depth int) (any, error) {
	lit, ok := v.(*literal.SetLit)
	if !ok {
		return nil, shapeError(v, h)
	}

	out := NewSet()
	for i, elem := range lit.Elems {
		converted, err := e.coerce(elem, h.Elem(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Add(converted)
	}

	return out, nil
}

func (e *Engine) coerceDict(v literal.Value, h *hint.Dict, depth int) (any, error) {
	m, ok := v.(*literal.Mapping)
	if !ok {
		return nil, shapeError(v, h)
	}

	out := NewDict()
	for _, pair := range m.Pairs {
		key, err := e.coerce(pair.Key, h.Key(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", pair.Key, err)
		}

		value, err := e.coerce(pair.Value, h.Value(), depth+1)
		if err != nil {
			return nil, fmt.Errorf("value for key %s: %w", pair.Key, err)
		}

		out.Put(key, value)
	}

	return out, nil
}

// coerceTuple accepts a sequence of either bracket kind; arity must match
// exactly.
func (e *Engine) coerceTuple(v literal.Value, h *hint.Tuple, depth int) (any, error) {
	seq, ok := v.(*literal.Seq)
	if !ok {
		return nil, shapeError(v, h)
	}

	elems := h.Elems()
	if len(seq.Elems) != len(elems) {
		return nil, ArityError{Want: len(elems), Got: len(seq.Elems)}
	}

	out := make([]any, len(seq.Elems))
	for i, elem := range seq.Elems {
		converted, err := e.coerce(elem, elems[i], depth+1)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = converted
	}

	return out, nil
}

func (e *Engine) coerceConstructor(v literal.Value, h *hint.Constructor) (any, error) {
	fn, ok := e.ctors[h.Name()]
	if !ok {
		return nil, ConstructorError{Name: h.Name(), Err: ErrUnknownConstructor}
	}

	var arg literal.Value
	switch v := v.(type) {
	case literal.Str, literal.Int, literal.Bytes, literal.Raw:
		arg = v
	case literal.Bool, *literal.Seq, *literal.Mapping, *literal.SetLit:
		arg = literal.Str(v.String())
	default:
		return nil, MismatchError{Want: h, Got: v}
	}

	out, err := fn(arg)
	if err != nil {
		return nil, ConstructorError{Name: h.Name(), Err: err}
	}

	return out, nil
}

// anyValue is the identity conversion: leaves map to their native Go
// forms and containers are rebuilt without any hint applied.
func (e *Engine) anyValue(v literal.Value, depth int) (any, error) {
	if depth > e.Config.MaxDepth {
		return nil, DepthError{Limit: e.Config.MaxDepth}
	}

	switch v := v.(type) {
	case literal.Str:
		return string(v), nil
	case literal.Raw:
		return string(v), nil
	case literal.Int:
		return int64(v), nil
	case literal.Bytes:
		return []byte(v), nil
	case literal.Bool:
		return bool(v), nil
	case literal.None:
		return nil, nil
	case *literal.Seq:
		out := make([]any, len(v.Elems))
		for i, elem := range v.Elems {
			converted, err := e.anyValue(elem, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case *literal.SetLit:
		out := NewSet()
		for _, elem := range v.Elems {
			converted, err := e.anyValue(elem, depth+1)
			if err != nil {
				return nil, err
			}
			out.Add(converted)
		}
		return out, nil
	case *literal.Mapping:
		out := NewDict()
		for _, pair := range v.Pairs {
			key, err := e.anyValue(pair.Key, depth+1)
			if err != nil {
				return nil, err
			}
			value, err := e.anyValue(pair.Value, depth+1)
			if err != nil {
				return nil, err
			}
			out.Put(key, value)
		}
		return out, nil
	default:
		return nil, MismatchError{Want: hint.Any, Got: v}
	}
}

// shapeError distinguishes a token that never parsed as literal syntax
// from a literal of the wrong shape.
func shapeError(v literal.Value, h hint.Hint) error {
	if raw, ok := v.(literal.Raw); ok {
		return SyntaxError{Raw: string(raw), Want: h}
	}
	return MismatchError{Want: h, Got: v}
}
