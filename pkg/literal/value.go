package literal

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the hint-free intermediate form produced by Parse.
type Value interface {
	value()
	String() string
}

type Str string

func (Str) value() {}

func (v Str) String() string {
	return strconv.Quote(string(v))
}

type Int int64

func (Int) value() {}

func (v Int) String() string {
	return strconv.FormatInt(int64(v), 10)
}

type Bytes []byte

func (Bytes) value() {}

func (v Bytes) String() string {
	return "b" + strconv.Quote(string(v))
}

type Bool bool

func (Bool) value() {}

func (v Bool) String() string {
	if v {
		return "True"
	}
	return "False"
}

// None is the absent-value literal inside containers.
type None struct{}

func (None) value() {}

func (None) String() string {
	return "None"
}

// Raw carries a token that did not parse as any literal shape.
type Raw string

func (Raw) value() {}

func (v Raw) String() string {
	return string(v)
}

type SeqTag int

const (
	TagList SeqTag = iota
	TagTuple
)

// Seq is an ordered sequence literal. The bracket kind is retained as Tag
// so list- and tuple-shaped hints can be matched structurally.
type Seq struct {
	Tag   SeqTag
	Elems []Value
}

func (*Seq) value() {}

func (v *Seq) String() string {
	open, close := "[", "]"
	if v.Tag == TagTuple {
		open, close = "(", ")"
	}

	var sb strings.Builder
	sb.WriteString(open)
	for i, elem := range v.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem.String())
	}
	sb.WriteString(close)
	return sb.String()
}

type Pair struct {
	Key   Value
	Value Value
}

// Mapping is a dict literal. Keys are not required to be unique at parse
// time; duplicate handling is the coercion layer's concern.
type Mapping struct {
	Pairs []Pair
}

func (*Mapping) value() {}

func (v *Mapping) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, pair := range v.Pairs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", pair.Key.String(), pair.Value.String())
	}
	sb.WriteString("}")
	return sb.String()
}

type SetLit struct {
	Elems []Value
}

func (*SetLit) value() {}

func (v *SetLit) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, elem := range v.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem.String())
	}
	sb.WriteString("}")
	return sb.String()
}
