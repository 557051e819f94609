package hint

import (
	"fmt"
	"strings"

	"github.com/kindling-dev/kindling/pkg/hint/kinds"
)

// Hint is a declared target type description for one argument position.
type Hint interface {
	Kind() kinds.Kind
	String() string
}

// Kind is a bare primitive (or Any/None) hint.
type Kind kinds.Kind

func (k Kind) Kind() kinds.Kind {
	return kinds.Kind(k)
}

func (k Kind) String() string {
	return kinds.Kind(k).String()
}

var (
	Str      = Kind(kinds.Str)
	Int      = Kind(kinds.Int)
	Bytes    = Kind(kinds.Bytes)
	Bool     = Kind(kinds.Bool)
	DateTime = Kind(kinds.DateTime)
	Date     = Kind(kinds.Date)
	Any      = Kind(kinds.Any)
	None     = Kind(kinds.None)
)

type List struct {
	elem Hint
}

func NewList(elem Hint) *List {
	return &List{elem: elem}
}

func (h *List) Kind() kinds.Kind {
	return kinds.List
}

func (h *List) Elem() Hint {
	return h.elem
}

func (h *List) String() string {
	return fmt.Sprintf("List[%s]", h.elem)
}

type Set struct {
	elem Hint
}

func NewSet(elem Hint) *Set {
	return &Set{elem: elem}
}

func (h *Set) Kind() kinds.Kind {
	return kinds.Set
}

func (h *Set) Elem() Hint {
	return h.elem
}

func (h *Set) String() string {
	return fmt.Sprintf("Set[%s]", h.elem)
}

type Dict struct {
	key   Hint
	value Hint
}

func NewDict(key, value Hint) *Dict {
	return &Dict{key: key, value: value}
}

func (h *Dict) Kind() kinds.Kind {
	return kinds.Dict
}

func (h *Dict) Key() Hint {
	return h.key
}

func (h *Dict) Value() Hint {
	return h.value
}

func (h *Dict) String() string {
	return fmt.Sprintf("Dict[%s, %s]", h.key, h.value)
}

type Tuple struct {
	elems []Hint
}

func NewTuple(elems ...Hint) *Tuple {
	return &Tuple{elems: elems}
}

func (h *Tuple) Kind() kinds.Kind {
	return kinds.Tuple
}

func (h *Tuple) Elems() []Hint {
	return h.elems
}

func (h *Tuple) String() string {
	parts := make([]string, len(h.elems))
	for i, elem := range h.elems {
		parts[i] = elem.String()
	}
	return fmt.Sprintf("Tuple[%s]", strings.Join(parts, ", "))
}

// Union members are tried in declaration order during coercion.
type Union struct {
	members []Hint
}

func NewUnion(members ...Hint) *Union {
	return &Union{members: members}
}

func (h *Union) Kind() kinds.Kind {
	return kinds.Union
}

func (h *Union) Members() []Hint {
	return h.members
}

func (h *Union) String() string {
	parts := make([]string, len(h.members))
	for i, member := range h.members {
		parts[i] = member.String()
	}
	return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
}

// Optional is sugar for Union[elem, None].
type Optional struct {
	elem Hint
}

func NewOptional(elem Hint) *Optional {
	return &Optional{elem: elem}
}

func (h *Optional) Kind() kinds.Kind {
	return kinds.Union
}

func (h *Optional) Elem() Hint {
	return h.elem
}

func (h *Optional) String() string {
	return fmt.Sprintf("Optional[%s]", h.elem)
}

// Constructor names a registered single-argument-constructible target type.
type Constructor struct {
	name string
}

func NewConstructor(name string) *Constructor {
	return &Constructor{name: name}
}

func (h *Constructor) Kind() kinds.Kind {
	return kinds.Constructor
}

func (h *Constructor) Name() string {
	return h.name
}

func (h *Constructor) String() string {
	return h.name
}
