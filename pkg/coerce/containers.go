package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dict is an insertion-ordered mapping with last-write-wins semantics for
// duplicate keys. Keys may be any coerced leaf value, including ones Go
// maps cannot hold directly, such as []byte.
type Dict struct {
	pairs []Entry
	index map[string]int
}

type Entry struct {
	Key   any
	Value any
}

func NewDict() *Dict {
	return &Dict{index: map[string]int{}}
}

func (d *Dict) Put(key, value any) {
	id := identity(key)
	if i, ok := d.index[id]; ok {
		d.pairs[i] = Entry{Key: key, Value: value}
		return
	}
	d.index[id] = len(d.pairs)
	d.pairs = append(d.pairs, Entry{Key: key, Value: value})
}

func (d *Dict) Get(key any) (any, bool) {
	if i, ok := d.index[identity(key)]; ok {
		return d.pairs[i].Value, true
	}
	return nil, false
}

func (d *Dict) Len() int {
	return len(d.pairs)
}

// Entries returns the pairs in insertion order.
func (d *Dict) Entries() []Entry {
	return d.pairs
}

func (d *Dict) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, entry := range d.pairs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %v", entry.Key, entry.Value)
	}
	sb.WriteString("}")
	return sb.String()
}

// Set is an insertion-ordered collection of unique coerced values.
type Set struct {
	elems []any
	index map[string]struct{}
}

func NewSet() *Set {
	return &Set{index: map[string]struct{}{}}
}

func (s *Set) Add(v any) {
	id := identity(v)
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.elems = append(s.elems, v)
}

func (s *Set) Has(v any) bool {
	_, ok := s.index[identity(v)]
	return ok
}

func (s *Set) Len() int {
	return len(s.elems)
}

// Values returns the elements in insertion order.
func (s *Set) Values() []any {
	return s.elems
}

func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, elem := range s.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", elem)
	}
	sb.WriteString("}")
	return sb.String()
}

// identity renders a coerced value as a type-tagged key so equal values
// collide and values of different types never do. String and byte
// components are quoted so the separators joining composite identities
// cannot be forged by element content.
func identity(v any) string {
	switch v := v.(type) {
	case nil:
		return "n:"
	case string:
		return "s:" + strconv.Quote(v)
	case int64:
		return fmt.Sprintf("i:%d", v)
	case bool:
		return fmt.Sprintf("o:%t", v)
	case []byte:
		return "b:" + strconv.Quote(string(v))
	case time.Time:
		return "t:" + v.Format(time.RFC3339Nano)
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = identity(elem)
		}
		return "q:(" + strings.Join(parts, ",") + ")"
	case *Set:
		parts := make([]string, len(v.elems))
		for i, elem := range v.elems {
			parts[i] = identity(elem)
		}
		return "e:{" + strings.Join(parts, ",") + "}"
	case *Dict:
		parts := make([]string, len(v.pairs))
		for i, entry := range v.pairs {
			parts[i] = identity(entry.Key) + "=" + identity(entry.Value)
		}
		return "d:{" + strings.Join(parts, ",") + "}"
	default:
		return fmt.Sprintf("x:%v", v)
	}
}
