package hint

import "github.com/kindling-dev/kindling/pkg/hint/kinds"

// Resolve normalizes a hint into the form the coercion engine dispatches
// on: Optional becomes Union[elem, None], nested unions are flattened, and
// a union with a single member collapses to that member. Container element
// hints are left untouched; they resolve lazily, per element, during
// coercion. Resolve is total and idempotent.
func Resolve(h Hint) Hint {
	switch h := h.(type) {
	case *Optional:
		return Resolve(NewUnion(h.Elem(), None))

	case *Union:
		members := flatten(nil, h.Members())
		if len(members) == 1 {
			return members[0]
		}
		return NewUnion(members...)

	default:
		return h
	}
}

// flatten expands nested unions and optionals in declaration order,
// keeping only the first None member it absorbs.
func flatten(dst []Hint, members []Hint) []Hint {
	for _, member := range members {
		switch member := member.(type) {
		case *Optional:
			dst = flatten(dst, []Hint{member.Elem()})
			dst = appendNone(dst)
		case *Union:
			dst = flatten(dst, member.Members())
		case Kind:
			if member.Kind() == kinds.None {
				dst = appendNone(dst)
				continue
			}
			dst = append(dst, member)
		default:
			dst = append(dst, member)
		}
	}
	return dst
}

func appendNone(dst []Hint) []Hint {
	for _, h := range dst {
		if h.Kind() == kinds.None {
			return dst
		}
	}
	return append(dst, None)
}
