package hint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kindling-dev/kindling/pkg/hint"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		h    hint.Hint
		want hint.Hint
	}{
		{
			"primitive passes through",
			hint.Int,
			hint.Int,
		},
		{
			"optional becomes nullable union",
			hint.NewOptional(hint.Int),
			hint.NewUnion(hint.Int, hint.None),
		},
		{
			"single member union collapses",
			hint.NewUnion(hint.Str),
			hint.Str,
		},
		{
			"nested unions flatten in declaration order",
			hint.NewUnion(hint.NewUnion(hint.Int, hint.Str), hint.Bytes),
			hint.NewUnion(hint.Int, hint.Str, hint.Bytes),
		},
		{
			"optional inside union flattens",
			hint.NewUnion(hint.NewOptional(hint.Int), hint.Str),
			hint.NewUnion(hint.Int, hint.None, hint.Str),
		},
		{
			"duplicate none kept once",
			hint.NewUnion(hint.None, hint.NewOptional(hint.Int)),
			hint.NewUnion(hint.None, hint.Int),
		},
		{
			"nested optional is one nullable layer",
			hint.NewOptional(hint.NewOptional(hint.Str)),
			hint.NewUnion(hint.Str, hint.None),
		},
		{
			"containers left for lazy resolution",
			hint.NewList(hint.NewOptional(hint.Int)),
			hint.NewList(hint.NewOptional(hint.Int)),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, hint.Resolve(tc.h))
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	t.Parallel()

	hints := []hint.Hint{
		hint.NewOptional(hint.NewUnion(hint.Int, hint.NewOptional(hint.Str))),
		hint.NewUnion(hint.NewList(hint.Int), hint.None),
		hint.DateTime,
	}

	for _, h := range hints {
		once := hint.Resolve(h)
		require.Equal(t, once, hint.Resolve(once))
	}
}
