package coerce_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/kindling-dev/kindling/pkg/coerce"
	"github.com/kindling-dev/kindling/pkg/hint"
	"github.com/kindling-dev/kindling/pkg/literal"
)

func newEngine(t *testing.T) *coerce.Engine {
	t.Helper()

	engine, err := coerce.New(slogt.New(t), coerce.Config{})
	require.NoError(t, err)
	return engine
}

func TestPrimitiveMatrix(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	for _, tc := range []struct {
		name  string
		token string
		hint  hint.Hint
		want  any
	}{
		{"str identity", "'hello'", hint.Str, "hello"},
		{"raw to str", "hello", hint.Str, "hello"},
		{"int to str", "42", hint.Str, "42"},
		{"bytes to str", "b'xyz'", hint.Str, "xyz"},
		{"int identity", "5", hint.Int, int64(5)},
		{"negative int", "-5", hint.Int, int64(-5)},
		{"raw decimal to int", "007", hint.Int, int64(7)},
		{"str to int", "'12'", hint.Int, int64(12)},
		{"str to bytes", "'xyz'", hint.Bytes, []byte("xyz")},
		{"raw to bytes", "xyz", hint.Bytes, []byte("xyz")},
		{"bytes identity", "b'xyz'", hint.Bytes, []byte("xyz")},
		{"bool true", "True", hint.Bool, true},
		{"bool false", "False", hint.Bool, false},
		{"quoted bool", "'True'", hint.Bool, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := engine.Convert(tc.token, tc.hint)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestPrimitiveMatrixFailures(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("non-decimal string to int", func(t *testing.T) {
		_, err := engine.Convert("abc", hint.Int)
		var formatErr coerce.FormatError
		require.ErrorAs(t, err, &formatErr)
		require.Equal(t, "abc", formatErr.Text)
	})

	t.Run("bytes to int is unsupported", func(t *testing.T) {
		_, err := engine.Convert("b'xyz'", hint.Int)
		var unsupported coerce.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("bad bool text", func(t *testing.T) {
		_, err := engine.Convert("yes", hint.Bool)
		var formatErr coerce.FormatError
		require.ErrorAs(t, err, &formatErr)
	})
}

func TestIntToBytes(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	out, err := engine.Convert("8", hint.Bytes)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 8}, out)

	out, err = engine.Convert("-1", hint.Bytes)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, out)
}

func TestRoundTrips(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	for _, tc := range []struct {
		name string
		hint hint.Hint
		want any
	}{
		{"str", hint.Str, "some text"},
		{"int", hint.Int, int64(-402)},
		{"bytes", hint.Bytes, []byte("payload")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var token string
			switch want := tc.want.(type) {
			case string:
				token = want
			case int64:
				token = fmt.Sprintf("%d", want)
			case []byte:
				token = fmt.Sprintf("b%q", want)
			}

			out, err := engine.Convert(token, tc.hint)
			require.NoError(t, err)
			require.Equal(t, tc.want, out)
		})
	}
}

func TestDateTimeFormats(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	instant := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, token := range []string{
		"2020-01-02-03:04:05",
		"2020-01-02 03:04:05",
		"2020/01/02 03:04:05",
		"20200102030405",
	} {
		t.Run(token, func(t *testing.T) {
			out, err := engine.Convert(token, hint.DateTime)
			require.NoError(t, err)
			require.Equal(t, instant, out)
		})
	}

	midnight := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, token := range []string{"2020/01/02", "2020-01-02"} {
		t.Run(token, func(t *testing.T) {
			out, err := engine.Convert(token, hint.DateTime)
			require.NoError(t, err)
			require.Equal(t, midnight, out)
		})
	}

	t.Run("date truncates to midnight", func(t *testing.T) {
		out, err := engine.Convert("2020-01-02 03:04:05", hint.Date)
		require.NoError(t, err)
		require.Equal(t, midnight, out)
	})

	t.Run("unrecognized format", func(t *testing.T) {
		_, err := engine.Convert("01/02/2020", hint.DateTime)
		var formatErr coerce.FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("int to datetime is unsupported", func(t *testing.T) {
		_, err := engine.Convert("20", hint.DateTime)
		var unsupported coerce.UnsupportedError
		require.ErrorAs(t, err, &unsupported)
	})
}

func TestUnionOrder(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("first match wins", func(t *testing.T) {
		out, err := engine.Convert("5", hint.NewUnion(hint.Int, hint.Str))
		require.NoError(t, err)
		require.Equal(t, int64(5), out)
	})

	t.Run("declaration order is honored", func(t *testing.T) {
		out, err := engine.Convert("5", hint.NewUnion(hint.Str, hint.Int))
		require.NoError(t, err)
		require.Equal(t, "5", out)
	})

	t.Run("falls through failing members", func(t *testing.T) {
		out, err := engine.Convert("abc", hint.NewUnion(hint.Int, hint.DateTime, hint.Str))
		require.NoError(t, err)
		require.Equal(t, "abc", out)
	})

	t.Run("exhausted union reports member failures", func(t *testing.T) {
		_, err := engine.Convert("abc", hint.NewUnion(hint.Int, hint.DateTime))
		var unionErr *coerce.UnionError
		require.ErrorAs(t, err, &unionErr)
		require.Len(t, unionErr.Errs, 2)
	})
}

func TestOptional(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("none token", func(t *testing.T) {
		out, err := engine.Convert("None", hint.NewOptional(hint.DateTime))
		require.NoError(t, err)
		require.Nil(t, out)
	})

	t.Run("value converts", func(t *testing.T) {
		out, err := engine.Convert("2023-09-24 12:52:33", hint.NewOptional(hint.DateTime))
		require.NoError(t, err)
		require.Equal(t, time.Date(2023, 9, 24, 12, 52, 33, 0, time.UTC), out)
	})

	t.Run("quoted none is not absent", func(t *testing.T) {
		out, err := engine.Convert("['None']", hint.NewList(hint.NewOptional(hint.Str)))
		require.NoError(t, err)
		require.Equal(t, []any{"None"}, out)
	})

	t.Run("none never matches a value", func(t *testing.T) {
		_, err := engine.Convert("5", hint.None)
		var mismatch coerce.MismatchError
		require.ErrorAs(t, err, &mismatch)
	})
}

func TestListCoercion(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("list of ints", func(t *testing.T) {
		out, err := engine.Convert("[1, 2, 3]", hint.NewList(hint.Int))
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), int64(2), int64(3)}, out)
	})

	t.Run("list of bytes", func(t *testing.T) {
		out, err := engine.Convert(`[b"x", b"y"]`, hint.NewList(hint.Bytes))
		require.NoError(t, err)
		require.Equal(t, []any{[]byte("x"), []byte("y")}, out)
	})

	t.Run("element failure names the index", func(t *testing.T) {
		_, err := engine.Convert("[1, abc, 3]", hint.NewList(hint.Int))
		require.Error(t, err)
		require.Contains(t, err.Error(), "element 1")
		var formatErr coerce.FormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("no single-element fallback for raw", func(t *testing.T) {
		_, err := engine.Convert("abc", hint.NewList(hint.Str))
		var syntaxErr coerce.SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		require.Equal(t, "abc", syntaxErr.Raw)
	})

	t.Run("tuple literal is not a list", func(t *testing.T) {
		_, err := engine.Convert("(1, 2)", hint.NewList(hint.Int))
		var mismatch coerce.MismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("union of list element hints", func(t *testing.T) {
		out, err := engine.Convert("[1, '2023-09-24 12:52:33']",
			hint.NewList(hint.NewUnion(hint.DateTime, hint.Str)))
		require.NoError(t, err)
		require.Equal(t, []any{"1", time.Date(2023, 9, 24, 12, 52, 33, 0, time.UTC)}, out)
	})
}

func TestSetCoercion(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("set of bytes", func(t *testing.T) {
		out, err := engine.Convert("{a, b, c}", hint.NewSet(hint.Bytes))
		require.NoError(t, err)

		set, ok := out.(*coerce.Set)
		require.True(t, ok)
		require.Equal(t, []any{[]byte("a"), []byte("b"), []byte("c")}, set.Values())
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		out, err := engine.Convert("{1, 2, 1}", hint.NewSet(hint.Int))
		require.NoError(t, err)

		set := out.(*coerce.Set)
		require.Equal(t, []any{int64(1), int64(2)}, set.Values())
	})

	t.Run("tuples with embedded separators stay distinct", func(t *testing.T) {
		out, err := engine.Convert(`{("a", "b"), ("a,s:b",)}`, hint.Any)
		require.NoError(t, err)

		set := out.(*coerce.Set)
		require.Equal(t, 2, set.Len())
		require.Equal(t, []any{
			[]any{"a", "b"},
			[]any{"a,s:b"},
		}, set.Values())
	})

	t.Run("empty braces are not a set", func(t *testing.T) {
		_, err := engine.Convert("{}", hint.NewSet(hint.Int))
		var mismatch coerce.MismatchError
		require.ErrorAs(t, err, &mismatch)
	})
}

func TestDictCoercion(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("empty braces are an empty dict", func(t *testing.T) {
		out, err := engine.Convert("{}", hint.NewDict(hint.Str, hint.Int))
		require.NoError(t, err)
		require.Equal(t, 0, out.(*coerce.Dict).Len())
	})

	t.Run("single entry with coerced key and value", func(t *testing.T) {
		out, err := engine.Convert("{1: 2}", hint.NewDict(hint.Str, hint.Int))
		require.NoError(t, err)

		d := out.(*coerce.Dict)
		require.Equal(t, 1, d.Len())
		v, ok := d.Get("1")
		require.True(t, ok)
		require.Equal(t, int64(2), v)
	})

	t.Run("duplicate keys last write wins", func(t *testing.T) {
		out, err := engine.Convert("{a: 1, b: 2, a: 3}", hint.NewDict(hint.Str, hint.Int))
		require.NoError(t, err)

		d := out.(*coerce.Dict)
		require.Equal(t, []coerce.Entry{
			{Key: "a", Value: int64(3)},
			{Key: "b", Value: int64(2)},
		}, d.Entries())
	})

	t.Run("nested dict values", func(t *testing.T) {
		out, err := engine.Convert("{1: {3: '2023-09-24 12:52:33'}}",
			hint.NewDict(hint.Str, hint.NewDict(hint.Int, hint.DateTime)))
		require.NoError(t, err)

		outer := out.(*coerce.Dict)
		inner, ok := outer.Get("1")
		require.True(t, ok)
		v, ok := inner.(*coerce.Dict).Get(int64(3))
		require.True(t, ok)
		require.Equal(t, time.Date(2023, 9, 24, 12, 52, 33, 0, time.UTC), v)
	})

	t.Run("key failure is reported", func(t *testing.T) {
		_, err := engine.Convert("{a: 1}", hint.NewDict(hint.Int, hint.Int))
		require.Error(t, err)
		require.Contains(t, err.Error(), "key")
	})

	t.Run("list literal is not a dict", func(t *testing.T) {
		_, err := engine.Convert("[1, 2]", hint.NewDict(hint.Str, hint.Int))
		var mismatch coerce.MismatchError
		require.ErrorAs(t, err, &mismatch)
	})
}

func TestTupleCoercion(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("positional element hints", func(t *testing.T) {
		out, err := engine.Convert("(1, 2)", hint.NewTuple(hint.Int, hint.Str))
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), "2"}, out)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, err := engine.Convert("(1, 2)", hint.NewTuple(hint.Int, hint.Int, hint.Int))
		var arityErr coerce.ArityError
		require.ErrorAs(t, err, &arityErr)
		require.Equal(t, 3, arityErr.Want)
		require.Equal(t, 2, arityErr.Got)
	})

	t.Run("none element hint", func(t *testing.T) {
		out, err := engine.Convert("(1, None)", hint.NewTuple(hint.Int, hint.None))
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), nil}, out)
	})

	t.Run("optional element hint", func(t *testing.T) {
		out, err := engine.Convert("(1, None)", hint.NewTuple(hint.Int, hint.NewOptional(hint.Str)))
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), nil}, out)
	})
}

func TestAnyHint(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	t.Run("raw passes through as text", func(t *testing.T) {
		out, err := engine.Convert("hello", hint.Any)
		require.NoError(t, err)
		require.Equal(t, "hello", out)
	})

	t.Run("bare constants stay text at top level", func(t *testing.T) {
		out, err := engine.Convert("True", hint.Any)
		require.NoError(t, err)
		require.Equal(t, "True", out)

		out, err = engine.Convert("[True]", hint.Any)
		require.NoError(t, err)
		require.Equal(t, []any{true}, out)
	})

	t.Run("containers pass through untyped", func(t *testing.T) {
		out, err := engine.Convert("[1, a, (2, b)]", hint.Any)
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), "a", []any{int64(2), "b"}}, out)
	})

	t.Run("mapping passes through", func(t *testing.T) {
		out, err := engine.Convert("{a: 1}", hint.Any)
		require.NoError(t, err)

		d := out.(*coerce.Dict)
		v, ok := d.Get("a")
		require.True(t, ok)
		require.Equal(t, int64(1), v)
	})
}

func TestUnionWithContainerFallback(t *testing.T) {
	t.Parallel()
	engine := newEngine(t)

	h := hint.NewOptional(hint.NewUnion(hint.NewDict(hint.Str, hint.NewOptional(hint.Int)), hint.Str))

	t.Run("dict shape converts", func(t *testing.T) {
		out, err := engine.Convert("{xxx: 1}", h)
		require.NoError(t, err)

		d, ok := out.(*coerce.Dict)
		require.True(t, ok)
		v, ok := d.Get("xxx")
		require.True(t, ok)
		require.Equal(t, int64(1), v)
	})

	t.Run("dict with none value", func(t *testing.T) {
		out, err := engine.Convert("{xxx: None}", h)
		require.NoError(t, err)

		d := out.(*coerce.Dict)
		v, ok := d.Get("xxx")
		require.True(t, ok)
		require.Nil(t, v)
	})

	t.Run("unconvertible dict falls back to str", func(t *testing.T) {
		out, err := engine.Convert("{xxx: yyy}", h)
		require.NoError(t, err)
		require.Equal(t, `{"xxx": "yyy"}`, out)
	})

	t.Run("none stays none", func(t *testing.T) {
		out, err := engine.Convert("None", h)
		require.NoError(t, err)
		require.Nil(t, out)
	})
}

func TestConstructorRegistry(t *testing.T) {
	t.Parallel()

	register := func(engine *coerce.Engine) {
		engine.Register("duration", func(v literal.Value) (any, error) {
			switch v := v.(type) {
			case literal.Str:
				return time.ParseDuration(string(v))
			case literal.Raw:
				return time.ParseDuration(string(v))
			default:
				return nil, fmt.Errorf("duration requires text, got %s", v)
			}
		})
	}

	t.Run("accepting constructor", func(t *testing.T) {
		engine := newEngine(t)
		register(engine)

		out, err := engine.Convert("1h30m", hint.NewConstructor("duration"))
		require.NoError(t, err)
		require.Equal(t, 90*time.Minute, out)
	})

	t.Run("rejecting constructor", func(t *testing.T) {
		engine := newEngine(t)
		register(engine)

		_, err := engine.Convert("not-a-duration", hint.NewConstructor("duration"))
		var ctorErr coerce.ConstructorError
		require.ErrorAs(t, err, &ctorErr)
		require.Equal(t, "duration", ctorErr.Name)
	})

	t.Run("unregistered name", func(t *testing.T) {
		engine := newEngine(t)

		_, err := engine.Convert("anything", hint.NewConstructor("widget"))
		require.ErrorIs(t, err, coerce.ErrUnknownConstructor)
	})

	t.Run("constructor as union fallback", func(t *testing.T) {
		engine := newEngine(t)
		register(engine)

		out, err := engine.Convert("45s", hint.NewUnion(hint.Int, hint.NewConstructor("duration")))
		require.NoError(t, err)
		require.Equal(t, 45*time.Second, out)
	})
}

func TestDepthLimit(t *testing.T) {
	t.Parallel()

	engine, err := coerce.New(slogt.New(t), coerce.Config{MaxDepth: 4})
	require.NoError(t, err)

	deep := strings.Repeat("[", 10) + "1" + strings.Repeat("]", 10)
	_, err = engine.Convert(deep, hint.Any)

	// The parser degrades over-deep tokens to Raw, so the failure surfaces
	// as text rather than a stack overflow.
	require.NoError(t, err)

	v := literal.Parse(deep)
	_, err = engine.Coerce(v, hint.Any)
	var depthErr coerce.DepthError
	require.ErrorAs(t, err, &depthErr)
	require.Equal(t, 4, depthErr.Limit)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	_, err := coerce.New(slogt.New(t), coerce.Config{MaxDepth: -1})
	require.Error(t, err)

	engine, err := coerce.New(slogt.New(t), coerce.Config{})
	require.NoError(t, err)
	require.Equal(t, literal.DefaultMaxDepth, engine.Config.MaxDepth)
}
