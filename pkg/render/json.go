package render

import (
	"strconv"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/kindling-dev/kindling/pkg/coerce"
)

// JSON encodes a coerced value as JSON. Byte strings and datetimes are
// encoded as JSON strings; sets and tuples as arrays; dict keys are
// rendered to strings.
func JSON(v any) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return []byte("null"), nil
	case string:
		return gojay.Marshal(v)
	case int64:
		return []byte(strconv.FormatInt(v, 10)), nil
	case bool:
		return gojay.Marshal(v)
	case []byte:
		return gojay.Marshal(string(v))
	case time.Time:
		return gojay.Marshal(v.Format(TimeLayout))
	case []any:
		return gojay.MarshalJSONArray(jsonArray(v))
	case *coerce.Set:
		return gojay.MarshalJSONArray(jsonArray(v.Values()))
	case *coerce.Dict:
		return gojay.MarshalJSONObject(jsonObject{v})
	default:
		return gojay.Marshal(v)
	}
}

type jsonArray []any

func (a jsonArray) MarshalJSONArray(enc *gojay.Encoder) {
	for _, elem := range a {
		addValue(enc, elem)
	}
}

func (a jsonArray) IsNil() bool {
	return a == nil
}

type jsonObject struct {
	d *coerce.Dict
}

func (o jsonObject) MarshalJSONObject(enc *gojay.Encoder) {
	for _, entry := range o.d.Entries() {
		addKeyValue(enc, jsonKey(entry.Key), entry.Value)
	}
}

func (o jsonObject) IsNil() bool {
	return o.d == nil
}

func addValue(enc *gojay.Encoder, v any) {
	switch v := v.(type) {
	case nil:
		enc.AddNull()
	case string:
		enc.AddString(v)
	case int64:
		enc.AddInt64(v)
	case bool:
		enc.AddBool(v)
	case []byte:
		enc.AddString(string(v))
	case time.Time:
		enc.AddString(v.Format(TimeLayout))
	case []any:
		enc.AddArray(jsonArray(v))
	case *coerce.Set:
		enc.AddArray(jsonArray(v.Values()))
	case *coerce.Dict:
		enc.AddObject(jsonObject{v})
	default:
		enc.AddString(repr(v))
	}
}

func addKeyValue(enc *gojay.Encoder, key string, v any) {
	switch v := v.(type) {
	case nil:
		enc.AddNullKey(key)
	case string:
		enc.AddStringKey(key, v)
	case int64:
		enc.AddInt64Key(key, v)
	case bool:
		enc.AddBoolKey(key, v)
	case []byte:
		enc.AddStringKey(key, string(v))
	case time.Time:
		enc.AddStringKey(key, v.Format(TimeLayout))
	case []any:
		enc.AddArrayKey(key, jsonArray(v))
	case *coerce.Set:
		enc.AddArrayKey(key, jsonArray(v.Values()))
	case *coerce.Dict:
		enc.AddObjectKey(key, jsonObject{v})
	default:
		enc.AddStringKey(key, repr(v))
	}
}

// jsonKey renders a dict key as a JSON object key.
func jsonKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return repr(v)
}
