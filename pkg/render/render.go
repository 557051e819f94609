// Package render turns coerced values back into text, either as literal
// notation for terminal output or as JSON.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kindling-dev/kindling/pkg/coerce"
)

// TimeLayout is the textual form used for rendered datetime values.
const TimeLayout = "2006-01-02 15:04:05"

// Text renders a coerced value for terminal output. A top-level string is
// printed bare; strings nested inside containers are quoted.
func Text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return repr(v)
}

func repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case []byte:
		return "b" + strconv.Quote(string(v))
	case time.Time:
		return v.Format(TimeLayout)
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = repr(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *coerce.Set:
		elems := v.Values()
		parts := make([]string, len(elems))
		for i, elem := range elems {
			parts[i] = repr(elem)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *coerce.Dict:
		entries := v.Entries()
		parts := make([]string, len(entries))
		for i, entry := range entries {
			parts[i] = repr(entry.Key) + ": " + repr(entry.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
