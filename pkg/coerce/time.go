package coerce

import (
	"time"

	"github.com/kindling-dev/kindling/pkg/hint"
)

// timeLayouts are tried in this fixed order; the first match wins.
var timeLayouts = []string{
	"2006-01-02-15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"20060102150405",
	"2006/01/02",
	"2006-01-02",
}

func parseTime(text string, h hint.Hint, dateOnly bool) (any, error) {
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if dateOnly {
			year, month, day := t.Date()
			t = time.Date(year, month, day, 0, 0, 0, 0, t.Location())
		}
		return t, nil
	}

	return nil, FormatError{Text: text, Want: h}
}
