package stripeapi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"
)

func decode(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// lookup evaluates a JSONPath against doc and returns the scalar as a string.
// Missing keys and nulls yield "".
func lookup(doc any, expr string) string {
	val, err := jsonpath.Get(expr, doc)
	if err != nil || val == nil {
		return ""
	}
	if arr, ok := val.([]any); ok {
		if len(arr) != 1 {
			return ""
		}
		val = arr[0]
	}
	switch t := val.(type) {
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

// formOf drops empty values so optional fields are not sent.
func formOf(fields map[string]string) url.Values {
	form := url.Values{}
	for k, v := range fields {
		if v = strings.TrimSpace(v); v != "" {
			form.Set(k, v)
		}
	}
	return form
}
