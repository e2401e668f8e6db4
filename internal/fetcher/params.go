// ABOUTME: Query-parameter plumbing between loosely-typed tool arguments and url.Values
// ABOUTME: Handles string coercion, repeated keys, and stored-vs-call-site merge precedence

package fetcher

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Values converts tool-supplied parameters into url.Values. Slice values add
// one occurrence per element; scalars are string-coerced.
func Values(params map[string]any) url.Values {
	v := url.Values{}
	for key, raw := range params {
		appendValue(v, key, raw)
	}
	return v
}

// Merge layers call-site parameters over a subscription's stored defaults.
// On key collision the call-site value replaces the stored one entirely.
func Merge(stored map[string]string, override map[string]any) url.Values {
	v := url.Values{}
	for key, value := range stored {
		v.Set(key, value)
	}
	for key, raw := range override {
		v.Del(key)
		appendValue(v, key, raw)
	}
	return v
}

// StringParams coerces tool-supplied default parameters into the string form
// the subscription store persists. Slice values collapse to a comma-joined
// list because the store keeps one value per key.
func StringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for key, raw := range params {
		if items, ok := raw.([]any); ok {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, coerceString(item))
			}
			out[key] = strings.Join(parts, ",")
			continue
		}
		out[key] = coerceString(raw)
	}
	return out
}

func appendValue(v url.Values, key string, raw any) {
	switch t := raw.(type) {
	case []any:
		for _, item := range t {
			appendValue(v, key, item)
		}
	case []string:
		for _, item := range t {
			v.Add(key, item)
		}
	default:
		v.Add(key, coerceString(raw))
	}
}

// coerceString renders JSON-decoded scalars without float artifacts: an
// integer-valued float64 like 10 must encode as "10", not "1e+01".
func coerceString(raw any) string {
	switch t := raw.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
