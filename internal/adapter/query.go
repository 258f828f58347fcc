package adapter

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// encodeQuery serializes a mapping of scalar parameters into a canonical
// query component: an empty string for an empty (or all-nil) mapping,
// otherwise a leading "?" followed by "&"-joined pairs with both key and
// value percent-encoded. Keys are sorted so the same mapping always yields
// the same string — the result doubles as an in-flight de-duplication key.
//
// Nil values (and nil typed pointers) are omitted entirely. Booleans render
// as literal true/false, numbers in their decimal form. Spaces encode as
// %20, never "+".
func encodeQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := encodeScalar(params[k])
		if !ok {
			continue
		}
		pairs = append(pairs, queryEscape(k)+"="+queryEscape(v))
	}

	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

// encodeScalar renders a scalar parameter value, reporting false for values
// that must be dropped (nil and nil pointers).
func encodeScalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case *string:
		if val == nil {
			return "", false
		}
		return *val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case *int64:
		if val == nil {
			return "", false
		}
		return strconv.FormatInt(*val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}

// queryEscape percent-encodes a key or value. url.QueryEscape encodes spaces
// as "+", which the server's decoder does not accept, so rewrite them.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
