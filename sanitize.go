package waypost

// Clean removes empty values from a decoded JSON document before it is
// persisted. Empty means the empty string, the literal string "undefined",
// or nil. Arrays and objects whose members all clean away collapse into
// absence at their parent; the top level is the exception and always comes
// back as a (possibly empty) map.
func Clean(doc map[string]any) map[string]any {
	cleaned, ok := clean(doc)
	if !ok {
		return map[string]any{}
	}
	m, ok := cleaned.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// clean reports the cleaned value and whether anything survived. It never
// fails: every input shape is handled structurally.
func clean(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case string:
		if val == "" || val == "undefined" {
			return nil, false
		}
		return val, true
	case []any:
		out := make([]any, 0, len(val))
		for _, el := range val {
			if c, ok := clean(el); ok {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, el := range val {
			if c, ok := clean(el); ok {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return val, true
	}
}
