package mcp

// Argument extraction helpers for the loosely-typed tools/call payload.

// StringArg returns args[key] as a string, or "" when absent.
func StringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// BoolArg returns args[key] as a bool, or def when absent.
func BoolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

// IntArg returns args[key] as an int, or def when absent. JSON numbers decode
// as float64, so both are accepted.
func IntArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// StringSliceArg returns args[key] as a string slice, dropping non-string
// elements. Returns nil when absent.
func StringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
