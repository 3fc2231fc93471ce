// Package maputil deep-copies decoded JSON/YAML documents so that host
// documents are never mutated while a manifest is filtered.
package maputil

// DeepCopyMap performs a deep copy of a map[string]interface{}.
func DeepCopyMap(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}

	dst := make(map[string]interface{}, len(src))

	for k, v := range src {
		dst[k] = DeepCopyValue(v)
	}

	return dst
}

// DeepCopySlice performs a deep copy of a []interface{}.
func DeepCopySlice(src []interface{}) []interface{} {
	if src == nil {
		return nil
	}

	dst := make([]interface{}, len(src))

	for i, v := range src {
		dst[i] = DeepCopyValue(v)
	}

	return dst
}

// DeepCopyValue copies maps and slices recursively. Host pipelines written in
// Go may hand over []string and map[string]string values next to decoded
// JSON ones, so those are copied too. Scalars are returned as-is.
func DeepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return DeepCopyMap(val)
	case []interface{}:
		return DeepCopySlice(val)
	case []string:
		if val == nil {
			return val
		}

		out := make([]string, len(val))
		copy(out, val)

		return out
	case map[string]string:
		if val == nil {
			return val
		}

		out := make(map[string]string, len(val))
		for k, s := range val {
			out[k] = s
		}

		return out
	default:
		return v
	}
}
