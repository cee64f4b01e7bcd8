package financery

// Normalize rewrites decoded JSON from the backend into the canonical shape.
// The backend encodes transaction direction as a boolean and references the
// owning account as "billId"; both quirks are fixed up here, before any typed
// decoding happens.
//
// Arrays are normalized element-wise. Objects without a "type" key, and
// values that are neither objects nor arrays, pass through unchanged. The
// function is idempotent: normalizing already-canonical data is a no-op.
func Normalize(data any) any {
	switch v := data.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out

	case map[string]any:
		raw, ok := v["type"]
		if !ok {
			return v
		}

		out := make(map[string]any, len(v)+1)
		for k, val := range v {
			out[k] = val
		}
		out["type"] = normalizeType(raw)

		// The canonical field wins when both are present.
		if _, ok := v["accountId"]; !ok {
			if billID, ok := v["billId"]; ok {
				out["accountId"] = billID
			}
		}

		return out

	default:
		return data
	}
}

// normalizeType maps the wire representation of a transaction direction to
// the canonical strings: boolean true is income, anything else is expense,
// except the canonical strings themselves which pass through.
func normalizeType(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return string(Income)
		}
		return string(Expense)
	case string:
		if t == string(Income) || t == string(Expense) {
			return t
		}
		return string(Expense)
	default:
		return string(Expense)
	}
}
