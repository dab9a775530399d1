// Package probe supplies the synthetic sample values used to observe the
// output type of user transform functions. The table is a deliberate
// approximation: one canonical value per declared input type, probed once.
// It is not, and does not try to become, static type inference.
package probe

// Sample returns the canonical probe value for a declared schema type.
// Types without a canonical value probe with nil, the closest Go analog of
// an absent argument.
func Sample(schemaType string) any {
	switch schemaType {
	case "integer", "number":
		return 0
	case "string":
		return ""
	case "boolean":
		return false
	case "object":
		return map[string]any{}
	case "null":
		return nil
	case "array":
		return []any{}
	default:
		return nil
	}
}

// Invoke calls fn with the probe input. A panic inside fn marks the probe
// inconclusive instead of propagating, since fn is arbitrary user code.
func Invoke(fn func(any) any, in any) (out any, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	return fn(in), true
}
