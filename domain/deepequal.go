package domain

import "reflect"

// visitedPair identifies a pair of containers currently being compared.
type visitedPair struct {
	a, b uintptr
}

// DeepEqual reports whether two decoded JSON values (maps, slices, scalars)
// are structurally equal. A pair of containers already on the comparison
// stack is assumed equal, so cyclic input terminates instead of hanging or
// overflowing the stack.
func DeepEqual(a, b any) bool {
	return deepEqual(a, b, make(map[visitedPair]bool))
}

func deepEqual(a, b any, seen map[visitedPair]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			return false
		}
		return mapsEqual(av, bv, seen)
	case []any:
		bv, ok := b.([]any)
		if !ok {
			return false
		}
		return slicesEqual(av, bv, seen)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		// Values that did not come from encoding/json (hand-built test
		// fixtures, json.Number when callers opt in).
		return reflect.DeepEqual(a, b)
	}
}

func mapsEqual(a, b map[string]any, seen map[visitedPair]bool) bool {
	pa := reflect.ValueOf(a).Pointer()
	pb := reflect.ValueOf(b).Pointer()
	if pa == pb {
		return true
	}
	pair := visitedPair{pa, pb}
	if seen[pair] {
		return true
	}
	seen[pair] = true

	if len(a) != len(b) {
		return false
	}
	for key, valA := range a {
		valB, ok := b[key]
		if !ok || !deepEqual(valA, valB, seen) {
			return false
		}
	}
	return true
}

func slicesEqual(a, b []any, seen map[visitedPair]bool) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	pa := reflect.ValueOf(a).Pointer()
	pb := reflect.ValueOf(b).Pointer()
	if pa == pb {
		return true
	}
	pair := visitedPair{pa, pb}
	if seen[pair] {
		return true
	}
	seen[pair] = true

	for i := range a {
		if !deepEqual(a[i], b[i], seen) {
			return false
		}
	}
	return true
}
