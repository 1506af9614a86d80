package compare

// Pointers compares two optional values for equality.
// Returns true if both are nil, or both are non-nil with equal values.
//
// Example:
//
//	func (f *FieldDef) Equal(other Definition) bool {
//	    o, ok := other.(*FieldDef)
//	    return ok && compare.Pointers(f.Type, o.Type) &&
//	           compare.Pointers(f.Default, o.Default)
//	}
func Pointers[T comparable](a, b *T) bool {
	if (a != nil) != (b != nil) {
		return false
	}
	if a != nil && *a != *b {
		return false
	}
	return true
}

// PointersWithEqual compares two pointers using a custom equality function.
// Returns true if both are nil, or both are non-nil and the equality function returns true.
//
// Example:
//
//	compare.PointersWithEqual(u.Duration, o.Duration,
//	    func(a, b *Durations) bool { return a.Equal(b) })
func PointersWithEqual[T any](a, b *T, equalFunc func(*T, *T) bool) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return equalFunc(a, b)
}

// Slices compares two slices for equality using an equality function for elements.
// Returns true if both slices have the same length and all corresponding elements are equal.
//
// Example:
//
//	compare.Slices(fn.Args, o.Args,
//	    func(a, b FunctionArg) bool { return a == b })
func Slices[T any](a, b []T, equalFunc func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalFunc(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Strings compares two string slices element by element, treating nil and
// empty slices as equal.
func Strings(a, b []string) bool {
	return Slices(a, b, func(x, y string) bool { return x == y })
}

// SlicesUnordered compares two slices for equality regardless of order.
// Returns true if both slices contain the same elements (by the equality function).
//
// Example:
//
//	// ROLES OWNER, EDITOR equals ROLES EDITOR, OWNER
//	compare.SlicesUnordered(u.Roles, o.Roles,
//	    func(a, b string) bool { return strings.EqualFold(a, b) })
func SlicesUnordered[T any](a, b []T, equalFunc func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}

	// Track which elements in b have been matched
	matched := make([]bool, len(b))

	for _, aElem := range a {
		found := false
		for j, bElem := range b {
			if !matched[j] && equalFunc(aElem, bElem) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Maps compares two maps for equality.
// Returns true if both maps have the same keys and all corresponding values are equal.
//
// Example:
//
//	compare.Maps(g.Clauses, o.Clauses)
func Maps[K comparable, V comparable](a, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
