// Package compare provides generic helpers for writing Equal methods.
//
// Parsed definitions carry many optional clauses (pointer fields) and list
// clauses (slices). The helpers here keep the Equal implementations in the
// parser package to a single boolean expression per kind:
//
//	return f.equalCommon(&o.Common) &&
//	    f.Table == o.Table &&
//	    compare.Pointers(f.Type, o.Type) &&
//	    compare.Strings(f.Fields, o.Fields)
//
// Nil and empty slices compare equal, and two nil pointers compare equal, so
// an absent clause on both sides is never reported as a difference.
package compare
