package schema

import (
	"reflect"

	"github.com/pseudomuto/definer/pkg/parser"
)

// RenamePair represents a rename operation from OldKey to NewKey
type RenamePair struct {
	OldKey string
	NewKey string
}

// DetectRenames identifies potential rename operations between current and target states.
//
// The algorithm finds definitions that:
// 1. Exist in current but not in target (by key)
// 2. Have a matching definition in target (by properties, excluding name)
// 3. That target definition doesn't exist in current (by key)
//
// When all three conditions are met, it's detected as a rename operation.
//
// Returns:
//   - renames: RenamePair values in current's declaration order
//   - removed: current keys that weren't renamed (for drop detection)
//   - added: target keys that weren't renamed (for create detection)
func DetectRenames(current, target Definitions) (renames []RenamePair, removed, added []string) {
	matchedTarget := make(map[string]bool)

	for _, currentKey := range current.Keys() {
		if _, exists := target.Definition(currentKey); exists {
			continue // Definition exists in both, not a rename
		}
		currentDef, _ := current.Definition(currentKey)

		renamed := false
		for _, targetKey := range target.Keys() {
			if matchedTarget[targetKey] {
				continue
			}
			if _, exists := current.Definition(targetKey); exists {
				continue // Target definition exists in current, not a rename target
			}

			targetDef, _ := target.Definition(targetKey)
			if PropertiesMatch(currentDef, targetDef) {
				renames = append(renames, RenamePair{OldKey: currentKey, NewKey: targetKey})
				matchedTarget[targetKey] = true
				renamed = true
				break
			}
		}

		if !renamed {
			removed = append(removed, currentKey)
		}
	}

	for _, targetKey := range target.Keys() {
		if _, exists := current.Definition(targetKey); exists || matchedTarget[targetKey] {
			continue
		}
		added = append(added, targetKey)
	}

	return renames, removed, added
}

// PropertiesMatch reports whether a and b are equal apart from their names.
func PropertiesMatch(a, b parser.Definition) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	v := reflect.ValueOf(a)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}

	// Compare a shallow copy of a carrying b's name.
	cp := reflect.New(v.Elem().Type())
	cp.Elem().Set(v.Elem())

	renamed, ok := cp.Interface().(parser.Definition)
	if !ok {
		return false
	}
	renamed.Base().Name = b.Base().Name

	return renamed.Equal(b)
}
