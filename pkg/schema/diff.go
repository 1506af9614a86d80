package schema

import (
	"fmt"

	"github.com/pseudomuto/definer/pkg/parser"
)

const (
	// ChangeAdded indicates a definition only present in the target schema
	ChangeAdded ChangeType = "ADDED"
	// ChangeRemoved indicates a definition only present in the current schema
	ChangeRemoved ChangeType = "REMOVED"
	// ChangeModified indicates a definition present in both with different properties
	ChangeModified ChangeType = "MODIFIED"
	// ChangeRenamed indicates a definition whose name changed but nothing else
	ChangeRenamed ChangeType = "RENAMED"
)

type (
	// ChangeType represents the type of schema difference
	ChangeType string

	// Change is one difference between two schemas. Current is nil for
	// additions, Target is nil for removals. NewKey is only set for renames.
	Change struct {
		Type    ChangeType
		Kind    parser.Kind
		Key     string
		NewKey  string
		Current parser.Definition
		Target  parser.Definition
	}
)

func (c Change) String() string {
	if c.Type == ChangeRenamed {
		return fmt.Sprintf("%s %s %s -> %s", c.Type, c.Kind, c.Key, c.NewKey)
	}
	return fmt.Sprintf("%s %s %s", c.Type, c.Kind, c.Key)
}

// Diff compares current and target schemas and returns the changes needed to
// go from one to the other. Sections are visited in Sections order; within a
// section renames come first, then additions and modifications in target
// order, then removals in current order.
//
// Definitions are compared with their Equal methods, so layout differences in
// the source text never produce a change.
func Diff(current, target *Schema) []Change {
	var changes []Change
	for _, pair := range pairSections(current, target) {
		changes = append(changes, diffSection(pair.kind, pair.current, pair.target)...)
	}
	return changes
}

type sectionPair struct {
	kind    parser.Kind
	current Definitions
	target  Definitions
}

// pairSections lines up the sections of both schemas by kind. A kind only
// present on one side is paired with an empty collection.
func pairSections(current, target *Schema) []sectionPair {
	currentSections := current.Sections()
	targetSections := target.Sections()

	byKind := make(map[parser.Kind]Definitions, len(targetSections))
	for _, sec := range targetSections {
		byKind[sec.Kind] = sec.Defs
	}

	pairs := make([]sectionPair, 0, len(currentSections))
	seen := make(map[parser.Kind]bool, len(currentSections))
	for _, sec := range currentSections {
		seen[sec.Kind] = true

		other, ok := byKind[sec.Kind]
		if !ok {
			other = NewCollection[parser.Definition]()
		}
		pairs = append(pairs, sectionPair{kind: sec.Kind, current: sec.Defs, target: other})
	}

	for _, sec := range targetSections {
		if !seen[sec.Kind] {
			pairs = append(pairs, sectionPair{kind: sec.Kind, current: NewCollection[parser.Definition](), target: sec.Defs})
		}
	}

	return pairs
}

func diffSection(kind parser.Kind, current, target Definitions) []Change {
	renames, removed, added := DetectRenames(current, target)

	changes := make([]Change, 0, len(renames)+len(removed)+len(added))
	for _, r := range renames {
		cur, _ := current.Definition(r.OldKey)
		tgt, _ := target.Definition(r.NewKey)
		changes = append(changes, Change{
			Type:    ChangeRenamed,
			Kind:    kind,
			Key:     r.OldKey,
			NewKey:  r.NewKey,
			Current: cur,
			Target:  tgt,
		})
	}

	isAdded := make(map[string]bool, len(added))
	for _, key := range added {
		isAdded[key] = true
	}

	for _, key := range target.Keys() {
		tgt, _ := target.Definition(key)
		if isAdded[key] {
			changes = append(changes, Change{Type: ChangeAdded, Kind: kind, Key: key, Target: tgt})
			continue
		}

		cur, ok := current.Definition(key)
		if ok && !cur.Equal(tgt) {
			changes = append(changes, Change{Type: ChangeModified, Kind: kind, Key: key, Current: cur, Target: tgt})
		}
	}

	for _, key := range removed {
		cur, _ := current.Definition(key)
		changes = append(changes, Change{Type: ChangeRemoved, Kind: kind, Key: key, Current: cur})
	}

	return changes
}
