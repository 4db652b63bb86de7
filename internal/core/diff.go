package core

import "maps"

// Diff key-matches the original rows against the edited rows and
// classifies every key: present only in edited → Added, present only in
// original → Removed, present in both with differing fields → Modified.
// Within one side a duplicated key keeps its last row; duplicates are
// the Validator's concern and are not re-checked here.
//
// Output order follows each side's first-seen key order — Added and
// Modified follow the edited rows, Removed follows the originals — so
// results are deterministic for a given input.
func Diff(original, edited []Row, keyColumns []string) TableDiff {
	origKeys, origRows := indexByKey(original, keyColumns)
	editKeys, editRows := indexByKey(edited, keyColumns)

	var d TableDiff
	for _, k := range editKeys {
		if _, ok := origRows[k]; !ok {
			d.Added = append(d.Added, editRows[k])
		}
	}
	for _, k := range origKeys {
		if _, ok := editRows[k]; !ok {
			d.Removed = append(d.Removed, origRows[k])
		}
	}
	for _, k := range editKeys {
		old, ok := origRows[k]
		if !ok {
			continue
		}
		if !maps.Equal(old, editRows[k]) {
			d.Modified = append(d.Modified, RowChange{Old: old, New: editRows[k]})
		}
	}
	return d
}

// indexByKey maps key tuples to rows, last row winning on duplicates,
// and returns the keys in first-seen order.
func indexByKey(rows []Row, keyColumns []string) ([]string, map[string]Row) {
	keys := make([]string, 0, len(rows))
	byKey := make(map[string]Row, len(rows))
	for _, row := range rows {
		k := keyString(row, keyColumns)
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = row
	}
	return keys, byKey
}
