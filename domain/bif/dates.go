package bif

// DateIndex is the Date Resolver's output: every date field observed for
// every group, plus a total fallback key. Resolution is category-agnostic —
// a group that spans several categories resolves once and shares the result.
type DateIndex struct {
	// Columns lists the distinct date variable names in first-seen order
	// across the whole dataset. Each becomes its own output column.
	Columns []string

	fields map[string]map[string]string // group id -> date variable -> value
	keys   map[string]string            // group id -> first date value seen
}

// ResolveDates scans the full row set once and indexes every date row.
// Duplicate date rows for the same (group, variable) are ignored, not
// merged: the first value in row order wins.
func ResolveDates(rows []Row) *DateIndex {
	ix := &DateIndex{
		fields: make(map[string]map[string]string),
		keys:   make(map[string]string),
	}
	seenCol := make(map[string]bool)

	for _, r := range rows {
		if !r.IsDate() {
			continue
		}
		if !seenCol[r.Variable] {
			seenCol[r.Variable] = true
			ix.Columns = append(ix.Columns, r.Variable)
		}
		if _, ok := ix.keys[r.GroupID]; !ok {
			ix.keys[r.GroupID] = r.Value
		}
		group := ix.fields[r.GroupID]
		if group == nil {
			group = make(map[string]string)
			ix.fields[r.GroupID] = group
		}
		if _, ok := group[r.Variable]; !ok {
			group[r.Variable] = r.Value
		}
	}
	return ix
}

// Key returns the resolved date key for a group: the first date value seen
// for it, or the group id itself when the group has no date rows. Never
// empty for a non-empty group id.
func (ix *DateIndex) Key(groupID string) string {
	if key, ok := ix.keys[groupID]; ok {
		return key
	}
	return groupID
}

// Field returns the value of one date variable for a group, and whether the
// pair was observed at all.
func (ix *DateIndex) Field(groupID, variable string) (string, bool) {
	v, ok := ix.fields[groupID][variable]
	return v, ok
}
