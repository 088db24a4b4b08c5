// Package bif implements the reshape engine for AmeriFlux BASE BIF exports:
// long-form key/value metadata rows in, one wide table per variable group out.
//
// The engine is pure and single-pass: a DateIndex is built once over the full
// row set, each category is pivoted independently against it, and Finalize
// fixes column and row order so serialization is deterministic. All I/O lives
// in the adapters.
package bif

import "strings"

// DateMarker is the case-sensitive token that classifies a variable as a
// date field (BIF convention: TIME_DATE, DATE_START, ...).
const DateMarker = "DATE"

// GroupIDColumn is the name of the leading identifier column in every
// output table.
const GroupIDColumn = "GROUP_ID"

// Row is one long-form observation: a single (variable, value) fact scoped
// to a group within a variable-group category. Values stay opaque text.
type Row struct {
	GroupID  string
	Category string
	Variable string
	Value    string
}

// IsDate reports whether the row carries a date field rather than a
// miscellaneous variable.
func (r Row) IsDate() bool {
	return strings.Contains(r.Variable, DateMarker)
}

// WideRecord is one reshaped output row: column name to value. Columns a
// record never observed are simply absent and serialize as blank.
type WideRecord map[string]string

// OutputTable is the result for one category: an ordered column list and the
// records that fill it.
type OutputTable struct {
	Category string
	Columns  []string
	Records  []WideRecord
}

// Categories returns the distinct categories present in rows, in first-seen
// order. That order also fixes the order output files are written in.
func Categories(rows []Row) []string {
	seen := make(map[string]bool, 8)
	var order []string
	for _, r := range rows {
		if !seen[r.Category] {
			seen[r.Category] = true
			order = append(order, r.Category)
		}
	}
	return order
}
