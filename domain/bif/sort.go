package bif

import (
	"sort"
	"strconv"
	"strings"
)

// Finalize orders a pivoted table for serialization: columns are fixed to
// GROUP_ID first, date columns next, remaining variables last (each block
// keeping its first-discovered order), and rows are sorted by group id.
//
// Row order is numeric only when every group id in the table parses as a
// number; a single non-numeric id drops the whole table to lexical order.
// This whole-table fallback is a compatibility policy, not best-effort
// per-row parsing. In numeric mode ids are re-serialized canonically, so an
// integral "3.0" comes back as "3".
func Finalize(table OutputTable) OutputTable {
	table.Columns = canonicalColumns(table.Columns)

	type keyed struct {
		rec     WideRecord
		id      string
		num     float64
		numeric bool
	}
	keys := make([]keyed, len(table.Records))
	allNumeric := true
	for i, rec := range table.Records {
		id := rec[GroupIDColumn]
		k := keyed{rec: rec, id: id}
		if n, err := strconv.ParseFloat(strings.TrimSpace(id), 64); err == nil {
			k.num = n
			k.numeric = true
		} else {
			allNumeric = false
		}
		keys[i] = k
	}

	if allNumeric {
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].num < keys[j].num })
		for _, k := range keys {
			k.rec[GroupIDColumn] = strconv.FormatFloat(k.num, 'f', -1, 64)
		}
	} else {
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].id < keys[j].id })
	}

	ordered := make([]WideRecord, len(keys))
	for i, k := range keys {
		ordered[i] = k.rec
	}
	table.Records = ordered
	return table
}

// canonicalColumns partitions columns into the fixed output order without
// disturbing relative order inside each block.
func canonicalColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	out = append(out, GroupIDColumn)
	for _, c := range columns {
		if c != GroupIDColumn && strings.Contains(c, DateMarker) {
			out = append(out, c)
		}
	}
	for _, c := range columns {
		if c != GroupIDColumn && !strings.Contains(c, DateMarker) {
			out = append(out, c)
		}
	}
	return out
}

// Cells serializes one record against the fixed column order, blank for
// columns the record never observed.
func (t OutputTable) Cells(rec WideRecord) []string {
	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = rec[col]
	}
	return cells
}
