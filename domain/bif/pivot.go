package bif

// Pivot collapses one category's long-form rows into wide records, one per
// group. Date rows place a group in the category but never become
// miscellaneous columns; their values come back through the DateIndex as
// dedicated date columns instead.
//
// Collision policy: when two rows share (group, variable), the first value
// in row order wins. The returned table's records are in group
// first-seen order; Finalize establishes the final row order.
func Pivot(rows []Row, category string, dates *DateIndex) OutputTable {
	records := make(map[string]WideRecord)
	var groupOrder []string
	var varOrder []string
	seenVar := make(map[string]bool)

	record := func(gid string) WideRecord {
		rec, ok := records[gid]
		if ok {
			return rec
		}
		rec = WideRecord{GroupIDColumn: gid}
		for _, col := range dates.Columns {
			if v, observed := dates.Field(gid, col); observed {
				rec[col] = v
			}
		}
		records[gid] = rec
		groupOrder = append(groupOrder, gid)
		return rec
	}

	for _, r := range rows {
		if r.Category != category {
			continue
		}
		rec := record(r.GroupID)
		if r.IsDate() {
			continue
		}
		if !seenVar[r.Variable] {
			seenVar[r.Variable] = true
			varOrder = append(varOrder, r.Variable)
		}
		if _, ok := rec[r.Variable]; !ok {
			rec[r.Variable] = r.Value
		}
	}

	// Date columns only appear when some group in this category observed
	// them; a dataset-wide date field absent from every record here would
	// serialize as an all-blank column otherwise.
	columns := []string{GroupIDColumn}
	for _, col := range dates.Columns {
		for _, gid := range groupOrder {
			if _, observed := dates.Field(gid, col); observed {
				columns = append(columns, col)
				break
			}
		}
	}
	columns = append(columns, varOrder...)

	table := OutputTable{Category: category, Columns: columns}
	for _, gid := range groupOrder {
		table.Records = append(table.Records, records[gid])
	}
	return table
}
