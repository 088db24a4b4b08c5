// Package profile computes per-column summaries of finalized output tables
// so a reshaped export can be sanity-checked without opening the files.
package profile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/domain/bif"
)

// numericThreshold is the share of non-empty values that must parse as
// numbers before a column gets numeric summaries.
const numericThreshold = 0.5

// ColumnProfile summarizes one output column.
type ColumnProfile struct {
	Name         string
	Count        int // non-empty cells
	Missing      int // empty or absent cells
	NumericRatio float64

	// Populated only when Numeric is true.
	Numeric bool
	Mean    float64
	Min     float64
	Max     float64
	StdDev  float64
}

// TableProfile summarizes one category's table.
type TableProfile struct {
	Category string
	Records  int
	Columns  []ColumnProfile
}

// Profile computes column summaries for a finalized table.
func Profile(table bif.OutputTable) TableProfile {
	tp := TableProfile{Category: table.Category, Records: len(table.Records)}
	for _, col := range table.Columns {
		cp := ColumnProfile{Name: col}
		var values []float64
		for _, rec := range table.Records {
			cell, ok := rec[col]
			if !ok || cell == "" {
				cp.Missing++
				continue
			}
			cp.Count++
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
				values = append(values, v)
			}
		}
		if cp.Count > 0 {
			cp.NumericRatio = float64(len(values)) / float64(cp.Count)
		}
		if cp.NumericRatio >= numericThreshold && len(values) > 0 {
			cp.Numeric = true
			// The stats helpers only error on empty input, checked above.
			cp.Mean, _ = stats.Mean(values)
			cp.Min, _ = stats.Min(values)
			cp.Max, _ = stats.Max(values)
			cp.StdDev, _ = stats.StandardDeviation(values)
		}
		tp.Columns = append(tp.Columns, cp)
	}
	return tp
}

// Render writes a readable report for one table profile.
func Render(w io.Writer, tp TableProfile) {
	fmt.Fprintf(w, "%s (%d records)\n", tp.Category, tp.Records)
	for _, cp := range tp.Columns {
		if cp.Numeric {
			fmt.Fprintf(w, "  %-24s count=%d missing=%d mean=%.4g min=%.4g max=%.4g stdev=%.4g\n",
				cp.Name, cp.Count, cp.Missing, cp.Mean, cp.Min, cp.Max, cp.StdDev)
			continue
		}
		fmt.Fprintf(w, "  %-24s count=%d missing=%d (text)\n", cp.Name, cp.Count, cp.Missing)
	}
}
