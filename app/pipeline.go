// Package app wires the input provider, the reshape engine, and the output
// consumer into one runnable pipeline.
package app

import (
	"time"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/adapters/csvout"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/adapters/excel"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/domain/bif"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/errors"
)

// Pipeline runs the full reshape: read the export once, resolve dates once,
// pivot and finalize each category, write one file per category.
type Pipeline struct {
	InputPath string
	SheetName string
	OutputDir string
	log       *internal.Logger
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	SiteIDs    []string
	RowCount   int
	Categories []string
	Files      []string
	Elapsed    time.Duration
}

// NewPipeline creates a pipeline for one input file and output directory.
func NewPipeline(inputPath, sheetName, outputDir string) *Pipeline {
	return &Pipeline{
		InputPath: inputPath,
		SheetName: sheetName,
		OutputDir: outputDir,
		log:       internal.DefaultLogger,
	}
}

// Tables reads the export and returns every category's finalized table in
// first-seen category order, without touching the output directory.
func (p *Pipeline) Tables() ([]bif.OutputTable, error) {
	data, err := excel.NewBIFReader(p.InputPath, p.SheetName).ReadData()
	if err != nil {
		return nil, err
	}

	index := bif.ResolveDates(data.Rows)
	categories := bif.Categories(data.Rows)
	p.log.Debug("[Pipeline] %d rows, %d categories, %d date variables",
		len(data.Rows), len(categories), len(index.Columns))

	tables := make([]bif.OutputTable, 0, len(categories))
	for _, category := range categories {
		tables = append(tables, bif.Finalize(bif.Pivot(data.Rows, category, index)))
	}
	return tables, nil
}

// Run executes the pipeline end to end and writes the per-category files.
func (p *Pipeline) Run() (*RunResult, error) {
	started := time.Now()

	data, err := excel.NewBIFReader(p.InputPath, p.SheetName).ReadData()
	if err != nil {
		return nil, err
	}

	writer, err := csvout.NewWriter(p.OutputDir)
	if err != nil {
		return nil, err
	}

	index := bif.ResolveDates(data.Rows)
	result := &RunResult{
		SiteIDs:    data.SiteIDs,
		RowCount:   len(data.Rows),
		Categories: bif.Categories(data.Rows),
	}
	for _, category := range result.Categories {
		table := bif.Finalize(bif.Pivot(data.Rows, category, index))
		path, err := writer.WriteTable(table)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to write category %s", category)
		}
		result.Files = append(result.Files, path)
	}

	result.Elapsed = time.Since(started)
	p.log.Info("[Pipeline] Processed %d rows into %d files in %.2fms",
		result.RowCount, len(result.Files), float64(result.Elapsed.Nanoseconds())/1e6)
	return result, nil
}
