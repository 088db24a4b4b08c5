// Package excel is the input provider: it reads an AmeriFlux BASE BIF
// export (xlsx or csv) and yields the long-form rows the reshape engine
// consumes. Acquisition failures are loud and coded; the engine itself
// never sees a partially-read table.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/domain/bif"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/errors"
)

// Required BIF column headers. SITE_ID is carried for logging only; the
// remaining four form the engine's row tuple.
const (
	headerSiteID   = "SITE_ID"
	headerGroupID  = "GROUP_ID"
	headerCategory = "VARIABLE_GROUP"
	headerVariable = "VARIABLE"
	headerValue    = "DATAVALUE"
)

// BIFData is the fully-read input: ordered rows plus the site ids the
// export covers (normally exactly one).
type BIFData struct {
	Rows    []bif.Row
	SiteIDs []string
}

// BIFReader handles reading BIF exports from Excel and CSV files
type BIFReader struct {
	filePath  string
	sheetName string
	fileType  string // "xlsx" or "csv"
	log       *internal.Logger
}

// NewBIFReader creates a reader for the given file; the sheet name only
// applies to xlsx input.
func NewBIFReader(filePath, sheetName string) *BIFReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &BIFReader{
		filePath:  filePath,
		sheetName: sheetName,
		fileType:  fileType,
		log:       internal.DefaultLogger,
	}
}

// ReadData reads the whole export into memory in original row order.
func (r *BIFReader) ReadData() (*BIFData, error) {
	r.log.Debug("[BIFReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputNotFound(fmt.Sprintf("input file not found: %s", r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	default:
		return r.readExcel()
	}
}

func (r *BIFReader) readExcel() (*BIFData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, errors.InputInvalid(fmt.Sprintf("failed to read sheet %q: %v", r.sheetName, err))
	}
	r.log.Debug("[BIFReader] Sheet %q read in %.2fms (%d rows)",
		r.sheetName, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *BIFReader) readCSV() (*BIFData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // BIF exports ragged-pad trailing blanks
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.InputInvalid(fmt.Sprintf("failed to read CSV file: %v", err))
	}
	return r.processRows(rows)
}

// processRows maps raw string rows onto BIF columns by header name.
func (r *BIFReader) processRows(rows [][]string) (*BIFData, error) {
	if len(rows) < 2 {
		return nil, errors.InputInvalid("input must have at least a header row and one data row")
	}

	columns, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	data := &BIFData{}
	seenSites := make(map[string]bool)
	skipped := 0
	for _, raw := range rows[1:] {
		row := bif.Row{
			GroupID:  cell(raw, columns[headerGroupID]),
			Category: cell(raw, columns[headerCategory]),
			Variable: cell(raw, columns[headerVariable]),
			Value:    cell(raw, columns[headerValue]),
		}
		if row.GroupID == "" || row.Category == "" {
			skipped++
			continue
		}
		if site := cell(raw, columns[headerSiteID]); site != "" && !seenSites[site] {
			seenSites[site] = true
			data.SiteIDs = append(data.SiteIDs, site)
		}
		data.Rows = append(data.Rows, row)
	}

	if skipped > 0 {
		r.log.Warn("[BIFReader] Skipped %d rows without GROUP_ID or VARIABLE_GROUP", skipped)
	}
	r.log.Info("[BIFReader] %s file processed (%d rows, sites: %s)",
		strings.ToUpper(r.fileType), len(data.Rows), strings.Join(data.SiteIDs, ","))
	return data, nil
}

// locateColumns finds the index of each required header, trimmed,
// ignoring any extra columns the export carries.
func locateColumns(headerRow []string) (map[string]int, error) {
	columns := make(map[string]int, 5)
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if _, taken := columns[name]; taken {
			continue
		}
		switch name {
		case headerSiteID, headerGroupID, headerCategory, headerVariable, headerValue:
			columns[name] = i
		}
	}
	for _, required := range []string{headerSiteID, headerGroupID, headerCategory, headerVariable, headerValue} {
		if _, ok := columns[required]; !ok {
			return nil, errors.InputInvalid(fmt.Sprintf("missing required column %q", required))
		}
	}
	return columns, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
