// Package ingest decodes uploaded tabular documents into normalized
// purchase-order and invoice records.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/normalize"
)

// DecodeTable decodes raw bytes into a dataset, selecting the decoder
// by file extension. Unknown extensions fail with ErrUnsupportedFormat.
func DecodeTable(content []byte, filename string) (normalize.Dataset, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	switch ext {
	case "xlsx":
		return decodeXLSX(content)
	case "csv":
		return decodeCSV(content)
	default:
		return normalize.Dataset{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filename)
	}
}

func decodeXLSX(content []byte) (normalize.Dataset, error) {
	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return normalize.Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return normalize.Dataset{}, fmt.Errorf("xlsx file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return normalize.Dataset{}, fmt.Errorf("read sheet rows: %w", err)
	}
	return datasetFromRows(rows), nil
}

func decodeCSV(content []byte) (normalize.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return normalize.Dataset{}, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return datasetFromRows(rows), nil
}

// datasetFromRows treats the first row as the header and keys every
// following row by header name. Fully blank rows are dropped; blank
// cells stay absent so readers see them as null.
func datasetFromRows(rows [][]string) normalize.Dataset {
	if len(rows) == 0 {
		return normalize.Dataset{}
	}

	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.TrimPrefix(h, "\ufeff"))
	}

	ds := normalize.Dataset{Headers: headers}
	for _, cells := range rows[1:] {
		row := make(normalize.Row, len(headers))
		empty := true
		for i, h := range headers {
			v := strings.TrimSpace(readCell(cells, i))
			if v == "" {
				continue
			}
			row[h] = v
			empty = false
		}
		if empty {
			continue
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
