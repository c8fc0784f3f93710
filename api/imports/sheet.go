package imports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SheetRow is one data row keyed by normalized header.
type SheetRow map[string]string

// normalizeHeader folds a spreadsheet header into a stable key: trimmed,
// lowercased, inner whitespace collapsed to underscores. "Room Nights",
// "roomNights" and "room_nights" all land on the same key.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, "\u00a0", " ")
	var b strings.Builder
	prevUnderscore := false
	for i, r := range h {
		switch {
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !prevUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				prevUnderscore = true
			}
		case r >= 'A' && r <= 'Z':
			// camelCase boundary becomes an underscore
			if i > 0 && !prevUnderscore && b.Len() > 0 {
				prev := h[i-1]
				if prev >= 'a' && prev <= 'z' {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r + ('a' - 'A'))
			prevUnderscore = false
		default:
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return strings.Trim(b.String(), "_")
}

// rowsToSheetRows maps a header row plus data rows into keyed rows. Rows
// with every cell empty are skipped.
func rowsToSheetRows(rows [][]string) []SheetRow {
	if len(rows) < 2 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}
	out := []SheetRow{}
	for _, raw := range rows[1:] {
		empty := true
		for _, cell := range raw {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		row := SheetRow{}
		for i, cell := range raw {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = strings.TrimSpace(cell)
		}
		out = append(out, row)
	}
	return out
}

// ParseSheet decodes an uploaded spreadsheet (xlsx, legacy xls, or csv)
// into header-keyed rows. The first sheet and first non-empty header row
// win; format detection is by attempted decode, xlsx first.
func ParseSheet(file multipart.File) ([]SheetRow, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if xl, xlErr := excelize.OpenReader(bytes.NewReader(data)); xlErr == nil {
		defer xl.Close()
		sheetName := xl.GetSheetName(0)
		rows, err := xl.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to get rows: %w", err)
		}
		if len(rows) < 2 {
			return nil, errors.New("sheet must have a header row and at least one data row")
		}
		return rowsToSheetRows(rows), nil
	}

	if wb, xlsErr := xls.OpenReader(bytes.NewReader(data), "utf-8"); xlsErr == nil {
		sheet := wb.GetSheet(0)
		if sheet == nil {
			return nil, errors.New("xls file has no sheets")
		}
		var rows [][]string
		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			var vals []string
			for j := 0; j <= row.LastCol(); j++ {
				vals = append(vals, row.Col(j))
			}
			rows = append(rows, vals)
		}
		if len(rows) < 2 {
			return nil, errors.New("sheet must have a header row and at least one data row")
		}
		return rowsToSheetRows(rows), nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, csvErr := r.ReadAll()
	if csvErr != nil {
		return nil, errors.New("failed to parse file as xlsx, xls, or csv")
	}
	if len(rows) < 2 {
		return nil, errors.New("sheet must have a header row and at least one data row")
	}
	return rowsToSheetRows(rows), nil
}

// First returns the first non-empty value among the given keys. Alias
// tolerance: spreadsheets from different eras name the same column
// differently (manager_email vs agent_email).
func (r SheetRow) First(keys ...string) string {
	for _, k := range keys {
		if v := r[k]; v != "" {
			return v
		}
	}
	return ""
}
