package sources

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads a delimited text file, skipping headerSkip lines of
// preamble before the header row. Windows exports arrive in Latin-1;
// anything that is not valid UTF-8 is transcoded before parsing.
func readCSV(path string, delimiter rune, headerSkip int) (header []string, rows [][]string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		content, err = charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s as latin-1: %w", path, err)
		}
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) <= headerSkip {
		return nil, nil, fmt.Errorf("%s has no header row after %d preamble lines", path, headerSkip)
	}

	return records[headerSkip], records[headerSkip+1:], nil
}

// readXLSX reads the first sheet of a workbook, skipping headerSkip rows
// of preamble before the header row.
func readXLSX(path string, headerSkip int) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("%s has no sheets", path)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet of %s: %w", path, err)
	}
	if len(all) <= headerSkip {
		return nil, nil, fmt.Errorf("%s has no header row after %d preamble rows", path, headerSkip)
	}

	return all[headerSkip], all[headerSkip+1:], nil
}

// columnIndex maps required column names to their position in a header
// row. Header cells are compared after trimming, since hand-maintained
// exports carry stray spaces.
func columnIndex(path string, header, required []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	idx := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		pos, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[name] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing columns %s", path, strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns the value at a column position, tolerating short rows.
func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// nullString returns nil for blank cells.
func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// nullInt parses a nullable integer cell. Spreadsheet exports render
// integers as floats, so a trailing ".0" is tolerated; anything else
// non-numeric is null.
func nullInt(v string) *int64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), ".0")
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
