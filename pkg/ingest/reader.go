package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/errors"
)

// ReadFile reads a CSV file into header-normalized rows, enforcing the host
// constraints: .csv extension only and at most 10 MB. The first non-empty
// record is the header; short records are tolerated and missing cells read
// as empty.
func ReadFile(path string) ([]Row, error) {
	if !strings.EqualFold(filepath.Ext(path), constants.ImportFileExtension) {
		return nil, errors.NewValidationError("file", path, "only .csv files are accepted")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	if info.Size() > constants.MaxImportFileSize {
		return nil, errors.NewValidationError("file", path,
			fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), int64(constants.MaxImportFileSize)))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}

	return RowsFromRecords(records), nil
}

// RowsFromRecords converts raw CSV records into header-normalized rows. The
// first record with any content becomes the header.
func RowsFromRecords(records [][]string) []Row {
	var header []string
	var rows []Row

	for _, record := range records {
		if recordEmpty(record) {
			continue
		}
		if header == nil {
			header = make([]string, len(record))
			for i, cell := range record {
				header[i] = NormalizeHeader(cell)
			}
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// NormalizeHeader canonicalizes a header cell: strips the UTF-8 BOM, trims,
// lowercases, and joins interior whitespace with underscores, so that
// "Subject Name" and "subject_name" address the same column.
func NormalizeHeader(cell string) string {
	cell = strings.TrimPrefix(cell, "\uFEFF")
	cell = strings.ToLower(strings.TrimSpace(cell))
	return strings.Join(strings.Fields(cell), "_")
}

// recordEmpty reports whether every cell in the record is blank.
func recordEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
