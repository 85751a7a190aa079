package spreadsheet

import (
	"fmt"
	"io"
	"strconv"

	domain "github.com/mohammadpnp/party-onboarding/internal/domain/party"
	"github.com/xuri/excelize/v2"
)

const (
	FailedRowsSheet  = "Failed Rows"
	RowNumberHeader  = "Row Number"
	ReasonHeader     = "Reason"
	ContentTypeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultSheetName = "Sheet1"
)

// Codec reads and writes single-sheet OOXML workbooks.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

// Decode reads the first sheet. The first row is the header; every following
// row that has at least one non-empty cell becomes an UploadRow numbered by its
// position among decoded rows plus the header offset. Cell values are taken raw
// so long phone numbers are not rendered in scientific notation.
func (c *Codec) Decode(r io.Reader) ([]domain.UploadRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableSpreadsheet, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrUnreadableSpreadsheet)
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableSpreadsheet, err)
	}
	if len(grid) == 0 {
		return []domain.UploadRow{}, nil
	}

	headers := headerNames(grid[0])
	rows := make([]domain.UploadRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		data := domain.NewRowData()
		for i, value := range cells {
			if i >= len(headers) || headers[i] == "" || value == "" {
				continue
			}
			data.Set(headers[i], value)
		}
		if data.Len() == 0 {
			continue
		}
		rows = append(rows, domain.UploadRow{
			Number: len(rows) + domain.HeaderRowOffset,
			Data:   data,
		})
	}

	return rows, nil
}

// headerNames keeps header text as written. Columns without a header are
// dropped and repeated headers get a numeric suffix so no value is lost.
func headerNames(raw []string) []string {
	seen := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, h := range raw {
		if h == "" {
			continue
		}
		name := h
		if n, ok := seen[h]; ok {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		seen[h]++
		out[i] = name
	}
	return out
}

// Encode writes one sheet with the headers in the given order. Missing keys
// become empty cells.
func (c *Codec) Encode(w io.Writer, sheetName string, headers []string, rows []map[string]string) error {
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		line := make([]any, len(headers))
		for i, h := range headers {
			line[i] = row[h]
		}
		values = append(values, line)
	}
	return writeSheet(w, sheetName, headers, values)
}

// EncodeFailedRows writes Row Number and Reason followed by every original
// column in first-seen order across the rows.
func (c *Codec) EncodeFailedRows(w io.Writer, failed []domain.FailedRow) error {
	var columns []string
	seen := map[string]struct{}{}
	for _, row := range failed {
		for _, col := range row.Data.Columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}

	headers := append([]string{RowNumberHeader, ReasonHeader}, columns...)
	values := make([][]any, 0, len(failed))
	for _, row := range failed {
		line := make([]any, 0, len(headers))
		line = append(line, row.RowNumber, row.Reason)
		for _, col := range columns {
			line = append(line, row.Data.Values[col])
		}
		values = append(values, line)
	}

	return writeSheet(w, FailedRowsSheet, headers, values)
}

func writeSheet(w io.Writer, sheetName string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = defaultSheetName
	}
	if sheetName != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
