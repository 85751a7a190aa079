package party

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// HeaderRowOffset turns a zero-based data row index into the row number an
// operator sees in the spreadsheet, counting the header row.
const HeaderRowOffset = 2

type UploadRow struct {
	Number int
	Data   RowData
}

func (r UploadRow) Get(key string) string {
	return r.Data.Values[key]
}

// RowData is a raw spreadsheet row that remembers its column order so it can be
// echoed back to the caller and re-exported without reshuffling columns.
type RowData struct {
	Columns []string
	Values  map[string]string
}

func NewRowData() RowData {
	return RowData{Values: map[string]string{}}
}

func (d *RowData) Set(column, value string) {
	if d.Values == nil {
		d.Values = map[string]string{}
	}
	if _, ok := d.Values[column]; !ok {
		d.Columns = append(d.Columns, column)
	}
	d.Values[column] = value
}

func (d RowData) Len() int {
	return len(d.Columns)
}

func (d RowData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range d.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.Values[column])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a flat object. Numbers and booleans are kept in their
// JSON text form so a re-export shows what the operator typed.
func (d *RowData) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	token, err := dec.Token()
	if err != nil {
		return err
	}
	if token == nil {
		*d = NewRowData()
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row data must be a JSON object")
	}

	out := NewRowData()
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyToken.(string)

		valueToken, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valueToken.(type) {
		case string:
			out.Set(key, v)
		case json.Number:
			out.Set(key, v.String())
		case bool:
			out.Set(key, strconv.FormatBool(v))
		case nil:
			out.Set(key, "")
		default:
			return fmt.Errorf("row data field %q must be a scalar", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}

type FailedRow struct {
	RowNumber int     `json:"rowNumber"`
	Reason    string  `json:"reason"`
	Data      RowData `json:"data"`
}

func NewFailedRow(row UploadRow, reasons ...string) FailedRow {
	return FailedRow{
		RowNumber: row.Number,
		Reason:    strings.Join(reasons, "; "),
		Data:      row.Data,
	}
}

// UploadBatch is the audit record written once per processed bulk upload.
type UploadBatch struct {
	PartyType  Type
	FileName   string
	Actor      string
	Outcome    Outcome
	TotalRows  int
	Successful int
	Failed     int
}
