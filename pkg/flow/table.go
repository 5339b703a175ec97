// pkg/flow/table.go
package flow

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is a small column-named, string-celled data frame. It is the value
// type CSV datasets load and save.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTable decodes CSV with a header row.
func ReadTable(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// WriteCSV encodes the table as CSV with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of column name.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// With returns a copy of the table with column name set to values, replacing
// an existing column of that name.
func (t *Table) With(name string, values []string) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Rows))
	}

	out := &Table{Columns: append([]string(nil), t.Columns...)}
	idx := out.Index(name)
	if idx < 0 {
		out.Columns = append(out.Columns, name)
	}
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := append([]string(nil), row...)
		if idx < 0 {
			r = append(r, values[i])
		} else {
			r[idx] = values[i]
		}
		out.Rows[i] = r
	}
	return out, nil
}
