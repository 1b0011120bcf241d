package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/signboard/store"
)

const idField = "ID"

// ErrNoID is returned when a CSV header lacks the ID column.
var ErrNoID = errors.New("table: no ID column")

// CSV is an in-memory table parsed from CSV.
type CSV struct {
	fields  []string
	columns map[string]int
	ids     []int
	rows    map[int][]string
}

// ReadCSV parses r. The first record is the header and must contain an ID
// column. Rows whose id is not an integer are skipped; the first row wins
// when an id repeats.
func ReadCSV(r io.Reader) (*CSV, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoID
		}
		return nil, err
	}

	t := &CSV{
		columns: make(map[string]int),
		rows:    make(map[int][]string),
	}

	for i, f := range header {
		f = strings.TrimSpace(strings.TrimPrefix(f, "\ufeff"))
		t.fields = append(t.fields, f)
		if _, ok := t.columns[f]; !ok {
			t.columns[f] = i
		}
	}

	column, ok := t.columns[idField]
	if !ok {
		return nil, ErrNoID
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if column >= len(record) {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[column]))
		if err != nil {
			continue
		}
		if _, ok := t.rows[id]; ok {
			continue
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		t.ids = append(t.ids, id)
		t.rows[id] = record
	}

	return t, nil
}

// OpenCSV reads the CSV table at path from st.
func OpenCSV(st store.Store, path string) (*CSV, error) {
	f, err := st.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Fields returns the header names in column order.
func (t *CSV) Fields() []string {
	return t.fields
}

// IDs returns the row ids in file order.
func (t *CSV) IDs() []int {
	return t.ids
}

// Lookup returns the named field of row id.
func (t *CSV) Lookup(id int, field string) (string, error) {
	row, ok := t.rows[id]
	if !ok {
		return "", ErrNotFound
	}
	column, ok := t.columns[field]
	if !ok {
		return "", ErrNotFound
	}
	if column >= len(row) {
		return "", nil
	}
	return row[column], nil
}
