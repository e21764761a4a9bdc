package host

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Memory is an in-memory Dataset.
type Memory struct {
	vars   []Variable
	index  map[string]int
	rows   [][]Value
	weight string
}

// NewMemory returns an empty dataset with the given variables.
func NewMemory(vars ...Variable) (*Memory, error) {
	m := &Memory{index: make(map[string]int)}
	for _, v := range vars {
		if err := m.addVariable(v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Memory) addVariable(v Variable) error {
	if !ValidName(v.Name) {
		return fmt.Errorf("invalid variable name %q", v.Name)
	}
	key := strings.ToLower(v.Name)
	if _, ok := m.index[key]; ok {
		return fmt.Errorf("duplicate variable %s", v.Name)
	}
	m.index[key] = len(m.vars)
	m.vars = append(m.vars, cloneVariable(v))
	return nil
}

func cloneVariable(v Variable) Variable {
	v.Attributes = maps.Clone(v.Attributes)
	return v
}

// AddCase appends a case with one value per variable.
func (m *Memory) AddCase(values ...Value) error {
	if len(values) != len(m.vars) {
		return fmt.Errorf("case has %d values, want %d", len(values), len(m.vars))
	}
	m.rows = append(m.rows, append([]Value(nil), values...))
	return nil
}

// SetWeight sets the weight variable; "" turns weighting off.
func (m *Memory) SetWeight(name string) error {
	if name == "" {
		m.weight = ""
		return nil
	}
	v, ok := m.Variable(name)
	if !ok {
		return fmt.Errorf("weight variable %s not found", name)
	}
	if v.Type != Numeric {
		return fmt.Errorf("weight variable %s is not numeric", name)
	}
	m.weight = v.Name
	return nil
}

// Variables implements Dataset.
func (m *Memory) Variables() []Variable {
	vars := make([]Variable, len(m.vars))
	for i, v := range m.vars {
		vars[i] = cloneVariable(v)
	}
	return vars
}

// Variable implements Dataset. Names match case-insensitively.
func (m *Memory) Variable(name string) (Variable, bool) {
	i, ok := m.index[strings.ToLower(name)]
	if !ok {
		return Variable{}, false
	}
	return cloneVariable(m.vars[i]), true
}

// WeightVariable implements Dataset.
func (m *Memory) WeightVariable() string { return m.weight }

// NumCases implements Dataset.
func (m *Memory) NumCases() int { return len(m.rows) }

// Cases implements Dataset.
func (m *Memory) Cases(names ...string) (Cursor, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		j, ok := m.index[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("variable %s not found", name)
		}
		cols[i] = j
	}
	return &memoryCursor{m: m, cols: cols}, nil
}

// Put implements Dataset.
func (m *Memory) Put(v Variable, values []Value) error {
	if len(values) != len(m.rows) {
		return fmt.Errorf("variable %s has %d values, dataset has %d cases", v.Name, len(values), len(m.rows))
	}
	if i, ok := m.index[strings.ToLower(v.Name)]; ok {
		m.vars[i] = cloneVariable(v)
		for r, row := range m.rows {
			row[i] = values[r]
		}
		return nil
	}
	if err := m.addVariable(v); err != nil {
		return err
	}
	for r := range m.rows {
		m.rows[r] = append(m.rows[r], values[r])
	}
	return nil
}

type memoryCursor struct {
	m    *Memory
	cols []int
	next int
}

func (c *memoryCursor) Next() ([]Value, error) {
	if c.m == nil || c.next >= len(c.m.rows) {
		return nil, io.EOF
	}
	row := c.m.rows[c.next]
	c.next++
	values := make([]Value, len(c.cols))
	for i, col := range c.cols {
		values[i] = row[col]
	}
	return values, nil
}

func (c *memoryCursor) Close() error {
	c.m = nil
	return nil
}

// ReadCSV loads a dataset from CSV with a header row of variable names. A
// column whose non-empty cells all parse as numbers is numeric, with empty
// cells missing; every other column is a string.
func ReadCSV(r io.Reader) (*Memory, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header, data := records[0], records[1:]
	vars := make([]Variable, len(header))
	for j, name := range header {
		v := Variable{Name: strings.TrimSpace(name), Type: Numeric}
		for _, rec := range data {
			cell := strings.TrimSpace(rec[j])
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				v.Type = String
			}
			v.Width = max(v.Width, len(rec[j]))
		}
		vars[j] = v
	}

	m, err := NewMemory(vars...)
	if err != nil {
		return nil, err
	}
	for _, rec := range data {
		values := make([]Value, len(rec))
		for j, cell := range rec {
			values[j] = parseCell(vars[j].Type, cell)
		}
		if err := m.AddCase(values...); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func parseCell(t Type, cell string) Value {
	if t == String {
		return Text(cell)
	}
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return Missing
	}
	f, _ := strconv.ParseFloat(cell, 64)
	return Number(f)
}

// WriteCSV writes the dataset with a header row.
func (m *Memory) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	header := make([]string, len(m.vars))
	for i, v := range m.vars {
		header[i] = v.Name
	}
	writer.Write(header)

	for _, row := range m.rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = v.Format(m.vars[i].Type)
		}
		writer.Write(rec)
	}
	writer.Flush()
	return writer.Error()
}

// CSVDir is a Creator writing each dataset to <dir>/<name>.csv.
type CSVDir string

// Create implements Creator.
func (d CSVDir) Create(name string, vars []Variable, rows [][]Value) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid dataset name %q", name)
	}
	m, err := NewMemory(vars...)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := m.AddCase(row...); err != nil {
			return err
		}
	}

	path := filepath.Join(string(d), name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset %s: %w", name, err)
	}
	if err := m.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write dataset %s: %w", name, err)
	}
	return f.Close()
}
