// Package host defines what the text analysis command needs from the
// system that owns the data: variables, a case cursor, column output and a
// table renderer.
package host

import (
	"regexp"
	"strconv"
)

// Type is the storage type of a variable.
type Type int

const (
	String Type = iota
	Numeric
)

func (t Type) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "string"
}

// Variable describes one column of a dataset.
type Variable struct {
	Name  string
	Label string
	Type  Type
	// Width is the byte width of a string variable.
	Width int
	// Attributes are custom key/value annotations, such as the search
	// criteria that produced the variable.
	Attributes map[string]string
}

// Value is one cell. Numeric cells use Num and may be Missing; string
// cells use Str.
type Value struct {
	Str     string
	Num     float64
	Missing bool
}

// Text returns a string value.
func Text(s string) Value { return Value{Str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Num: f} }

// Missing is the system-missing numeric value.
var Missing = Value{Missing: true}

// Format renders v as a cell of a variable of type t.
func (v Value) Format(t Type) string {
	if t == String {
		return v.Str
	}
	if v.Missing {
		return ""
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

// Cursor iterates over the cases of a dataset.
type Cursor interface {
	// Next returns the requested values of the next case, or io.EOF after
	// the last case.
	Next() ([]Value, error)
	Close() error
}

// Dataset is the data the command reads and extends.
type Dataset interface {
	Variables() []Variable
	Variable(name string) (Variable, bool)
	// WeightVariable returns the name of the case weight variable, or "".
	WeightVariable() string
	// Cases opens a cursor returning the named variables of every case.
	Cases(names ...string) (Cursor, error)
	// Put creates or replaces a variable with one value per case.
	Put(v Variable, values []Value) error
	NumCases() int
}

// Table is a titled grid with row labels.
type Table struct {
	Title     string
	Corner    string
	Columns   []string
	Rows      []Row
	Footnotes []string
}

// Row is a labelled row of cells.
type Row struct {
	Label string
	Cells []string
}

// TableSink receives the command's output.
type TableSink interface {
	Table(t Table) error
	// Note emits a free-standing message such as a warning.
	Note(msg string) error
}

var validName = regexp.MustCompile(`^[\p{L}@#$][\p{L}\p{N}_.@#$]*$`)

// MaxNameLength is the longest variable name in bytes.
const MaxNameLength = 64

// ValidName reports whether name can be used as a variable name.
func ValidName(name string) bool {
	return len(name) <= MaxNameLength && validName.MatchString(name) && name[len(name)-1] != '.'
}

// Creator makes new datasets, such as an exported lexicon.
type Creator interface {
	Create(name string, vars []Variable, rows [][]Value) error
}
