package host

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TextSink renders tables as aligned plain text.
type TextSink struct {
	w io.Writer
}

// NewTextSink returns a sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Table implements TableSink.
func (s *TextSink) Table(t Table) error {
	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteByte('\n')

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", t.Corner, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, strings.Join(row.Cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for i, note := range t.Footnotes {
		fmt.Fprintf(&b, "%c. %s\n", 'a'+rune(i%26), note)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(s.w, b.String())
	return err
}

// Note implements TableSink.
func (s *TextSink) Note(msg string) error {
	_, err := fmt.Fprintln(s.w, msg)
	return err
}

// Recorder is a TableSink that keeps everything it receives.
type Recorder struct {
	Tables []Table
	Notes  []string
}

// Table implements TableSink.
func (r *Recorder) Table(t Table) error {
	r.Tables = append(r.Tables, t)
	return nil
}

// Note implements TableSink.
func (r *Recorder) Note(msg string) error {
	r.Notes = append(r.Notes, msg)
	return nil
}

// Find returns the first recorded table whose title starts with prefix.
func (r *Recorder) Find(prefix string) (Table, bool) {
	for _, t := range r.Tables {
		if strings.HasPrefix(t.Title, prefix) {
			return t, true
		}
	}
	return Table{}, false
}
