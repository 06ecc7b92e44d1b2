package codec

import (
	"bufio"
	"io"
)

// Writer is the output side of the codec. It carries the output Format and
// tracks how deeply the current value is nested, which decides quoting.
//
// Write errors are sticky: after the first failure all writes are dropped and
// the error is returned by Flush and Err.
//
// Thread-safety: a Writer must only be used by one goroutine.
type Writer struct {
	bw     *bufio.Writer
	format Format
	depth  int
	err    error
}

// NewWriter creates a Writer on top of w using format f
func NewWriter(w io.Writer, f Format) *Writer {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Writer{bw: bw, format: f}
}

// Format returns the output format of the writer
func (w *Writer) Format() Format {
	return w.format
}

// WriteString writes s as is
func (w *Writer) WriteString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.bw.WriteString(s)
}

// WriteQuoted writes s, wrapped in double quotes if the quoting policy asks for it
// at the current nesting depth. The text itself is not escaped.
func (w *Writer) WriteQuoted(s string) {
	if !w.quoting() {
		w.WriteString(s)
		return
	}
	w.WriteString(`"`)
	w.WriteString(s)
	w.WriteString(`"`)
}

// Newline terminates the current output line
func (w *Writer) Newline() {
	w.WriteString("\n")
}

// WriteSequence writes n elements using the sequence delimiter of the format.
// elem is called once per index and must write exactly one element.
func (w *Writer) WriteSequence(n int, elem func(i int)) {
	open, sep, closing := w.format.Delimiter.layout()
	w.WriteString(open)
	w.nested(func() {
		for i := 0; i < n; i++ {
			if i > 0 {
				w.WriteString(sep)
			}
			elem(i)
		}
	})
	w.WriteString(closing)
}

// WriteBraces writes n entries as {e1, e2, ...}, the layout of maps and sets
func (w *Writer) WriteBraces(n int, entry func(i int)) {
	w.WriteString("{")
	w.nested(func() {
		for i := 0; i < n; i++ {
			if i > 0 {
				w.WriteString(", ")
			}
			entry(i)
		}
	})
	w.WriteString("}")
}

// WritePair writes (first, second)
func (w *Writer) WritePair(first, second func()) {
	w.WriteString("(")
	w.nested(func() {
		first()
		w.WriteString(", ")
		second()
	})
	w.WriteString(")")
}

// Flush writes any buffered output and returns the first error encountered
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Flush()
	return w.err
}

// Err returns the first write error, if any
func (w *Writer) Err() error {
	return w.err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// nested runs fn one container level deeper
func (w *Writer) nested(fn func()) {
	w.depth++
	defer func() { w.depth-- }()
	fn()
}

func (w *Writer) quoting() bool {
	switch w.format.Quoting {
	case QuoteAlways:
		return true
	case QuoteNever:
		return false
	default:
		return w.depth > 0
	}
}
