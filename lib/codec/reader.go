package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Reader is the token stream consumed by decode operations. Tokens are read
// strictly left to right and never rewound.
//
// Thread-safety: a Reader must only be used by one goroutine.
type Reader struct {
	br     *bufio.Reader
	line   int
	col    int
	tokens int

	// position before the last rune, restored by unreadRune
	prevLine int
	prevCol  int
}

// NewReader creates a Reader on top of r. If r is already a *bufio.Reader it is used directly.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{br: br, line: 1, col: 1}
}

// Pos returns the current position in the stream
func (r *Reader) Pos() Position {
	return Position{Line: r.line, Column: r.col, Token: r.tokens}
}

// Consumed returns the number of tokens (including lines and characters) read so far
func (r *Reader) Consumed() int {
	return r.tokens
}

// Token reads the next whitespace-delimited token
func (r *Reader) Token() (string, error) {
	tok, _, err := r.next("token")
	return tok, err
}

// Line skips leading whitespace (including line breaks) and returns the rest of
// the current line without its terminator.
func (r *Reader) Line() (string, error) {
	line, _, err := r.nextLine("line")
	return line, err
}

// Rune skips leading whitespace and reads exactly one character
func (r *Reader) Rune() (rune, error) {
	c, _, err := r.nextRune("character")
	return c, err
}

// Count reads a length prefix. A negative count is an ErrInvalidCount error.
func (r *Reader) Count() (int, error) {
	tok, pos, err := r.next("count")
	if err != nil {
		return 0, err
	}
	n, perr := strconv.Atoi(tok)
	if perr != nil {
		return 0, NewDecodeError(ErrFormat, pos, tok, "count", numCause(perr))
	}
	if n < 0 {
		return 0, NewDecodeError(ErrInvalidCount, pos, tok, "non-negative count", nil)
	}
	return n, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// next reads one token and returns it with its start position
func (r *Reader) next(want string) (string, Position, error) {
	if err := r.skipSpace(); err != nil {
		return "", r.Pos(), r.endOfStream(err, want)
	}
	pos := r.Pos()
	var sb strings.Builder
	for {
		c, err := r.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", pos, errors.Wrapf(err, "read %s", want)
		}
		if unicode.IsSpace(c) {
			r.unreadRune()
			break
		}
		sb.WriteRune(c)
	}
	r.tokens++
	return sb.String(), pos, nil
}

// nextLine reads the remainder of a line after skipping leading whitespace
func (r *Reader) nextLine(want string) (string, Position, error) {
	if err := r.skipSpace(); err != nil {
		return "", r.Pos(), r.endOfStream(err, want)
	}
	pos := r.Pos()
	var sb strings.Builder
	for {
		c, err := r.readRune()
		if err == io.EOF || c == '\n' {
			break
		}
		if err != nil {
			return "", pos, errors.Wrapf(err, "read %s", want)
		}
		sb.WriteRune(c)
	}
	r.tokens++
	return strings.TrimSuffix(sb.String(), "\r"), pos, nil
}

// nextRune reads a single non-whitespace character
func (r *Reader) nextRune(want string) (rune, Position, error) {
	if err := r.skipSpace(); err != nil {
		return 0, r.Pos(), r.endOfStream(err, want)
	}
	pos := r.Pos()
	c, err := r.readRune()
	if err != nil {
		return 0, pos, r.endOfStream(err, want)
	}
	r.tokens++
	return c, pos, nil
}

// skipSpace consumes whitespace up to the next non-space rune
func (r *Reader) skipSpace() error {
	for {
		c, err := r.readRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(c) {
			r.unreadRune()
			return nil
		}
	}
}

func (r *Reader) readRune() (rune, error) {
	c, _, err := r.br.ReadRune()
	if err != nil {
		return 0, err
	}
	r.prevLine, r.prevCol = r.line, r.col
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c, nil
}

// unreadRune must only follow a successful readRune
func (r *Reader) unreadRune() {
	_ = r.br.UnreadRune()
	r.line, r.col = r.prevLine, r.prevCol
}

// endOfStream converts io.EOF into a truncation error and wraps everything else
func (r *Reader) endOfStream(err error, want string) error {
	if err == io.EOF {
		return NewDecodeError(ErrTruncatedStream, r.Pos(), "", want, nil)
	}
	return errors.Wrapf(err, "read %s", want)
}
