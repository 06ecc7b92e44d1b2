package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error kinds reported by decode operations. Use errors.Is to test for them.
var (
	// ErrFormat is returned when a token is not a valid literal of the requested type
	ErrFormat = errors.New("malformed token")
	// ErrTruncatedStream is returned when the stream ends before a value is complete
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrInvalidCount is returned when a length prefix is negative
	ErrInvalidCount = errors.New("invalid count")
	// ErrUnsupportedType is returned when no rule can be resolved for a Go type
	ErrUnsupportedType = errors.New("unsupported type")
)

// Position is a location in the input stream.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in runes
	Token  int // number of tokens consumed before this position
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d (token #%d)", p.Line, p.Column, p.Token+1)
}

// DecodeError describes a failed decode: what was expected, what was found and where.
// It unwraps to its Kind, so errors.Is(err, ErrFormat) holds for format errors.
type DecodeError struct {
	Kind  error    // one of ErrFormat, ErrTruncatedStream, ErrInvalidCount
	Pos   Position // where the offending token starts (or where the stream ended)
	Token string   // the offending token, empty if the stream ended
	Want  string   // human-readable name of the expected value
	Cause error    // optional underlying parse error
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Want != "" {
		sb.WriteString(": expected ")
		sb.WriteString(e.Want)
	}
	if e.Token != "" {
		sb.WriteString(", got ")
		sb.WriteString(strconv.Quote(e.Token))
	}
	sb.WriteString(" at ")
	sb.WriteString(e.Pos.String())
	if e.Cause != nil {
		sb.WriteString(" (")
		sb.WriteString(e.Cause.Error())
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// NewDecodeError creates a DecodeError with a stack trace attached.
// Custom rules use it to report malformed input the same way the built-in rules do.
func NewDecodeError(kind error, pos Position, token, want string, cause error) error {
	return errors.WithStackDepth(&DecodeError{
		Kind:  kind,
		Pos:   pos,
		Token: token,
		Want:  want,
		Cause: cause,
	}, 1)
}

// numCause strips the strconv wrapper so only "invalid syntax" or
// "value out of range" ends up in the message.
func numCause(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
