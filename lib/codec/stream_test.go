package codec

import (
	"bufio"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPositions(t *testing.T) {
	r := NewReader(strings.NewReader("12  ab\r\n\tc"))
	assert.Equal(t, Position{Line: 1, Column: 1, Token: 0}, r.Pos())

	tok, err := r.Token()
	require.NoError(t, err)
	assert.Equal(t, "12", tok)
	assert.Equal(t, Position{Line: 1, Column: 3, Token: 1}, r.Pos())

	tok, err = r.Token()
	require.NoError(t, err)
	assert.Equal(t, "ab", tok)

	c, err := r.Rune()
	require.NoError(t, err)
	assert.Equal(t, 'c', c)
	assert.Equal(t, Position{Line: 2, Column: 3, Token: 3}, r.Pos())
	assert.Equal(t, 3, r.Consumed())

	_, err = r.Token()
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrTruncatedStream, de.Kind)
	assert.Equal(t, "token", de.Want)
}

func TestReaderLine(t *testing.T) {
	r := NewReader(strings.NewReader("x\n  two words\r\n"))
	_, err := r.Rune()
	require.NoError(t, err)
	line, err := r.Line()
	require.NoError(t, err)
	assert.Equal(t, "two words", line)
	_, err = r.Line()
	assert.ErrorIs(t, err, ErrTruncatedStream)
}

func TestReaderCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
		err   error
	}{
		{"0", 0, nil},
		{"42", 42, nil},
		{"-1", 0, ErrInvalidCount},
		{"1.0", 0, ErrFormat},
		{"", 0, ErrTruncatedStream},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := NewReader(strings.NewReader(tt.input)).Count()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestReaderSharesBufio(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("1 2"))
	a, err := Int.Decode(NewReader(br))
	require.NoError(t, err)
	b, err := Int.Decode(NewReader(br))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, []int{a, b})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriterStickyError(t *testing.T) {
	w := NewWriter(failingWriter{}, FormatCanonical)
	w.WriteString("lost")
	require.NoError(t, w.Err())

	err := w.Flush()
	require.Error(t, err)
	assert.Equal(t, err, w.Err())

	SliceOf(Int).Encode(w, []int{1, 2})
	assert.Equal(t, err, w.Flush())
}

func TestWriterQuotingDepth(t *testing.T) {
	tests := []struct {
		quoting Quoting
		top     string
		nested  string
	}{
		{QuoteNested, "s", `("s", "t")`},
		{QuoteAlways, `"s"`, `("s", "t")`},
		{QuoteNever, "s", "(s, t)"},
	}
	for _, tt := range tests {
		t.Run(tt.quoting.String(), func(t *testing.T) {
			f := Format{Quoting: tt.quoting}
			assert.Equal(t, tt.top, encodeTo(String, f, "s"))
			assert.Equal(t, tt.nested, encodeTo(PairOf(String, Rune), f, MakePair[string, Char]("s", 't')))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, []string{"canonical", "debug", "leetcode"}, FormatNames())

	f, err := ParseFormat(" LeetCode ")
	require.NoError(t, err)
	assert.Equal(t, FormatLeetCode, f)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "canonical, debug, leetcode")

	q, err := ParseQuoting("always")
	require.NoError(t, err)
	assert.Equal(t, QuoteAlways, q)

	d, err := ParseDelimiter("comma-space")
	require.NoError(t, err)
	assert.Equal(t, DelimCommaSpace, d)

	l, err := ParseListRender("chain")
	require.NoError(t, err)
	assert.Equal(t, ListChain, l)

	_, err = ParseDelimiter("tab")
	assert.ErrorContains(t, err, "comma, comma-space, space")

	assert.Equal(t, "quoting=never delimiter=comma-space list=chain", FormatDebug.String())
	assert.Equal(t, FormatCanonical, Format{})
}
