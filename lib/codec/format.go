package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// --------------------------------------------------------------------------
// Output options
// --------------------------------------------------------------------------

// Quoting controls whether strings and characters are wrapped in double quotes.
type Quoting int

const (
	// QuoteNested quotes strings and characters only inside containers
	QuoteNested Quoting = iota
	// QuoteNever never quotes
	QuoteNever
	// QuoteAlways quotes at every level
	QuoteAlways
)

// Delimiter controls how sequence elements are separated.
type Delimiter int

const (
	// DelimComma renders [a,b,c]
	DelimComma Delimiter = iota
	// DelimCommaSpace renders [a, b, c]
	DelimCommaSpace
	// DelimSpace renders a b c (no brackets)
	DelimSpace
)

// ListRender controls how linked lists are rendered.
type ListRender int

const (
	// ListArray renders a list like a sequence of its values
	ListArray ListRender = iota
	// ListChain renders 1 -> 2 -> 3
	ListChain
)

// Format is the output configuration of a Writer. The zero value is the canonical format.
type Format struct {
	Quoting    Quoting
	Delimiter  Delimiter
	ListRender ListRender
}

var (
	// FormatCanonical quotes nested strings, uses [a,b] sequences and array lists
	FormatCanonical = Format{Quoting: QuoteNested, Delimiter: DelimComma, ListRender: ListArray}
	// FormatLeetCode quotes every string, which keeps sequences, lists and trees JSON compatible
	FormatLeetCode = Format{Quoting: QuoteAlways, Delimiter: DelimComma, ListRender: ListArray}
	// FormatDebug never quotes and renders lists as chains
	FormatDebug = Format{Quoting: QuoteNever, Delimiter: DelimCommaSpace, ListRender: ListChain}
)

var presets = map[string]Format{
	"canonical": FormatCanonical,
	"leetcode":  FormatLeetCode,
	"debug":     FormatDebug,
}

var (
	quotingNames    = map[Quoting]string{QuoteNested: "nested", QuoteNever: "never", QuoteAlways: "always"}
	delimiterNames  = map[Delimiter]string{DelimComma: "comma", DelimCommaSpace: "comma-space", DelimSpace: "space"}
	listRenderNames = map[ListRender]string{ListArray: "array", ListChain: "chain"}
)

func (q Quoting) String() string    { return quotingNames[q] }
func (d Delimiter) String() string  { return delimiterNames[d] }
func (l ListRender) String() string { return listRenderNames[l] }

func (f Format) String() string {
	return fmt.Sprintf("quoting=%s delimiter=%s list=%s", f.Quoting, f.Delimiter, f.ListRender)
}

// layout returns the opening bracket, element separator and closing bracket of a sequence
func (d Delimiter) layout() (open, sep, closing string) {
	switch d {
	case DelimCommaSpace:
		return "[", ", ", "]"
	case DelimSpace:
		return "", " ", ""
	default:
		return "[", ",", "]"
	}
}

// treeSeparator returns the separator between level-order slots; trees always keep their brackets
func (d Delimiter) treeSeparator() string {
	if d == DelimCommaSpace {
		return ", "
	}
	return ","
}

// --------------------------------------------------------------------------
// Parsing (used by the CLI)
// --------------------------------------------------------------------------

// FormatNames returns the names of all format presets in sorted order
func FormatNames() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}

// ParseFormat returns the preset with the given name
func ParseFormat(name string) (Format, error) {
	f, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, errors.Newf("invalid format %q (expected one of: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// ParseQuoting parses never, nested or always
func ParseQuoting(s string) (Quoting, error) {
	return parseOption(s, quotingNames, "quoting")
}

// ParseDelimiter parses comma, comma-space or space
func ParseDelimiter(s string) (Delimiter, error) {
	return parseOption(s, delimiterNames, "delimiter")
}

// ParseListRender parses array or chain
func ParseListRender(s string) (ListRender, error) {
	return parseOption(s, listRenderNames, "list render")
}

func parseOption[T comparable](s string, names map[T]string, what string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for opt, name := range names {
		if name == s {
			return opt, nil
		}
	}
	valid := lo.Values(names)
	sort.Strings(valid)
	var zero T
	return zero, errors.Newf("invalid %s %q (expected one of: %s)", what, s, strings.Join(valid, ", "))
}
