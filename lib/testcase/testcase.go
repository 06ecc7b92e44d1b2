package testcase

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("testcase")

// ErrInvalidLiteral is returned for lines that are not valid example literals
var ErrInvalidLiteral = errors.New("invalid literal")

// numbers are kept as json.Number so that large integers are copied verbatim
var literalAPI = sonic.Config{UseNumber: true}.Froze()

// Convert turns example inputs, one literal per line, into the count-prefixed
// token stream read by the harness. Every params lines form one test case;
// blank lines are ignored.
//
//	[2,7,11,15]        2
//	9             ->   4
//	[3,2,4]            2 7 11 15
//	6                  9
//	                   3
//	                   3 2 4
//	                   6
func Convert(text string, params int) (string, error) {
	if params <= 0 {
		return "", errors.Newf("number of parameters must be positive, got %d", params)
	}
	lines := literalLines(text)
	cases := (len(lines) + params - 1) / params

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(cases))
	sb.WriteString("\n")
	for _, l := range lines {
		v, err := l.parse()
		if err != nil {
			return "", err
		}
		if err := writeLiteral(&sb, v); err != nil {
			return "", l.wrap(err)
		}
	}

	if len(lines)%params != 0 {
		Logger.Warningf("%d literals do not split into test cases of %d parameters", len(lines), params)
	}
	Logger.Debugf("converted %d literals into %d test cases", len(lines), cases)
	return sb.String(), nil
}

// ConvertDesign converts examples of design problems, where each test case is
// a pair of lines: the operation names and the argument list of each operation.
//
//	["MinStack","push","top"]      1
//	[[],[-2],[]]              ->   3
//	                               MinStack
//	                               0
//	                               push
//	                               1
//	                               -2
//	                               top
//	                               0
func ConvertDesign(text string) (string, error) {
	lines := literalLines(text)
	if len(lines)%2 != 0 {
		return "", errors.Wrapf(ErrInvalidLiteral, "line %d: operations without arguments", lines[len(lines)-1].number)
	}

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(len(lines) / 2))
	sb.WriteString("\n")
	for i := 0; i < len(lines); i += 2 {
		ops, err := lines[i].array()
		if err != nil {
			return "", err
		}
		args, err := lines[i+1].array()
		if err != nil {
			return "", err
		}
		if len(ops) != len(args) {
			return "", lines[i+1].wrap(errors.Newf("%d operations but %d argument lists", len(ops), len(args)))
		}

		sb.WriteString(strconv.Itoa(len(ops)))
		sb.WriteString("\n")
		for j, op := range ops {
			name, ok := op.(string)
			if !ok {
				return "", lines[i].wrap(errors.Newf("operation %d is not a string", j+1))
			}
			sb.WriteString(name)
			sb.WriteString("\n")

			opArgs, ok := args[j].([]interface{})
			if !ok {
				return "", lines[i+1].wrap(errors.Newf("arguments of operation %d are not a list", j+1))
			}
			if err := writeArray(&sb, opArgs); err != nil {
				return "", lines[i+1].wrap(err)
			}
		}
	}

	Logger.Debugf("converted %d design test cases", len(lines)/2)
	return sb.String(), nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

type line struct {
	number int
	text   string
}

// literalLines returns the non-blank, trimmed lines of text with their 1-based numbers
func literalLines(text string) []line {
	var out []line
	for i, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, line{number: i + 1, text: l})
		}
	}
	return out
}

func (l line) parse() (interface{}, error) {
	var v interface{}
	if err := literalAPI.UnmarshalFromString(l.text, &v); err != nil {
		return nil, l.wrap(err)
	}
	return v, nil
}

func (l line) array() ([]interface{}, error) {
	v, err := l.parse()
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, l.wrap(errors.New("expected a list"))
	}
	return arr, nil
}

func (l line) wrap(err error) error {
	return errors.Wrapf(errors.Mark(err, ErrInvalidLiteral), "line %d: %s: %s", l.number, ErrInvalidLiteral, l.text)
}

// writeLiteral writes a parsed literal: scalars on one line, lists count-prefixed
func writeLiteral(sb *strings.Builder, v interface{}) error {
	if arr, ok := v.([]interface{}); ok {
		return writeArray(sb, arr)
	}
	s, err := scalar(v)
	if err != nil {
		return err
	}
	sb.WriteString(s)
	sb.WriteString("\n")
	return nil
}

// writeArray writes the count of arr and then its elements. Nested lists are
// written recursively, strings one per line and other scalars space separated
// on one line.
func writeArray(sb *strings.Builder, arr []interface{}) error {
	sb.WriteString(strconv.Itoa(len(arr)))
	sb.WriteString("\n")
	if len(arr) == 0 {
		// keeps the line structure of an empty list of scalars
		sb.WriteString("\n")
		return nil
	}

	switch arr[0].(type) {
	case []interface{}:
		for i, item := range arr {
			sub, ok := item.([]interface{})
			if !ok {
				return errors.Newf("element %d is not a list", i+1)
			}
			if err := writeArray(sb, sub); err != nil {
				return err
			}
		}
	case string:
		for _, item := range arr {
			s, err := scalar(item)
			if err != nil {
				return err
			}
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	default:
		for i, item := range arr {
			s, err := scalar(item)
			if err != nil {
				return err
			}
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(s)
		}
		sb.WriteString("\n")
	}
	return nil
}

func scalar(v interface{}) (string, error) {
	switch v := v.(type) {
	case nil:
		return "null", nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return v, nil
	default:
		return "", errors.Newf("unexpected value %v", v)
	}
}
