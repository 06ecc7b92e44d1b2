package testcase

import (
	"encoding/json"
	"strings"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/cockroachdb/errors"
)

// ConvertExpected converts example outputs, one literal per line, into the
// result lines the harness writes in format f. The converted text is meant
// for harness.Runner.Expect.
//
//	[0,1]          [0,1]
//	true      ->   True
//	"abc"          abc       (canonical format)
//
// Lists and trees are written like sequences, so the chain list rendering and
// the space delimiter are only reproduced for flat sequences.
func ConvertExpected(text string, f codec.Format) (string, error) {
	lines := literalLines(text)

	var sb strings.Builder
	w := codec.NewWriter(&sb, f)
	for _, l := range lines {
		v, err := l.parse()
		if err != nil {
			return "", err
		}
		if err := writeResult(w, v); err != nil {
			return "", l.wrap(err)
		}
		w.Newline()
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	Logger.Debugf("converted %d expected results", len(lines))
	return sb.String(), nil
}

// writeResult writes a parsed literal the way the codec rules encode the
// matching Go value
func writeResult(w *codec.Writer, v interface{}) error {
	switch v := v.(type) {
	case []interface{}:
		var err error
		w.WriteSequence(len(v), func(i int) {
			if err == nil {
				err = writeResult(w, v[i])
			}
		})
		return err
	case string:
		w.WriteQuoted(v)
	case bool:
		codec.Bool.Encode(w, v)
	case nil:
		w.WriteString("null")
	case json.Number:
		// floats are normalized the way the float rules write them, 2.50000 -> 2.5
		if strings.ContainsAny(v.String(), ".eE") {
			f, err := v.Float64()
			if err != nil {
				return err
			}
			codec.Float64.Encode(w, f)
			return nil
		}
		w.WriteString(v.String())
	default:
		return errors.Newf("unexpected value %v", v)
	}
	return nil
}
