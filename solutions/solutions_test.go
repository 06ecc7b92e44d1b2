package solutions

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/ValentinKolb/tcio/lib/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solve looks up a registered solution and runs it on the given token stream
func solve(t *testing.T, name string, format codec.Format, input string) string {
	t.Helper()
	sol, err := harness.Lookup(name)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = (&harness.Runner{Name: name, Format: format}).Run(strings.NewReader(input), &out, sol)
	require.NoError(t, err)
	return out.String()
}

func TestSolutions(t *testing.T) {
	tests := []struct {
		name     string
		examples string
		params   int
		want     string
	}{
		{"two-sum", "[2,7,11,15]\n9\n[3,2,4]\n6\n[3,3]\n6", 2, "[0,1]\n[1,2]\n[0,1]\n"},
		{"merge-intervals", "[[1,3],[2,6],[8,10],[15,18]]\n[[1,4],[4,5]]", 1, "[[1,6],[8,10],[15,18]]\n[[1,5]]\n"},
		{"min-max", "[3,1,4,1,5]\n[]", 1, "(1, 5)\n(0, 0)\n"},
		{"group-by-length", `["go","is","fun"]`, 1, "{2: [\"go\",\"is\"], 3: [\"fun\"]}\n"},
		{"reverse-list", "[1,2,3,4,5]\n[]", 1, "[5,4,3,2,1]\n[]\n"},
		{"merge-lists", "[1,2,4]\n[1,3,4]\n[]\n[0]", 2, "[1,1,2,3,4,4]\n[0]\n"},
		{"invert-tree", "[4,2,7,1,3,6,9]\n[2,1,3]\n[]", 1, "[4,7,2,9,6,3,1]\n[2,3,1]\n[]\n"},
		{"max-depth", "[3,9,20,null,null,15,7]\n[1,null,2]\n[]", 1, "3\n2\n0\n"},
		{"level-sums", "[3,9,20,null,null,15,7]", 1, "{0: 3, 1: 29, 2: 22}\n"},
		{"reverse-string", `["h","e","l","l","o"]`, 1, "[\"o\",\"l\",\"l\",\"e\",\"h\"]\n"},
		{"word-count", `"the cat and the hat"`, 1, "{\"and\": 1, \"cat\": 1, \"hat\": 1, \"the\": 2}\n"},
		{"unique-chars", `"hello"`, 1, "{\"e\", \"h\", \"l\", \"o\"}\n"},
		{"is-palindrome", "\"A man, a plan, a canal: Panama\"\n\"race a car\"", 1, "True\nFalse\n"},
		{"first-unique-char", "[\"l\",\"o\",\"v\",\"e\",\"l\",\"o\"]\n[\"a\",\"a\"]", 1, "2\n-1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := testcase.Convert(tt.examples, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, solve(t, tt.name, codec.FormatCanonical, input))
		})
	}
}

func TestMinStack(t *testing.T) {
	input, err := testcase.ConvertDesign(`
["MinStack","push","push","push","getMin","pop","top","getMin"]
[[],[-2],[0],[-3],[],[],[],[]]
["MinStack"]
[[]]
`)
	require.NoError(t, err)
	assert.Equal(t, "[null,null,null,null,-3,null,0,-2]\n[null]\n", solve(t, "min-stack", codec.FormatCanonical, input))

	t.Run("errors", func(t *testing.T) {
		sol, err := harness.Lookup("min-stack")
		require.NoError(t, err)

		tests := map[string]string{
			"not constructed first": "1\n1\npush\n1\n1\n",
			"unknown operation":     "1\n2\nMinStack\n0\n\npeek\n0\n\n",
			"pop on empty stack":    "1\n2\nMinStack\n0\n\npop\n0\n\n",
			"missing argument":      "1\n2\nMinStack\n0\n\npush\n0\n\n",
			"truncated":             "1\n2\nMinStack\n0\n",
		}
		for name, input := range tests {
			t.Run(name, func(t *testing.T) {
				var out bytes.Buffer
				_, err := (&harness.Runner{}).Run(strings.NewReader(input), &out, sol)
				assert.Error(t, err)
			})
		}
	})
}

func TestMinStackType(t *testing.T) {
	s := &MinStack{}
	s.Push(2)
	s.Push(1)
	s.Push(1)
	assert.Equal(t, 1, s.GetMin())
	s.Pop()
	assert.Equal(t, 1, s.GetMin())
	s.Pop()
	assert.Equal(t, 2, s.GetMin())
	assert.Equal(t, 2, s.Top())
	assert.Equal(t, 1, s.Len())
}

func TestRegistered(t *testing.T) {
	names := harness.Names()
	for _, name := range []string{"two-sum", "reverse-list", "invert-tree", "word-count", "min-stack"} {
		assert.Contains(t, names, name)
	}
}

func TestParams(t *testing.T) {
	tests := map[string]int{
		"two-sum":         2,
		"merge-lists":     2,
		"max-depth":       1,
		"reverse-string":  1,
		"group-by-length": 1,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			sol, err := harness.Lookup(name)
			require.NoError(t, err)
			params, ok := harness.Params(sol)
			assert.True(t, ok)
			assert.Equal(t, want, params)
		})
	}

	sol, err := harness.Lookup("min-stack")
	require.NoError(t, err)
	assert.True(t, harness.IsDesign(sol))
}
