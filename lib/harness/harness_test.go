package harness

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/VictoriaMetrics/metrics"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSum(nums []int, target int) []int {
	seen := make(map[int]int, len(nums))
	for i, n := range nums {
		if j, ok := seen[target-n]; ok {
			return []int{j, i}
		}
		seen[n] = i
	}
	return []int{}
}

func run(t *testing.T, runner Runner, sol Solution, input string) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	stats, err := runner.Run(strings.NewReader(input), &out, sol)
	return out.String(), stats, err
}

func TestRunnerTwoSum(t *testing.T) {
	out, stats, err := run(t, Runner{Name: "test-two-sum"}, Func2(twoSum), "2\n4 2 7 11 15\n9\n3 3 2 4\n6\n")
	require.NoError(t, err)
	assert.Equal(t, "[0,1]\n[1,2]\n", out)
	assert.Equal(t, 2, stats.Cases)
	assert.Equal(t, 12, stats.Tokens)

	assert.Equal(t, uint64(2), metrics.GetOrCreateCounter(`tcio_cases_total{solution="test-two-sum"}`).Get())
	assert.Equal(t, uint64(12), metrics.GetOrCreateCounter(`tcio_tokens_total{solution="test-two-sum"}`).Get())
}

func TestRunnerZeroCases(t *testing.T) {
	out, stats, err := run(t, Runner{}, Func2(twoSum), "0")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, stats.Cases)
}

func TestRunnerFormats(t *testing.T) {
	reverse := Func1(func(head *codec.ListNode) *codec.ListNode {
		var prev *codec.ListNode
		for head != nil {
			next := head.Next
			head.Next = prev
			prev, head = head, next
		}
		return prev
	})

	tests := []struct {
		format codec.Format
		want   string
	}{
		{codec.FormatCanonical, "[3,2,1]\n[]\n"},
		{codec.FormatDebug, "3 -> 2 -> 1\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			out, _, err := run(t, Runner{Format: tt.format}, reverse, "2\n3 1 2 3\n0\n")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRunnerErrors(t *testing.T) {
	t.Run("negative count", func(t *testing.T) {
		_, _, err := run(t, Runner{}, Func2(twoSum), "-1")
		assert.ErrorIs(t, err, codec.ErrInvalidCount)
	})

	t.Run("missing count", func(t *testing.T) {
		_, _, err := run(t, Runner{}, Func2(twoSum), "")
		assert.ErrorIs(t, err, codec.ErrTruncatedStream)
	})

	t.Run("bad case is numbered", func(t *testing.T) {
		out, stats, err := run(t, Runner{Name: "test-errors"}, Func2(twoSum), "3\n2 1 2\n3\n2 1 x\n3\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrFormat)
		assert.Contains(t, err.Error(), "test case 2 of 3")
		assert.Contains(t, err.Error(), "argument 1")
		// the first result is still written
		assert.Equal(t, "[0,1]\n", out)
		assert.Equal(t, 1, stats.Cases)
		assert.Equal(t, uint64(1), metrics.GetOrCreateCounter(`tcio_run_errors_total{solution="test-errors"}`).Get())
	})

	t.Run("truncated case", func(t *testing.T) {
		_, _, err := run(t, Runner{}, Func2(twoSum), "2\n2 1 2\n3\n")
		assert.ErrorIs(t, err, codec.ErrTruncatedStream)
		assert.Contains(t, err.Error(), "test case 2 of 2")
	})

	t.Run("solution error", func(t *testing.T) {
		boom := errors.New("boom")
		_, _, err := run(t, Runner{}, SolutionFunc(func(*codec.Reader, *codec.Writer) error {
			return boom
		}), "1")
		assert.ErrorIs(t, err, boom)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRunnerWriteError(t *testing.T) {
	_, err := (&Runner{}).Run(strings.NewReader("1 2 1 2 3"), failingWriter{}, Func2(twoSum))
	assert.ErrorContains(t, err, "closed pipe")
}

func TestAdapters(t *testing.T) {
	t.Run("func1", func(t *testing.T) {
		count := Func1(func(s string) map[codec.Char]int {
			out := make(map[codec.Char]int)
			for _, c := range s {
				out[codec.Char(c)]++
			}
			return out
		})
		out, _, err := run(t, Runner{}, count, "1\nabca\n")
		require.NoError(t, err)
		assert.Equal(t, "{\"a\": 2, \"b\": 1, \"c\": 1}\n", out)
	})

	t.Run("func3", func(t *testing.T) {
		clamp := Func3(func(v, lo, hi float64) float64 {
			return max(lo, min(v, hi))
		})
		out, _, err := run(t, Runner{}, clamp, "2\n5.5 0 1\n-2 -1.5 3\n")
		require.NoError(t, err)
		assert.Equal(t, "1\n-1.5\n", out)

		_, _, err = run(t, Runner{}, clamp, "1\n5.5 0 x\n")
		assert.ErrorContains(t, err, "argument 3")
	})

	t.Run("proc1", func(t *testing.T) {
		reverse := Proc1(func(s []codec.Char) {
			slices.Reverse(s)
		})
		out, _, err := run(t, Runner{Format: codec.FormatLeetCode}, reverse, "1\n5 h e l l o\n")
		require.NoError(t, err)
		assert.Equal(t, "[\"o\",\"l\",\"l\",\"e\",\"h\"]\n", out)
	})

	t.Run("unsupported type panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Func1(func(ch chan int) int { return 0 })
		})
	})
}

func TestRegistry(t *testing.T) {
	sol := Func2(twoSum)
	Register("test-registry-b", sol)
	Register("test-registry-a", sol)

	got, err := Lookup("test-registry-a")
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = Lookup("test-registry-missing")
	assert.ErrorIs(t, err, ErrUnknownSolution)
	assert.Contains(t, err.Error(), `"test-registry-missing"`)

	names := Names()
	assert.True(t, slices.IsSorted(names))
	assert.Subset(t, names, []string{"test-registry-a", "test-registry-b"})

	assert.Panics(t, func() { Register("test-registry-a", sol) })
	assert.Panics(t, func() { Register("test-registry-nil", nil) })
}

func TestWriteMetrics(t *testing.T) {
	_, _, err := run(t, Runner{Name: "test-metrics"}, Func2(twoSum), "1 2 1 2 3")
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteMetrics(&buf)
	assert.Contains(t, buf.String(), `tcio_cases_total{solution="test-metrics"} 1`)
	assert.Contains(t, buf.String(), `tcio_case_duration_seconds_count{solution="test-metrics"} 1`)
}

func TestRunnerExpect(t *testing.T) {
	input := "3\n2 1 2\n3\n3 3 2 4\n6\n2 3 3\n6\n"

	t.Run("all match", func(t *testing.T) {
		var out bytes.Buffer
		runner := Runner{Expect: strings.NewReader("[0,1]\n[1,2]\n[0,1]\n")}
		stats, err := runner.Run(strings.NewReader(input), &out, Func2(twoSum))
		require.NoError(t, err)
		assert.Equal(t, "[0,1]\n[1,2]\n[0,1]\n", out.String())
		assert.Equal(t, 3, stats.Cases)
		assert.Zero(t, stats.Mismatches)
	})

	t.Run("mismatch is numbered and the run continues", func(t *testing.T) {
		var out bytes.Buffer
		runner := Runner{Name: "test-expect", Expect: strings.NewReader("[0,1]\n[0,2]\n[0,1]")}
		stats, err := runner.Run(strings.NewReader(input), &out, Func2(twoSum))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMismatch)
		assert.Contains(t, err.Error(), "1 of 3 test cases")
		assert.Contains(t, err.Error(), "test case 2: expected [0,2], got [1,2]")
		assert.Equal(t, "[0,1]\n[1,2]\n[0,1]\n", out.String())
		assert.Equal(t, 3, stats.Cases)
		assert.Equal(t, 1, stats.Mismatches)
		assert.Equal(t, uint64(1), metrics.GetOrCreateCounter(`tcio_mismatches_total{solution="test-expect"}`).Get())
	})

	t.Run("missing expected lines", func(t *testing.T) {
		runner := Runner{Expect: strings.NewReader("[0,1]\n")}
		stats, err := runner.Run(strings.NewReader(input), &bytes.Buffer{}, Func2(twoSum))
		assert.ErrorIs(t, err, ErrMismatch)
		assert.Contains(t, err.Error(), "test case 3: no expected output, got [0,1]")
		assert.Equal(t, 2, stats.Mismatches)
	})

	t.Run("extra expected lines", func(t *testing.T) {
		runner := Runner{Expect: strings.NewReader("[0,1]\n[1,2]\n[0,1]\n[9,9]\n\n")}
		_, err := runner.Run(strings.NewReader(input), &bytes.Buffer{}, Func2(twoSum))
		assert.ErrorIs(t, err, ErrMismatch)
		assert.Contains(t, err.Error(), "1 more lines than the 3 test cases")
	})

	t.Run("windows line endings", func(t *testing.T) {
		runner := Runner{Expect: strings.NewReader("[0,1]\r\n[1,2]\r\n[0,1]\r\n")}
		_, err := runner.Run(strings.NewReader(input), &bytes.Buffer{}, Func2(twoSum))
		assert.NoError(t, err)
	})

	t.Run("decode errors still abort", func(t *testing.T) {
		var out bytes.Buffer
		runner := Runner{Expect: strings.NewReader("[0,1]\n[1,2]\n")}
		_, err := runner.Run(strings.NewReader("2\n2 1 2\n3\n2 x\n"), &out, Func2(twoSum))
		assert.ErrorIs(t, err, codec.ErrFormat)
		assert.NotErrorIs(t, err, ErrMismatch)
		assert.Equal(t, "[0,1]\n", out.String())
	})
}

func TestParamsAndDesign(t *testing.T) {
	tests := []struct {
		name   string
		sol    Solution
		params int
		known  bool
	}{
		{"func1", Func1(func(v []int) int { return len(v) }), 1, true},
		{"func2", Func2(twoSum), 2, true},
		{"func3", Func3(func(a, b, c int) int { return a + b + c }), 3, true},
		{"proc1", Proc1(func(v []int) {}), 1, true},
		{"solution func", SolutionFunc(func(*codec.Reader, *codec.Writer) error { return nil }), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := Params(tt.sol)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.params, params)
			assert.False(t, IsDesign(tt.sol))
		})
	}

	design := Design(SolutionFunc(func(_ *codec.Reader, w *codec.Writer) error {
		w.WriteString("ok")
		return nil
	}))
	assert.True(t, IsDesign(design))
	_, ok := Params(design)
	assert.False(t, ok)

	out, _, err := run(t, Runner{}, design, "1")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}
