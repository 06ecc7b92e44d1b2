package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/tcio/cmd/convert"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and stdin. Flags are reset first
// since cobra keeps their values between executions.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out, errOut bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	err := RootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "tcio v"+Version+"\n", out)
}

func TestSolutionsCmd(t *testing.T) {
	out, err := execute(t, "", "solutions")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "two-sum")
	assert.Contains(t, strings.Split(out, "\n"), "min-stack")
}

func TestRunCmd(t *testing.T) {
	input := "1\n5 1 2 3 4 5\n"
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"run", "reverse-list"}, "[5,4,3,2,1]\n"},
		{[]string{"run", "reverse-list", "--format", "debug"}, "5 -> 4 -> 3 -> 2 -> 1\n"},
		{[]string{"run", "reverse-list", "--format", "debug", "--list-render", "array"}, "[5, 4, 3, 2, 1]\n"},
		{[]string{"run", "reverse-list", "--delimiter", "space"}, "5 4 3 2 1\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, input, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRunCmdFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "two-sum.in")
	outFile := filepath.Join(dir, "two-sum.out")
	require.NoError(t, os.WriteFile(in, []byte("1\n4 2 7 11 15\n9\n"), 0o644))

	_, err := execute(t, "", "run", "two-sum", "-i", in, "-o", outFile)
	require.NoError(t, err)

	got, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "[0,1]\n", string(got))
}

func TestRunCmdErrors(t *testing.T) {
	_, err := execute(t, "1\n1\n", "run", "no-such-solution")
	assert.ErrorContains(t, err, "no-such-solution")

	_, err = execute(t, "1\n1\n", "run", "max-depth", "--format", "fancy")
	assert.Error(t, err)

	_, err = execute(t, "2\n1\n1\n", "run", "max-depth")
	assert.ErrorContains(t, err, "test case 2 of 2")

	_, err = execute(t, "", "run")
	assert.Error(t, err)
}

func TestConvertCmd(t *testing.T) {
	out, err := execute(t, "[2,7,11,15]\n9\n", "convert", "--params", "2")
	require.NoError(t, err)
	assert.Equal(t, "1\n4\n2 7 11 15\n9\n", out)

	out, err = execute(t, "[\"MinStack\",\"push\"]\n[[],[1]]\n", "convert", "--design")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\nMinStack\n0\n\npush\n1\n1\n", out)

	_, err = execute(t, "1", "convert", "--params", "0")
	assert.Error(t, err)
}

func TestConvertCmdFiles(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	files := map[string]string{
		"a.txt": "[1,2,3]\n",
		"b.txt": "[3,9,20,null,null,15,7]\n[]\n",
	}
	var args []string
	for name, text := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
		args = append(args, path)
	}

	_, err := execute(t, "", append([]string{"convert", "--out-dir", outDir, "--parallel", "2"}, args...)...)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(outDir, "a.in"))
	require.NoError(t, err)
	assert.Equal(t, "1\n3\n1 2 3\n", string(a))

	b, err := os.ReadFile(filepath.Join(outDir, "b.in"))
	require.NoError(t, err)
	assert.Equal(t, "2\n7\n3 9 20 null null 15 7\n0\n\n", string(b))

	// the converted file runs as is
	out, err := execute(t, string(b), "run", "max-depth")
	require.NoError(t, err)
	assert.Equal(t, "3\n0\n", out)

	_, err = execute(t, "", "convert", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestRunCmdExpect(t *testing.T) {
	dir := t.TempDir()
	expected := filepath.Join(dir, "two-sum.out")
	input := "2\n4 2 7 11 15\n9\n3 3 2 4\n6\n"

	require.NoError(t, os.WriteFile(expected, []byte("[0,1]\n[1,2]\n"), 0o644))
	out, err := execute(t, input, "run", "two-sum", "--expect", expected)
	require.NoError(t, err)
	assert.Equal(t, "[0,1]\n[1,2]\n", out)

	require.NoError(t, os.WriteFile(expected, []byte("[0,1]\n[2,1]\n"), 0o644))
	out, err = execute(t, input, "run", "two-sum", "-e", expected)
	assert.ErrorIs(t, err, harness.ErrMismatch)
	assert.ErrorContains(t, err, "test case 2: expected [2,1], got [1,2]")
	assert.Equal(t, "[0,1]\n[1,2]\n", out)

	_, err = execute(t, input, "run", "two-sum", "--expect", filepath.Join(dir, "missing.out"))
	assert.Error(t, err)
}

func TestConvertCmdSolution(t *testing.T) {
	out, err := execute(t, "[2,7,11,15]\n9\n[3,2,4]\n6\n", "convert", "--solution", "two-sum")
	require.NoError(t, err)
	assert.Equal(t, "2\n4\n2 7 11 15\n9\n3\n3 2 4\n6\n", out)

	out, err = execute(t, "[\"MinStack\",\"push\",\"getMin\"]\n[[],[5],[]]\n", "convert", "-s", "min-stack")
	require.NoError(t, err)
	assert.Equal(t, "1\n3\nMinStack\n0\n\npush\n1\n5\ngetMin\n0\n\n", out)

	_, err = execute(t, "1", "convert", "--solution", "no-such-solution")
	assert.ErrorContains(t, err, "no-such-solution")

	_, err = execute(t, "1", "convert", "--solution", "two-sum", "--params", "2")
	assert.Error(t, err)
}

// TestConvertAndCheck converts example inputs and outputs and checks a
// solution against them, the whole workflow of the command line tool
func TestConvertAndCheck(t *testing.T) {
	dir := t.TempDir()
	examples := filepath.Join(dir, "is-palindrome.txt")
	outputs := filepath.Join(dir, "is-palindrome-expected.txt")
	require.NoError(t, os.WriteFile(examples, []byte("\"racecar\"\n\"ab\"\n"), 0o644))
	require.NoError(t, os.WriteFile(outputs, []byte("true\nfalse\n"), 0o644))

	_, err := execute(t, "", "convert", "--solution", "is-palindrome", examples)
	require.NoError(t, err)
	_, err = execute(t, "", "convert", "--expected", outputs)
	require.NoError(t, err)

	expected := filepath.Join(dir, "is-palindrome-expected.out")
	got, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.Equal(t, "True\nFalse\n", string(got))

	out, err := execute(t, "", "run", "is-palindrome", "-i", filepath.Join(dir, "is-palindrome.in"), "-e", expected)
	require.NoError(t, err)
	assert.Equal(t, "True\nFalse\n", out)

	require.NoError(t, os.WriteFile(outputs, []byte("true\ntrue\n"), 0o644))
	_, err = execute(t, "", "convert", "--expected", outputs)
	require.NoError(t, err)
	_, err = execute(t, "", "run", "is-palindrome", "-i", filepath.Join(dir, "is-palindrome.in"), "-e", expected)
	assert.ErrorIs(t, err, harness.ErrMismatch)
	assert.ErrorContains(t, err, "1 of 2 test cases")
	assert.ErrorContains(t, err, "test case 2: expected True, got False")
}

func TestConvertCmdConflicts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cases.in")
	original := []byte("[1,2,3]\n")
	require.NoError(t, os.WriteFile(src, original, 0o644))

	_, err := execute(t, "", "convert", src)
	assert.ErrorIs(t, err, convert.ErrOutputConflict)

	// the input is untouched
	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, original, got)

	for _, sub := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, sub, "x.txt"), original, 0o644))
	}
	_, err = execute(t, "", "convert", "--out-dir", filepath.Join(dir, "out"),
		filepath.Join(dir, "a", "x.txt"), filepath.Join(dir, "b", "x.txt"))
	assert.ErrorIs(t, err, convert.ErrOutputConflict)
	assert.NoFileExists(t, filepath.Join(dir, "out", "x.in"))
}
