package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ValentinKolb/tcio/cmd/util"
	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/ValentinKolb/tcio/lib/testcase"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const (
	// InputExt is the extension of converted example inputs
	InputExt = ".in"
	// ExpectedExt is the extension of converted example outputs
	ExpectedExt = ".out"
)

// ErrOutputConflict is returned when a converted file would overwrite its
// source or the output of another file
var ErrOutputConflict = errors.New("output conflict")

var (
	Logger = logger.GetLogger("convert")

	convertParams   = 1
	convertDesign   = false
	convertExpected = false
	convertFormat   = codec.FormatCanonical
	convertOutDir   = ""
	convertParallel = runtime.NumCPU()

	ConvertCmd = &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert LeetCode example inputs into multi-case input",
		Long: `Convert LeetCode example inputs, one JSON literal per line, into the multi-case input read by "tcio run".

The number of parameters per test case is taken from --params, or from the signature of the solution named by --solution. With --expected the example outputs are converted instead, into the result lines "tcio run --expect" compares with (written in the output format given by --format and its overrides).

Without files the examples are read from stdin and written to stdout. Every file is converted into a file with the extension ` + InputExt + ` (` + ExpectedExt + ` for --expected), next to it or in --out-dir.`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "params"
	ConvertCmd.Flags().IntP(key, "p", 1, util.WrapString("Number of parameters (lines) per test case"))

	key = "design"
	ConvertCmd.Flags().Bool(key, false, util.WrapString("Convert design problems: every test case is a line of operation names and a line of argument lists"))

	key = "solution"
	ConvertCmd.Flags().StringP(key, "s", "", util.WrapString("Registered solution the examples are for. Sets --params (or --design) from the solution"))

	key = "expected"
	ConvertCmd.Flags().Bool(key, false, util.WrapString("Convert example outputs, one per test case, into expected result lines"))

	key = "out-dir"
	ConvertCmd.Flags().String(key, "", util.WrapString("Directory for the converted files (default next to the input file)"))

	key = "parallel"
	ConvertCmd.Flags().Int(key, runtime.NumCPU(), util.WrapString("Number of files converted at the same time"))

	ConvertCmd.MarkFlagsMutuallyExclusive("solution", "params")
	ConvertCmd.MarkFlagsMutuallyExclusive("solution", "design")
	ConvertCmd.MarkFlagsMutuallyExclusive("expected", "params")
	ConvertCmd.MarkFlagsMutuallyExclusive("expected", "design")
}

func processConfig(cmd *cobra.Command, args []string) error {
	if err := util.PrepareCommand(cmd, args); err != nil {
		return err
	}

	convertParams = viper.GetInt("params")
	convertDesign = viper.GetBool("design")
	convertExpected = viper.GetBool("expected")
	convertOutDir = viper.GetString("out-dir")
	convertParallel = viper.GetInt("parallel")

	if name := viper.GetString("solution"); name != "" && !convertExpected {
		if err := paramsFromSolution(name); err != nil {
			return err
		}
	}

	format, err := util.GetFormat()
	if err != nil {
		return err
	}
	convertFormat = format

	if convertParams <= 0 {
		return errors.Newf("--params must be positive, got %d", convertParams)
	}
	if convertParallel <= 0 {
		convertParallel = 1
	}
	return nil
}

// paramsFromSolution sets the parameter count or design mode from a registered solution
func paramsFromSolution(name string) error {
	sol, err := harness.Lookup(name)
	if err != nil {
		return err
	}
	if harness.IsDesign(sol) {
		convertDesign = true
		return nil
	}
	params, ok := harness.Params(sol)
	if !ok {
		return errors.Newf("the number of parameters of %q is unknown, use --params", name)
	}
	convertParams = params
	Logger.Debugf("%s takes %d parameters", name, params)
	return nil
}

func run(cmd *cobra.Command, files []string) error {
	if len(files) == 0 {
		return convertStream(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ext := InputExt
	if convertExpected {
		ext = ExpectedExt
	}
	jobs, err := PlanOutputs(files, convertOutDir, ext)
	if err != nil {
		return err
	}

	if convertOutDir != "" {
		if err := os.MkdirAll(convertOutDir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(convertParallel)
	for _, job := range jobs {
		g.Go(func() error {
			return convertFile(ctx, job.Src, job.Dst)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	Logger.Infof("converted %d files", len(files))
	return nil
}

// Job is the conversion of one file
type Job struct {
	Src, Dst string
}

// PlanOutputs maps every file to its output path. It fails with
// ErrOutputConflict if an output would replace its own source, another
// source or the output of another file.
func PlanOutputs(files []string, outDir, ext string) ([]Job, error) {
	sources := make(map[string]string, len(files))
	for _, file := range files {
		sources[cleanPath(file)] = file
	}

	jobs := make([]Job, 0, len(files))
	targets := make(map[string]string, len(files))
	for _, file := range files {
		dst := OutputPath(file, outDir, ext)
		key := cleanPath(dst)
		if src, ok := sources[key]; ok {
			return nil, errors.Wrapf(ErrOutputConflict, "converting %s would overwrite the input %s", file, src)
		}
		if other, ok := targets[key]; ok {
			return nil, errors.Wrapf(ErrOutputConflict, "%s and %s are both converted to %s", other, file, dst)
		}
		targets[key] = file
		jobs = append(jobs, Job{Src: file, Dst: dst})
	}
	return jobs, nil
}

// OutputPath returns the path of the converted file for file
func OutputPath(file, outDir, ext string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ext
	if outDir == "" {
		return filepath.Join(filepath.Dir(file), name)
	}
	return filepath.Join(outDir, name)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// cleanPath makes paths comparable, falling back to the cleaned path
func cleanPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func convertFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "read %s", src)
	}
	converted, err := convertText(string(text))
	if err != nil {
		return errors.Wrapf(err, "convert %s", src)
	}
	if err := os.WriteFile(dst, []byte(converted), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", dst)
	}

	Logger.Debugf("converted %s -> %s", src, dst)
	return nil
}

func convertStream(in io.Reader, out io.Writer) error {
	text, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "read examples")
	}
	converted, err := convertText(string(text))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, converted)
	return err
}

func convertText(text string) (string, error) {
	switch {
	case convertExpected:
		return testcase.ConvertExpected(text, convertFormat)
	case convertDesign:
		return testcase.ConvertDesign(text)
	default:
		return testcase.Convert(text, convertParams)
	}
}
