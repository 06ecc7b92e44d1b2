package run

import (
	"io"
	"os"

	"github.com/ValentinKolb/tcio/cmd/util"
	"github.com/ValentinKolb/tcio/lib/common"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Logger = logger.GetLogger("cmd")

	runCmdConfig = &common.RunConfig{}
	RunCmd       = &cobra.Command{
		Use:   "run <solution>",
		Short: "Run a registered solution against multi-case input",
		Long: `Run a registered solution against multi-case input. The input starts with the number of test cases followed by the arguments of every case. One result line is written per test case.

The configuration can be set via command line flags or environment variables. The format of the environment variables is TCIO_<flag> (e.g. TCIO_FORMAT=leetcode)`,
		Args:    cobra.ExactArgs(1),
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "input"
	RunCmd.Flags().StringP(key, "i", "", util.WrapString("File to read the test cases from (default stdin)"))

	key = "output"
	RunCmd.Flags().StringP(key, "o", "", util.WrapString("File to write the results to (default stdout)"))

	key = "expect"
	RunCmd.Flags().StringP(key, "e", "", util.WrapString("File with the expected results, one line per test case in the output format (see convert --expected). Every result is compared with it"))

	key = "metrics"
	RunCmd.Flags().Bool(key, false, util.WrapString("Write the run metrics in Prometheus text format to stderr after the run"))
}

// processConfig reads the configuration from the command line flags and environment variables
func processConfig(cmd *cobra.Command, args []string) error {
	if err := util.PrepareCommand(cmd, args); err != nil {
		return err
	}

	format, err := util.GetFormat()
	if err != nil {
		return err
	}

	runCmdConfig.Solution = args[0]
	runCmdConfig.FormatName = viper.GetString("format")
	runCmdConfig.Format = format
	runCmdConfig.Input = viper.GetString("input")
	runCmdConfig.Output = viper.GetString("output")
	runCmdConfig.Expect = viper.GetString("expect")
	runCmdConfig.Metrics = viper.GetBool("metrics")
	runCmdConfig.Log = util.GetLogConfig()

	Logger.Debugf("configuration:\n%s", runCmdConfig)
	return nil
}

func run(cmd *cobra.Command, _ []string) (err error) {
	sol, err := harness.Lookup(runCmdConfig.Solution)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if runCmdConfig.Input != "" {
		f, err := os.Open(runCmdConfig.Input)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if runCmdConfig.Output != "" {
		f, err := os.Create(runCmdConfig.Output)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer func() {
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = errors.Wrap(closeErr, "close output")
			}
		}()
		out = f
	}

	runner := harness.Runner{Name: runCmdConfig.Solution, Format: runCmdConfig.Format}
	if runCmdConfig.Expect != "" {
		f, err := os.Open(runCmdConfig.Expect)
		if err != nil {
			return errors.Wrap(err, "open expected results")
		}
		defer f.Close()
		runner.Expect = f
	}
	stats, err := runner.Run(in, out, sol)
	if runCmdConfig.Metrics {
		harness.WriteMetrics(cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	Logger.Infof("%s: %s", runCmdConfig.Solution, stats)
	return nil
}
