package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/tcio/cmd/bench"
	"github.com/ValentinKolb/tcio/cmd/convert"
	"github.com/ValentinKolb/tcio/cmd/run"
	"github.com/ValentinKolb/tcio/cmd/util"
	"github.com/ValentinKolb/tcio/lib/harness"
	"github.com/blang/semver/v4"
	"github.com/spf13/cobra"

	// registers the reference solutions
	_ "github.com/ValentinKolb/tcio/solutions"
)

const (
	Version = "1.2.0"
)

var (
	// version is the parsed Version, checked at init
	version = semver.MustParse(Version)

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "tcio",
		Short: "test case input/output for coding problems",
		Long: fmt.Sprintf(`tcio (v%s)

A harness for LeetCode style solutions written in Go. It reads multi-case
test input, decodes the arguments of every case based on their Go types and
writes the encoded results, one line per test case.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tcio",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tcio v%s\n", version)
		},
	}
	solutionsCmd = &cobra.Command{
		Use:   "solutions",
		Short: "List the registered solutions",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range harness.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(run.RunCmd)
	RootCmd.AddCommand(convert.ConvertCmd)
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(solutionsCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupFormatFlags(RootCmd)
	util.SetupLogFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
