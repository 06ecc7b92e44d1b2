package util

import (
	"strings"

	"github.com/ValentinKolb/tcio/lib/codec"
	"github.com/ValentinKolb/tcio/lib/common"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by tcio
	EnvPrefix = "tcio"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > Wrap {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n")
}

// SetupFormatFlags adds the output format flags to a command
func SetupFormatFlags(cmd *cobra.Command) {
	key := "format"
	cmd.PersistentFlags().String(key, "canonical", WrapString("Output format preset ("+strings.Join(codec.FormatNames(), ", ")+")"))

	key = "quoting"
	cmd.PersistentFlags().String(key, "", WrapString("Overrides the quoting of the preset (nested, never, always)"))

	key = "delimiter"
	cmd.PersistentFlags().String(key, "", WrapString("Overrides the sequence delimiter of the preset (comma, comma-space, space)"))

	key = "list-render"
	cmd.PersistentFlags().String(key, "", WrapString("Overrides how linked lists are written (array, chain)"))
}

// SetupLogFlags adds the logging flags to a command
func SetupLogFlags(cmd *cobra.Command) {
	key := "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("The level at which logs will be output (debug, info, warn, error)"))

	key = "log-file"
	cmd.PersistentFlags().String(key, "", WrapString("Write logs to this file instead of stderr. The file is rotated when it gets too large"))

	key = "log-max-size"
	cmd.PersistentFlags().Int(key, 100, WrapString("Size in MB at which the log file is rotated"))

	key = "log-max-backups"
	cmd.PersistentFlags().Int(key, 3, WrapString("Number of rotated log files to keep"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetFormat reads the output format from viper: the preset named by --format
// with the single options overridden where set
func GetFormat() (codec.Format, error) {
	f, err := codec.ParseFormat(viper.GetString("format"))
	if err != nil {
		return f, err
	}

	if v := viper.GetString("quoting"); v != "" {
		if f.Quoting, err = codec.ParseQuoting(v); err != nil {
			return f, err
		}
	}
	if v := viper.GetString("delimiter"); v != "" {
		if f.Delimiter, err = codec.ParseDelimiter(v); err != nil {
			return f, err
		}
	}
	if v := viper.GetString("list-render"); v != "" {
		if f.ListRender, err = codec.ParseListRender(v); err != nil {
			return f, err
		}
	}
	return f, nil
}

// GetLogConfig reads the logging configuration from viper
func GetLogConfig() common.LogConfig {
	return common.LogConfig{
		Level:      viper.GetString("log-level"),
		File:       viper.GetString("log-file"),
		MaxSizeMB:  viper.GetInt("log-max-size"),
		MaxBackups: viper.GetInt("log-max-backups"),
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// PrepareCommand binds the flags of cmd and initializes the loggers. It is
// used as PreRunE by all commands that do work.
func PrepareCommand(cmd *cobra.Command, _ []string) error {
	if err := BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := common.InitLoggers(GetLogConfig()); err != nil {
		return errors.Wrap(err, "init logging")
	}
	return nil
}
