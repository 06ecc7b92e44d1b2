package common

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/tcio/lib/codec"
)

// --------------------------------------------------------------------------
// Run configuration struct
// --------------------------------------------------------------------------

// RunConfig holds everything a run of a solution needs besides the solution itself.
type RunConfig struct {
	// Solution is the name of the registered solution
	Solution string

	// Output format
	FormatName string
	Format     codec.Format

	// Input and Output are file paths, empty means stdin / stdout
	Input  string
	Output string

	// Expect is the file with the expected results, empty disables the comparison
	Expect string

	// Metrics enables writing the run metrics after the run
	Metrics bool

	// Log is the logging configuration of the run
	Log LogConfig
}

// LogConfig holds the logging part of the configuration. It is shared by all commands.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string
	// File enables logging to a rotated file instead of stderr
	File string
	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep
	MaxBackups int
}

// String returns a formatted string representation of the configuration
func (c *RunConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Run")
	addField("Solution", c.Solution)
	addField("Input", orDefault(c.Input, "stdin"))
	addField("Output", orDefault(c.Output, "stdout"))
	addField("Expected Results", orDefault(c.Expect, "none"))
	addField("Metrics", fmt.Sprintf("%t", c.Metrics))

	addSection("Output Format")
	addField("Preset", orDefault(c.FormatName, "custom"))
	addField("Quoting", c.Format.Quoting.String())
	addField("Delimiter", c.Format.Delimiter.String())
	addField("List Render", c.Format.ListRender.String())

	addSection("Logging")
	addField("Log Level", orDefault(c.Log.Level, "info"))
	addField("Log File", orDefault(c.Log.File, "stderr"))
	if c.Log.File != "" {
		addField("Log Rotation", fmt.Sprintf("%d MB, %d backups", c.Log.MaxSizeMB, c.Log.MaxBackups))
	}

	return sb.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
