// Package common provides the configuration and logging shared by the tcio
// command line tool and the harness.
//
// Key Components:
//
//   - RunConfig: Configuration of a single run (solution, input and output,
//     output format, logging). String renders it for the startup log.
//
//   - Logger: Zap based implementation of Dragonboat's logger.ILogger. Packages
//     obtain their logger with logger.GetLogger("name"); InitLoggers installs the
//     factory, the output (stderr or a rotated file) and the level.
package common
