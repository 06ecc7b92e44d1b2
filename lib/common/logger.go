package common

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/lni/dragonboat/v4/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Packages names used with logger.GetLogger
var packageLoggers = []string{"harness", "testcase", "solutions", "cmd", "bench", "convert"}

const (
	defaultLogMaxSize    = 100 // MB
	defaultLogMaxBackups = 3
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// tcioLogger implements the ILogger interface on top of the shared zap logger.
// The output is looked up on every call, so loggers handed out before
// InitLoggers follow the new output.
type tcioLogger struct {
	name  string
	level logger.LogLevel
}

func (l *tcioLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *tcioLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.sugar().Debugf(format, args...)
	}
}

func (l *tcioLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.sugar().Infof(format, args...)
	}
}

func (l *tcioLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.sugar().Warnf(format, args...)
	}
}

func (l *tcioLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.sugar().Errorf(format, args...)
	}
}

func (l *tcioLogger) Panicf(format string, args ...interface{}) {
	l.sugar().Panicf(format, args...)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// base is shared by all loggers created by CreateLogger; stderr until InitLoggers runs
var base atomic.Pointer[zap.Logger]

func init() {
	base.Store(zap.New(newCore(zapcore.Lock(os.Stderr))))
}

// CreateLogger implements the dragonboat logger.Factory
func CreateLogger(pkgName string) logger.ILogger {
	return &tcioLogger{
		name:  pkgName,
		level: logger.INFO,
	}
}

func (l *tcioLogger) sugar() *zap.SugaredLogger {
	return base.Load().Named(l.name).Sugar()
}

// newCore creates a console core writing "time | LEVEL | pkg | message" lines.
// Filtering happens in tcioLogger, so the core accepts every level.
func newCore(out zapcore.WriteSyncer) zapcore.Core {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " | ",
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), out, zapcore.DebugLevel)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, errors.Newf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// initFileLog creates the rotating file writer for cfg.File
func initFileLog(cfg LogConfig) (*lumberjack.Logger, error) {
	if st, err := os.Stat(cfg.File); err == nil && st.IsDir() {
		return nil, errors.Newf("can't use directory %s as log file", cfg.File)
	}
	maxSize := cfg.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultLogMaxSize
	}
	maxBackups := cfg.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultLogMaxBackups
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}, nil
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the logger factory and sets the level of all package loggers.
// Logs go to stderr, or to cfg.File (rotated) if set, so that stdout only carries results.
func InitLoggers(cfg LogConfig) error {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return err
	}

	out := zapcore.Lock(os.Stderr)
	if cfg.File != "" {
		file, err := initFileLog(cfg)
		if err != nil {
			return err
		}
		out = zapcore.AddSync(file)
	}

	base.Store(zap.New(newCore(out)))
	logger.SetLoggerFactory(CreateLogger)

	for _, pkg := range packageLoggers {
		logger.GetLogger(pkg).SetLevel(level)
	}
	return nil
}
