// Package logger provides centralized logging for autocli.
// It wraps charmbracelet/log with a package-global logger and styled component loggers.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// EnvLogLevel names the environment variable consulted when no level is given.
const EnvLogLevel = "AUTOCLI_LOG_LEVEL"

// Logger is the global logger instance used throughout autocli.
var Logger *log.Logger

// output is where the global logger and every component logger write.
var output io.Writer = os.Stderr

// logFile is the file opened by Configure, if any. It is closed when the
// destination is replaced.
var logFile *os.File

func init() {
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	// Derivation is quiet unless asked otherwise; the CLI's own output goes to stdout.
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the log level and destination.
// An explicit level takes precedence over AUTOCLI_LOG_LEVEL; the default is warn.
// An empty path logs to stderr.
func Configure(logLevel string, path string) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv(EnvLogLevel))
	}

	if path == "" {
		SetOutput(os.Stderr)
	} else {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		setOutput(file, file)
	}

	Logger.SetLevel(ParseLevel(level))
	return nil
}

// SetOutput redirects the global logger. Component loggers created afterwards
// write to the same destination. A log file opened by Configure is closed.
func SetOutput(w io.Writer) {
	setOutput(w, nil)
}

func setOutput(w io.Writer, file *os.File) {
	if logFile != nil && logFile != file {
		_ = logFile.Close()
	}
	logFile = file

	level := Logger.GetLevel()
	output = w
	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(level)
}

// ParseLevel converts a level name to a log level. Unknown names map to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// NewStyledLogger creates a component logger with the given prefix (e.g. "Schema", "Tree").
// It shares the global logger's destination and level at creation time.
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("33")).
		Foreground(lipgloss.Color("15"))

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("196")).
		Foreground(lipgloss.Color("15"))

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("240")).
		Foreground(lipgloss.Color("15"))

	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("214")).
		Foreground(lipgloss.Color("15"))

	styles.Keys["command"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["param"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styles.Keys["dialect"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	styles.Values["dialect"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}
