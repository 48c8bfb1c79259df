// Package autocli turns functions into a command-line program.
//
// Typical use from a main package:
//
//	func main() {
//		autocli.Run(cmdtree.Map{
//			{Name: "build", Value: build},
//			{Name: "deploy", Value: deploy},
//		})
//	}
//
// New assembles the command tree, registers it with cobra and applies the
// runtime settings loaded by package config: log level and file, help theme,
// colour and page width.
package autocli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"autocli/internal/config"
	"autocli/internal/logger"
	"autocli/internal/theme"
	"autocli/pkg/cmdtree"
	"autocli/pkg/cobrabind"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Option configures New.
type Option func(*settings)

type settings struct {
	viper        *viper.Viper
	config       config.Options
	loggingFlags bool
	bind         []cobrabind.Option
}

// WithViper resolves settings on v instead of a fresh viper instance.
func WithViper(v *viper.Viper) Option {
	return func(s *settings) { s.viper = v }
}

// WithConfigOptions sets where the config file and .env file are looked up.
func WithConfigOptions(opts config.Options) Option {
	return func(s *settings) { s.config = opts }
}

// WithLoggingFlags adds persistent --log-level and --log-file flags to the root
// command. They are applied before any command runs.
func WithLoggingFlags() Option {
	return func(s *settings) { s.loggingFlags = true }
}

// WithName sets the program name shown in help output.
func WithName(name string) Option {
	return WithBindOptions(cobrabind.WithName(name))
}

// WithDescription sets the help description of a command group root.
func WithDescription(description string) Option {
	return WithBindOptions(cobrabind.WithDescription(description))
}

// WithVersion enables the root --version flag.
func WithVersion(version string) Option {
	return WithBindOptions(cobrabind.WithVersion(version))
}

// WithBindOptions passes options through to cobrabind.NewCommand. They take
// precedence over the configured theme and width.
func WithBindOptions(opts ...cobrabind.Option) Option {
	return func(s *settings) { s.bind = append(s.bind, opts...) }
}

// New builds the root command for input, which is anything cmdtree.Assemble
// accepts.
func New(input any, opts ...Option) (*cobra.Command, error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	v := s.viper
	if v == nil {
		v = viper.New()
	}

	cfg, err := config.Load(v, s.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	th, err := theme.Resolve(cfg.Theme, cfg.NoColor)
	if err != nil {
		logger.Warn("Falling back to the default theme", "theme", cfg.Theme, "error", err)
	}

	node, err := cmdtree.Assemble(input)
	if err != nil {
		return nil, err
	}

	bindOpts := append([]cobrabind.Option{
		cobrabind.WithTheme(th),
		cobrabind.WithMaxWidth(cfg.MaxWidth),
	}, s.bind...)
	root, err := cobrabind.NewCommand(node, bindOpts...)
	if err != nil {
		return nil, err
	}

	if s.loggingFlags {
		if err := addLoggingFlags(root, v); err != nil {
			return nil, err
		}
	}
	logger.Debug("Command tree ready", "command", root.Name(), "theme", th.Name)
	return root, nil
}

func addLoggingFlags(root *cobra.Command, v *viper.Viper) error {
	flags := root.PersistentFlags()
	if root.Flags().Lookup(config.KeyLogLevel) == nil {
		flags.String(config.KeyLogLevel, "", "Set log level (debug|info|warn|error).")
	}
	if root.Flags().Lookup(config.KeyLogFile) == nil {
		flags.String(config.KeyLogFile, "", "Write logs to file instead of stderr.")
	}
	if err := config.BindFlags(v, flags); err != nil {
		return err
	}
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		return logger.Configure(v.GetString(config.KeyLogLevel), v.GetString(config.KeyLogFile))
	}
	return nil
}

// Execute builds the root command for input and runs it with argv, returning
// the process exit code. An invalid definition is logged and reported as a
// failure.
func Execute(ctx context.Context, input any, argv []string, opts ...Option) int {
	root, err := New(input, opts...)
	if err != nil {
		logger.Error("Invalid command definition", "error", err)
		return cobrabind.ExitFailure
	}
	return cobrabind.Execute(ctx, root, argv)
}

// Run executes input with the process arguments and exits. An interrupt or
// SIGTERM cancels the context handed to the wrapped function.
func Run(input any, opts ...Option) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx, input, os.Args[1:], opts...)
	stop()
	os.Exit(code)
}
