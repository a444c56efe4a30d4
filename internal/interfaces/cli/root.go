// Package cli implements the computefp command line: the root command that
// converts SMILES files and the watch subcommand.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/computefp/internal/config"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const usageText = `Usage: computefp [INPUTFILES]
with INPUTFILES is a list of text files containing one SMILES per line.
Outputs one file per input file with ending .fp that contains InChI, InChI-key, SMILES and fingerprint`

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Verbose    bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config *config.Config
	Logger logging.Logger
	// LevelPinned is set when --log-level or --verbose chose the level, so
	// config reloads leave it alone.
	LevelPinned bool
}

// NewRootCommand creates the root command with its global flags and the
// watch subcommand.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "computefp [FILES...]",
		Short:   "Compute InChI, InChIKey and substructure fingerprints for SMILES files",
		Long:    usageText,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runConvert(cmd.Context(), cliCtx, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file path (default: ./computefp.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	pf.BoolVar(&opts.Verbose, "verbose", false, "log at debug level")

	cmd.AddCommand(newWatchCommand())
	return cmd
}

// persistentPreRun loads config and builds the logger, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logging.SetDefault(logger)

	if cfg.Source != "" {
		logger.Debug("configuration loaded", logging.String("file", cfg.Source))
	}

	cliCtx := &CLIContext{
		Config:      cfg,
		Logger:      logger,
		LevelPinned: opts.LogLevel != "" || opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(config.WithConfigPath(opts.ConfigPath))
	}
	return config.Load()
}

// initLogger creates a logger for CLI usage.  Flags win over the config file.
func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	level := cfg.Log.Level
	if opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
			return nil, errors.InvalidParam("unknown log level").WithDetail(opts.LogLevel)
		}
		level = opts.LogLevel
	}
	if opts.Verbose {
		level = logging.LevelDebug
	}

	output := cfg.Log.Output
	if output == "" {
		output = "stderr"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           cfg.Log.Format,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.NewValidationError("context", "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.NewValidationError("context", "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// wantsHelp reports whether the arguments ask for the usage text: none at
// all, or a first argument starting with -h or --help.
func wantsHelp(args []string) bool {
	if len(args) == 0 {
		return true
	}
	return strings.HasPrefix(args[0], "-h") || strings.HasPrefix(args[0], "--help")
}

// commandLine arranges args for cobra.  Unless the watch subcommand is
// requested, only the global options are parsed as flags; every other
// argument, including an unknown one starting with "-", reaches the
// converter positionally and in its original order.
func commandLine(args []string) []string {
	var flags, rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, _, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--config", "--log-level":
			flags = append(flags, arg)
			if !hasValue && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case "--verbose", "--version":
			flags = append(flags, arg)
		default:
			rest = append(rest, arg)
		}
	}
	if len(rest) > 0 && rest[0] == watchCommandName {
		return args
	}
	return append(append(flags, "--"), rest...)
}

// Execute runs the command line and returns the process exit code.  Every
// conversion outcome exits 0; only unusable configuration or flags fail.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if wantsHelp(args) {
		_ = rootCmd.Help()
		return ExitOK
	}

	rootCmd.SetArgs(commandLine(args))
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		PrintError(rootCmd, err)
		return ExitFailure
	}
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

//Personal.AI order the ending
