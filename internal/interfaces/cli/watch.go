package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/turtacn/computefp/internal/application/watch"
	"github.com/turtacn/computefp/internal/config"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
)

const watchCommandName = "watch"

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   watchCommandName + " DIR...",
		Short: "Convert SMILES files as they are written to the given directories",
		Long: `Watch one or more directories and convert every file matching the configured
patterns (watch.patterns) once it has been quiet for watch.debounce.  Output
files are never converted again.  Runs until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd.Context(), cliCtx, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// runWatch converts files until ctx is done; an interrupt ends it cleanly.
func runWatch(ctx context.Context, cliCtx *CLIContext, dirs []string, stdout, stderr io.Writer) error {
	cfg, log := cliCtx.Config, cliCtx.Logger
	s, err := newSession(ctx, cliCtx, true, stdout, stderr)
	if err != nil {
		return err
	}
	defer s.finish()

	w, err := watch.NewWatcher(s.converter, watch.Config{
		Dirs:         dirs,
		Patterns:     cfg.Watch.Patterns,
		Debounce:     cfg.Watch.Debounce,
		OutputSuffix: cfg.Output.Suffix,
	}, log)
	if err != nil {
		return err
	}

	if cfg.Source != "" && !cliCtx.LevelPinned {
		config.Watch(cfg.Source, func(next *config.Config) {
			reloadLogLevel(log, next)
		}, func(err error) {
			log.Warn("ignoring invalid configuration change", logging.String("file", cfg.Source), logging.Err(err))
		})
	}

	return w.Run(ctx)
}

// reloadLogLevel applies the only setting that may change while watching.
func reloadLogLevel(log logging.Logger, next *config.Config) bool {
	if !logging.SetLevel(log, next.Log.Level) {
		return false
	}
	log.Info("log level changed", logging.String("level", next.Log.Level))
	return true
}

//Personal.AI order the ending
