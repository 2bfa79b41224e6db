package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reoring/statecanon/i18n"
	"github.com/reoring/statecanon/internal/config"
	"github.com/reoring/statecanon/state"
)

// RootOptions holds global flags and the state resolved from them before any
// subcommand runs.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	LogFormat  string // "text" | "json"
	Lang       string

	Config config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the statecanon command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "statecanon",
		Short: "Normalize persisted character and world state",
		Long: `statecanon repairs a loosely shaped state document into its canonical form.

Missing or malformed fields fall back to defaults, resources are clamped to
their caps, empty inventory stacks are pruned and every ascension ladder is
collapsed to its highest tier. Only a root that is not an object is rejected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", "", "issue message language (en|zh)")

	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewUnsetCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewStoreCommand(opts))

	return cmd
}

// setup loads the config, lets explicit flags win over it and installs the
// process-wide JSON driver and language.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if flags.Changed("lang") {
		cfg.Lang = o.Lang
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	cfg.InstallJSONDriver()
	i18n.SetLanguage(cfg.Lang)
	level, _ := cfg.SlogLevel()
	o.Logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Format, level)
	o.Config = cfg
	o.Logger.Debug("config loaded", "path", o.ConfigPath, "driver", cfg.Parse.JSONDriver, "ladder", cfg.Ladder.Preset)
	return nil
}

// Schema builds the document schema for the configured ladder.
func (o *RootOptions) Schema() (*state.Schema, error) {
	lc, err := o.Config.LadderConfig()
	if err != nil {
		return nil, fmt.Errorf("ladder config: %w", err)
	}
	return state.NewSchema(state.WithLadder(lc)), nil
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	ho := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}
