// Package cli wires configuration, logging and the pipeline into the pancard command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/config"
)

// version is set at build time with -ldflags "-X pancard/dataloader/cli.version=...".
var version = "dev"

// flagKeys maps flag names to configuration keys. A flag is bound only when
// the executing command defines it.
var flagKeys = map[string]string{
	"column":       config.KeyColumn,
	"timeout":      config.KeyTimeout,
	"preview-rows": config.KeyPreviewRows,
	"fold-width":   config.KeyFoldWidth,
	"rows":         config.KeySyntheticDataRows,
	"dir":          config.KeySyntheticDataDir,
}

// state is shared by the commands of one tree.
type state struct {
	v          *viper.Viper
	configFile string
	verbose    bool
	cfg        *config.Config
}

// NewRootCommand builds the command tree. Running it without a subcommand
// behaves like "normalize".
func NewRootCommand() *cobra.Command {
	st := &state{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "pancard [target]",
		Short: "Load, preview and normalize PAN records",
		Long: `Loads a CSV file (or a MongoDB collection given as mongo:<collection>) of PAN records,
prints the first rows and the record count, trims and uppercases the PAN column,
and prints the first rows again.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: st.setup,
		RunE:              st.runNormalize,
	}

	root.PersistentFlags().StringVar(&st.configFile, "config", "", "config file (default ./pancard.yaml)")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().String("column", "", "column holding PAN values (default Pan_Numbers)")
	root.PersistentFlags().Duration("timeout", 0, "timeout for MongoDB calls (default 30s)")
	addNormalizeFlags(root.Flags())

	root.AddCommand(
		newNormalizeCommand(st),
		newGenerateCommand(st),
		newVersionCommand(),
	)

	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		logCtx := ctx
		if cmd != nil && cmd.Context() != nil {
			logCtx = cmd.Context()
		}
		appcontext.LoggerFromContext(logCtx).ErrorContext(logCtx, "Application terminated with an error", "error", fmt.Sprintf("%+v", err))
		return 1
	}
	return 0
}

// setup creates the run logger and loads the configuration before any command runs.
func (st *state) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if st.verbose {
		level = slog.LevelDebug
	}
	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})).With("run_id", runID)

	ctx := appcontext.WithLogger(appcontext.WithRunID(cmd.Context(), runID), logger)
	cmd.SetContext(ctx)
	logger.DebugContext(ctx, "Begin running", "command", cmd.CommandPath())

	if st.configFile != "" {
		st.v.SetConfigFile(st.configFile)
	}
	if err := bindFlags(st.v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(ctx, logger, st.v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	st.cfg = cfg

	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
