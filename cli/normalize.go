package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pancard/dataloader/appcontext"
	"pancard/dataloader/csv"
	"pancard/dataloader/normalize"
	"pancard/dataloader/pipeline"
	"pancard/dataloader/source"
	"pancard/dataloader/storage"
)

func newNormalizeCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [target]",
		Short: "Preview, count and normalize PAN records",
		Long: `Loads target (a CSV path, or mongo:<collection>), prints the first rows and the
record count, trims and uppercases the PAN column in place, and prints the first rows again.
Without a target the configured input path is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: st.runNormalize,
	}
	addNormalizeFlags(cmd.Flags())
	return cmd
}

func addNormalizeFlags(fs *pflag.FlagSet) {
	fs.Int("preview-rows", 0, "rows shown before and after normalization (default 10)")
	fs.Bool("fold-width", false, "fold full-width characters to ASCII before trimming")
}

func (st *state) runNormalize(cmd *cobra.Command, args []string) error {
	target := st.cfg.InputPath
	if len(args) == 1 {
		target = args[0]
	}

	ctx := cmd.Context()
	logger := appcontext.LoggerFromContext(ctx)

	mongoSource := storage.NewMongoSource(st.cfg.MongoURI, st.cfg.MongoDatabase, storage.WithTimeout(st.cfg.Timeout))
	defer func() {
		if deferErr := mongoSource.Close(ctx); deferErr != nil {
			logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
		}
	}()

	var opts []normalize.Option
	if st.cfg.FoldWidth {
		opts = append(opts, normalize.WithWidthFolding())
	}

	p := pipeline.New(pipeline.Dependencies{
		Config:   st.cfg,
		Resolver: source.NewResolver(),
		Loaders: map[source.DataSource]pipeline.Loader{
			source.CSV:   csv.NewLoader(),
			source.Mongo: mongoSource,
		},
		Normalizer: normalize.New(opts...),
		Out:        cmd.OutOrStdout(),
	})

	_, err := p.Run(ctx, target)
	return err
}
