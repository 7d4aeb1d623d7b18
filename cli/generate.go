package cli

import (
	"github.com/spf13/cobra"

	"pancard/dataloader/synthetic"
)

func newGenerateCommand(st *state) *cobra.Command {
	var opts synthetic.Options

	cmd := &cobra.Command{
		Use:   "generate-synthetic-data",
		Short: "Generate a messy PAN dataset for local runs",
		Long: `Writes a CSV file of PAN values with random lowercase, padding and empty cells,
or seeds them into a MongoDB collection with --persist-to-mongo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Rows = st.cfg.SyntheticDataRows
			opts.Dir = st.cfg.SyntheticDataDir
			return synthetic.RunGenerateSyntheticData(cmd.Context(), opts, st.cfg)
		},
	}

	cmd.Flags().Int("rows", 0, "number of rows to generate (default 100)")
	cmd.Flags().String("dir", "", "directory to write synthetic data to (default tmp/synthetic)")
	cmd.Flags().BoolVar(&opts.PersistToMongo, "persist-to-mongo", false, "seed a MongoDB collection instead of writing a file")
	cmd.Flags().StringVar(&opts.Collection, "collection", synthetic.DefaultCollection, "collection to seed")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default time-based)")

	return cmd
}
