package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
)

func newFitCmd(a *app) *cobra.Command {
	var (
		input string
		flags dbscanFlags
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Cluster points and print one label per row",
		Long: `Cluster the rows of a CSV file with DBSCAN.

Prints one cluster label per input row to stdout, -1 for noise, and a
summary line to stderr.

Examples:
  dbscan fit --input points.csv --eps 0.3 --min-points 4
  cat points.csv | dbscan fit --input - --borders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, &a.cfg)

			data, err := loadPoints(cmd, input)
			if err != nil {
				return err
			}

			cfg := a.cfg.dbscanConfig()
			cfg.Logger = a.logger
			model, err := dbscan.Fit(data, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, l := range model.Labels {
				fmt.Fprintln(out, int(l))
			}

			s := model.Summary()
			fmt.Fprintf(cmd.ErrOrStderr(), "points=%d clusters=%d noise=%d\n", len(model.Labels), s.Clusters, s.Noise)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file of points (- for stdin)")
	flags.register(cmd)
	return cmd
}
