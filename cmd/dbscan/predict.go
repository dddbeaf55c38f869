package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
)

func newPredictCmd(a *app) *cobra.Command {
	var (
		train, query string
		flags        dbscanFlags
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fit on training points, then classify query points",
		Long: `Fit DBSCAN on a training CSV, then classify every row of a query CSV
against the fitted clusters.

Prints one line per query row: the kind (core, border or noise), a comma,
and the distinct labels of its training neighbours joined by ';'.

Example:
  dbscan predict --train train.csv --query new.csv --eps 0.5 --min-points 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, &a.cfg)

			trainData, err := loadPoints(cmd, train)
			if err != nil {
				return err
			}
			queryData, err := loadPoints(cmd, query)
			if err != nil {
				return err
			}

			cfg := a.cfg.dbscanConfig()
			cfg.Logger = a.logger
			model, err := dbscan.Fit(trainData, cfg)
			if err != nil {
				return err
			}
			preds, err := model.Predict(trainData, queryData)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range preds {
				fmt.Fprintf(out, "%s,%s\n", p.Kind, formatLabels(p.Labels))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "CSV file of training points")
	cmd.Flags().StringVar(&query, "query", "", "CSV file of points to classify")
	flags.register(cmd)
	return cmd
}

func formatLabels(labels []dbscan.Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strconv.Itoa(int(l))
	}
	return strings.Join(parts, ";")
}
