package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan/kmeans"
)

func newKMeansCmd(a *app) *cobra.Command {
	var (
		input      string
		k          int
		iterations int
		seeds      int
		randomSeed uint64
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "kmeans",
		Short: "Cluster points with k-means and print one cluster per row",
		Long: `Cluster the rows of a CSV file with k-means, keeping the best of
several random restarts.

Prints one cluster index per input row to stdout and the total
within-cluster sum of squares to stderr.

Example:
  dbscan kmeans --input points.csv --k 3 --seeds 20 --random-seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if fs.Changed("k") {
				a.cfg.KMeans.K = k
			}
			if fs.Changed("iterations") {
				a.cfg.KMeans.Iterations = iterations
			}
			if fs.Changed("seeds") {
				a.cfg.KMeans.Seeds = seeds
			}
			if fs.Changed("random-seed") {
				a.cfg.KMeans.RandomSeed = randomSeed
			}
			if fs.Changed("workers") {
				a.cfg.Workers = workers
			}

			data, err := loadPoints(cmd, input)
			if err != nil {
				return err
			}

			cfg := a.cfg.kmeansConfig()
			cfg.Logger = a.logger
			model, err := kmeans.Fit(data, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range model.Assignments {
				fmt.Fprintln(out, c)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "points=%d k=%d withinss=%g\n", len(model.Assignments), len(model.Centers), model.TotalWithinSS())
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&input, "input", "i", "", "CSV file of points (- for stdin)")
	fs.IntVar(&k, "k", 0, "number of clusters")
	fs.IntVar(&iterations, "iterations", 0, "Lloyd iterations per restart")
	fs.IntVar(&seeds, "seeds", 0, "number of random restarts")
	fs.Uint64Var(&randomSeed, "random-seed", 0, "seed for the restarts' random streams")
	fs.IntVar(&workers, "workers", 0, "restarts run concurrently (0 = all CPUs)")
	return cmd
}
