package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// app holds state shared by every subcommand once the persistent flags
// have been processed.
type app struct {
	configPath string
	verbose    bool

	cfg    fileConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dbscan",
		Short: "Density-based clustering for CSV point data",
		Long: `Cluster numeric CSV data with DBSCAN or k-means.

Settings come from an optional YAML file (--config) and are overridden
by command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug summaries to stderr")

	root.AddCommand(newFitCmd(a), newPredictCmd(a), newKMeansCmd(a))
	return root
}

// dbscanFlags are the clustering flags shared by fit and predict.
type dbscanFlags struct {
	eps       float64
	minPoints int
	borders   bool
	index     string
	leafSize  int
	workers   int
}

func (f *dbscanFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.eps, "eps", 0, "neighbourhood radius")
	fs.IntVar(&f.minPoints, "min-points", 0, "neighbours (self included) needed for a core point")
	fs.BoolVar(&f.borders, "borders", false, "label border points with a reaching cluster")
	fs.StringVar(&f.index, "index", "", "spatial index: auto, kdtree, balltree, brute or gonum")
	fs.IntVar(&f.leafSize, "leaf-size", 0, "max points per tree leaf")
	fs.IntVar(&f.workers, "workers", 0, "goroutines for neighbourhood queries (0 = all CPUs)")
}

// apply overlays the flags the user actually set onto the file config.
func (f *dbscanFlags) apply(cmd *cobra.Command, cfg *fileConfig) {
	fs := cmd.Flags()
	if fs.Changed("eps") {
		cfg.Eps = f.eps
	}
	if fs.Changed("min-points") {
		cfg.MinPoints = f.minPoints
	}
	if fs.Changed("borders") {
		cfg.IncludeBorders = f.borders
	}
	if fs.Changed("index") {
		cfg.Index = f.index
	}
	if fs.Changed("leaf-size") {
		cfg.LeafSize = f.leafSize
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
}
