package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/kmeans"
)

// fileConfig is the YAML configuration file layout. Flags given on the
// command line override the values it sets.
//
// Example:
//
//	eps: 0.5
//	min_points: 5
//	include_borders: true
//	index: kdtree
//	kmeans:
//	  k: 3
//	  seeds: 10
type fileConfig struct {
	Eps            float64      `yaml:"eps" validate:"gte=0"`
	MinPoints      int          `yaml:"min_points" validate:"gte=0"`
	IncludeBorders bool         `yaml:"include_borders"`
	Index          string       `yaml:"index" validate:"omitempty,oneof=auto kdtree balltree brute gonum"`
	LeafSize       int          `yaml:"leaf_size" validate:"gte=1"`
	Workers        int          `yaml:"workers" validate:"gte=0"`
	KMeans         kmeansConfig `yaml:"kmeans"`
}

type kmeansConfig struct {
	K          int    `yaml:"k" validate:"gte=0"`
	Iterations int    `yaml:"iterations" validate:"gte=0"`
	Seeds      int    `yaml:"seeds" validate:"gte=1"`
	RandomSeed uint64 `yaml:"random_seed"`
}

var validate = validator.New()

func defaultFileConfig() fileConfig {
	d := dbscan.DefaultConfig[float64]()
	k := kmeans.DefaultConfig()
	return fileConfig{
		Eps:       d.Eps,
		MinPoints: d.MinPoints,
		Index:     string(d.Index),
		LeafSize:  d.LeafSize,
		KMeans: kmeansConfig{
			Iterations: k.Iterations,
			Seeds:      k.Seeds,
		},
	}
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults unchanged.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) dbscanConfig() dbscan.Config[float64] {
	return dbscan.Config[float64]{
		Eps:            c.Eps,
		MinPoints:      c.MinPoints,
		IncludeBorders: c.IncludeBorders,
		Index:          dbscan.IndexKind(c.Index),
		LeafSize:       c.LeafSize,
		Workers:        c.Workers,
	}
}

func (c fileConfig) kmeansConfig() kmeans.Config {
	return kmeans.Config{
		K:          c.KMeans.K,
		Iterations: c.KMeans.Iterations,
		Seeds:      c.KMeans.Seeds,
		RandomSeed: c.KMeans.RandomSeed,
		Workers:    c.Workers,
	}
}
