// Command dbscan clusters CSV point data from the command line.
//
// Usage:
//
//	dbscan [--config file.yaml] [--verbose] <command> [flags]
//
// Commands:
//
//	fit      - cluster points with DBSCAN and print one label per row
//	predict  - fit on training points, then classify query points
//	kmeans   - cluster points with k-means and print one cluster per row
//
// Input files are CSV with one point per row. A header row is skipped when
// it does not parse as numbers. Use "-" to read from stdin.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
