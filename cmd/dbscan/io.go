package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
)

// readPoints parses CSV rows of numbers. The first record is treated as a
// header and skipped when none of its fields is a number.
func readPoints(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var rows [][]float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row, err := parseRow(rec)
		if err != nil {
			if line == 1 && isHeader(rec) {
				continue
			}
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}

func parseRow(rec []string) ([]float64, error) {
	row := make([]float64, len(rec))
	for j, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", j+1, err)
		}
		row[j] = v
	}
	return row, nil
}

// loadPoints reads a point matrix from path, or from the command's stdin
// when path is "-".
func loadPoints(cmd *cobra.Command, path string) (dbscan.Matrix[float64], error) {
	if path == "" {
		return dbscan.Matrix[float64]{}, errors.New("input file is required")
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return dbscan.Matrix[float64]{}, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	rows, err := readPoints(r)
	if err != nil {
		return dbscan.Matrix[float64]{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return dbscan.NewMatrix(rows)
}
