package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/driver"
	"github.com/pdrpinto/bestfirst/internal/report"
	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch --report FILE PATHS...",
	Short: "Solve puzzle files concurrently and write a Parquet report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportPath, _ := cmd.Flags().GetString("report")
		useCache, _ := cmd.Flags().GetBool("cache")

		d, err := driver.Lookup(domainFlag(cmd))
		if err != nil {
			return err
		}

		options := searchOptions()
		if cmd.Flags().Changed("workers") {
			workers, _ := cmd.Flags().GetInt("workers")
			options = append(options, bestfirst.WithWorkers(workers))
		}

		var cache store.Store
		if useCache {
			var closeCache func() error
			cache, closeCache, err = openStore(cfg)
			if err != nil {
				return err
			}
			defer closeCache()
		}

		rows, err := runBatch(cmd.Context(), d, cache, args, options...)
		if err != nil {
			return err
		}

		var solved, unsolved, failed int
		for _, row := range rows {
			switch {
			case row.Error != "":
				failed++
			case row.Found:
				solved++
			default:
				unsolved++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d files: %d solved, %d without solution, %d failed\n",
			len(rows), solved, unsolved, failed)

		if reportPath == "" {
			return nil
		}
		if err := report.Write(reportPath, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("report", "", "Parquet file to write the results to")
	batchCmd.Flags().String("domain", "", "Puzzle domain (default from config)")
	batchCmd.Flags().Int("workers", 0, "Concurrent solves (default from config, else CPU count)")
	batchCmd.Flags().Bool("cache", false, "Reuse and store solutions in the configured cache")
}

// runBatch loads every path, solves the loadable ones with Driver.SolveAll
// and returns one row per path in order. Files that fail to load get a row
// with Error set. Cache hits skip the search.
func runBatch(ctx context.Context, d driver.Driver, cache store.Store, paths []string, options ...bestfirst.Option) ([]report.Row, error) {
	rows := make([]report.Row, len(paths))
	texts := make([]string, len(paths))
	var (
		pending   []driver.Instance
		positions []int
	)

	for i, path := range paths {
		start := time.Now()
		text, err := os.ReadFile(path)
		if err != nil {
			rows[i] = report.Row{Path: path, Domain: d.Name(), Error: err.Error()}
			continue
		}
		instance, err := d.Load(string(text))
		if err != nil {
			rows[i] = report.Row{Path: path, Domain: d.Name(), Error: err.Error()}
			continue
		}
		rows[i].ParseNanos = time.Since(start).Nanoseconds()
		texts[i] = string(text)

		if cache != nil {
			entry, err := cache.Get(ctx, store.Key(d.Name(), texts[i]))
			switch {
			case err == nil:
				solution := driver.Solution{Actions: entry.Actions, Found: entry.Found, Stats: entry.Stats}
				rows[i] = report.NewRow(path, d.Name(), solution, time.Duration(rows[i].ParseNanos), 0, true)
				continue
			case !errors.Is(err, store.ErrNotFound):
				logger.Warn("solution cache unavailable", "path", path, "error", err)
			}
		}
		pending = append(pending, instance)
		positions = append(positions, i)
	}

	logger.Info("solving batch", "domain", d.Name(), "files", len(paths), "pending", len(pending))
	solutions, err := d.SolveAll(ctx, pending, options...)
	if err != nil {
		return nil, fmt.Errorf("solve batch: %w", err)
	}

	for n, solution := range solutions {
		i := positions[n]
		rows[i] = report.NewRow(paths[i], d.Name(), solution, time.Duration(rows[i].ParseNanos), solution.Elapsed, false)
		if cache == nil {
			continue
		}
		entry := &store.Entry{Domain: d.Name(), Found: solution.Found, Actions: solution.Actions, Stats: solution.Stats}
		if err := cache.Put(ctx, store.Key(d.Name(), texts[i]), entry); err != nil {
			logger.Warn("solution cache unavailable", "path", paths[i], "error", err)
		}
	}
	return rows, nil
}
