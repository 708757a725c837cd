package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdrpinto/bestfirst/internal/config"
	"github.com/pdrpinto/bestfirst/internal/driver"
	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [-v] [-q] PATHS...",
	Short: "Solve puzzle files and print their solutions",
	Long: `Solves each puzzle file in turn and prints the parse and solve times
followed by the solution. A file that cannot be read or parsed is reported
and the remaining files are still solved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		useCache, _ := cmd.Flags().GetBool("cache")

		d, err := driver.Lookup(domainFlag(cmd))
		if err != nil {
			return err
		}

		var cache store.Store
		if useCache {
			cacheConfig := *cfg
			if cacheConfig.Cache.Backend == config.CacheNone {
				cacheConfig.Cache.Backend = config.CacheMemory
			}
			var closeCache func() error
			cache, closeCache, err = openStore(&cacheConfig)
			if err != nil {
				return err
			}
			defer closeCache()
		}

		output := solveOutput{out: cmd.OutOrStdout(), verbose: verbose, quiet: quiet}
		failed := 0
		for _, path := range args {
			if err := solveFile(cmd.Context(), d, cache, path, output); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error while solving '%s':\n%v\n", path, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolP("verbose", "v", false, "Print the board before every move")
	solveCmd.Flags().BoolP("quiet", "q", false, "Print timings only")
	solveCmd.Flags().String("domain", "", "Puzzle domain (default from config)")
	solveCmd.Flags().Bool("cache", false, "Reuse cached solutions (memory unless a backend is configured)")
}

func solveFile(ctx context.Context, d driver.Driver, cache store.Store, path string, output solveOutput) error {
	start := time.Now()
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	instance, err := d.Load(string(text))
	if err != nil {
		return err
	}
	parseElapsed := time.Since(start)

	start = time.Now()
	solution, cached, err := store.Solve(ctx, cache, instance, string(text), searchOptions()...)
	if err != nil {
		logger.Warn("solution cache unavailable", "path", path, "error", err)
	}
	solveElapsed := time.Since(start)
	logger.Debug("solved", "path", path, "found", solution.Found, "cached", cached,
		"expanded", solution.Stats.Expanded, "visited", solution.Stats.Visited)

	return output.print(path, instance, solution, parseElapsed, solveElapsed)
}

type solveOutput struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

func (o solveOutput) print(path string, instance driver.Instance, solution driver.Solution, parse, solve time.Duration) error {
	fmt.Fprintf(o.out, "%s:\n", path)
	fmt.Fprintf(o.out, "Parse: %s\n", seconds(parse))
	fmt.Fprintf(o.out, "Solve: %s\n", seconds(solve))
	if o.quiet {
		return nil
	}
	if !solution.Found {
		fmt.Fprintln(o.out, "No solution")
		return nil
	}

	fmt.Fprintf(o.out, "Found solution of length %d:\n", len(solution.Actions))
	if !o.verbose {
		fmt.Fprintln(o.out, strings.Join(solution.Actions, ", "))
		return nil
	}
	frames, err := instance.Replay(solution.Actions)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		fmt.Fprint(o.out, frame.Board)
		fmt.Fprintln(o.out, frame.Action)
	}
	return nil
}

// seconds formats d as whole seconds and nanoseconds, e.g. "0.000104200s".
func seconds(d time.Duration) string {
	return fmt.Sprintf("%d.%09ds", d/time.Second, d%time.Second)
}
