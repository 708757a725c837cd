package main

import (
	"fmt"
	"os"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/driver"
	"github.com/pdrpinto/bestfirst/internal/tui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch PATH",
	Short: "Solve a puzzle file and replay the solution in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		path := args[0]

		d, err := driver.Lookup(domainFlag(cmd))
		if err != nil {
			return err
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		instance, err := d.Load(string(text))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		solution := instance.Solve(searchOptions()...)
		if !solution.Found {
			return fmt.Errorf("%s: %w", path, bestfirst.ErrNoSolution)
		}
		frames, err := instance.Replay(solution.Actions)
		if err != nil {
			return err
		}
		logger.Debug("replaying", "path", path, "moves", len(frames))
		return tui.Run(tui.New(path, frames, interval))
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("domain", "", "Puzzle domain (default from config)")
	watchCmd.Flags().Duration("interval", 0, "Delay between moves while playing (default 500ms)")
}
