package main

import (
	"fmt"
	"os"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/config"
	"github.com/pdrpinto/bestfirst/internal/logging"
	"github.com/pdrpinto/bestfirst/internal/store"
	"github.com/pdrpinto/bestfirst/internal/store/memory"
	"github.com/pdrpinto/bestfirst/internal/store/redis"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bestfirst",
	Short: "bestfirst solves grid puzzles with best-first search",
	Long: `bestfirst finds shortest solutions to single-player puzzles.
Puzzle files are read per domain; see 'bestfirst solve --help'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}

// domainFlag returns --domain, falling back to the configured domain.
func domainFlag(cmd *cobra.Command) string {
	if cmd.Flags().Changed("domain") {
		domain, _ := cmd.Flags().GetString("domain")
		return domain
	}
	return cfg.Solve.Domain
}

func searchOptions() []bestfirst.Option {
	options := []bestfirst.Option{bestfirst.WithLogger(logger)}
	if cfg.Solve.Workers > 0 {
		options = append(options, bestfirst.WithWorkers(cfg.Solve.Workers))
	}
	return options
}

// openStore builds the configured solution cache. The returned store is nil
// for the "none" backend; close is never nil.
func openStore(c *config.Config) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Cache.Backend {
	case config.CacheMemory:
		return memory.NewStore(), noop, nil
	case config.CacheRedis:
		ttl, err := c.CacheTTL()
		if err != nil {
			return nil, noop, err
		}
		s := redis.New(c.Cache.Addr, c.Cache.Password, c.Cache.DB,
			redis.WithTTL(ttl), redis.WithPrefix(c.Cache.Prefix))
		return s, s.Close, nil
	}
	return nil, noop, nil
}
