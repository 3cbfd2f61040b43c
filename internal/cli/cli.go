// Package cli implements the qroute command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qroute/pkg/arch"
	"github.com/matzehuels/qroute/pkg/buildinfo"
	"github.com/matzehuels/qroute/pkg/cache"
	qerrors "github.com/matzehuels/qroute/pkg/errors"
	"github.com/matzehuels/qroute/pkg/observability"
	"github.com/matzehuels/qroute/pkg/observability/prom"
	"github.com/matzehuels/qroute/pkg/preset"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "qroute"

	// defaultTableTTL is how long cached distance tables stay valid.
	defaultTableTTL = 30 * 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags   globalFlags
	config  *Config
	catalog *preset.Catalog
	tables  cache.Cache
	metrics *prometheus.Registry
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath  string
	deviceFiles []string
	qubits      int
	density     float64
	seed        uint64
	trace       bool
	noCache     bool
	workers     int
	metrics     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "qroute routes qubit interactions over device coupling graphs",
		Long:         `qroute builds routing structures for quantum devices: qubit placements, elimination orders, constrained shortest paths and Steiner trees over a device's coupling graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.PersistentFlags()
	f.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/qroute/config.toml)")
	f.StringSliceVar(&c.flags.deviceFiles, "device-file", nil, "register a TOML device file (repeatable)")
	f.IntVar(&c.flags.qubits, "qubits", 0, "qubit count for dynamic presets")
	f.Float64Var(&c.flags.density, "density", 0, "edge density for dynamic_density (default 0.1)")
	f.Uint64Var(&c.flags.seed, "seed", 0, "generator seed for dynamic_density")
	f.BoolVar(&c.flags.trace, "trace", false, "log Steiner tree construction (implies debug logging)")
	f.BoolVar(&c.flags.noCache, "no-cache", false, "do not read or write the table cache")
	f.IntVar(&c.flags.workers, "workers", 0, "goroutines used to precompute distance tables")
	f.BoolVar(&c.flags.metrics, "metrics", false, "print Prometheus metrics to stderr on exit")

	// Register all subcommands
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.distanceCommand())
	root.AddCommand(c.steinerCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.precomputeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Setup
// =============================================================================

// setup loads the config, registers device files and opens the table cache.
func (c *CLI) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(c.flags.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	if cfg.LogLevel != "" && c.Logger.GetLevel() == LogInfo {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return qerrors.Wrap(qerrors.ErrCodeConfiguration, err, "config log_level %q", cfg.LogLevel)
		}
		c.SetLogLevel(level)
	}
	if c.flags.workers == 0 {
		c.flags.workers = cfg.Workers
	}
	if cfg.Trace {
		c.flags.trace = true
	}
	if c.flags.trace {
		c.SetLogLevel(LogDebug)
	}

	c.catalog = preset.NewCatalog()
	for _, path := range append(cfg.DeviceFiles, c.flags.deviceFiles...) {
		d, err := c.catalog.RegisterFile(path)
		if err != nil {
			return err
		}
		c.Logger.Debug("registered device file", "device", d.Name, "path", path)
	}

	if c.flags.metrics {
		c.metrics = prometheus.NewRegistry()
		prom.New(c.metrics).Register()
	}

	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// teardown closes the table cache and prints metrics.
func (c *CLI) teardown(cmd *cobra.Command) error {
	if c.tables != nil {
		if err := c.tables.Close(); err != nil {
			c.Logger.Warn("close table cache", "err", err)
		}
		c.tables = nil
	}
	if c.metrics == nil {
		return nil
	}
	defer observability.Reset()
	families, err := c.metrics.Gather()
	if err != nil {
		return err
	}
	w := cmd.ErrOrStderr()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Architecture Factory
// =============================================================================

// tableCache opens the configured table cache on first use. An unreachable
// backend degrades to no caching; any other failure is returned.
func (c *CLI) tableCache(ctx context.Context) (cache.Cache, error) {
	if c.tables != nil {
		return c.tables, nil
	}
	tc, err := newTableCache(ctx, c.config, c.flags.noCache)
	if errors.Is(err, cache.ErrNetwork) {
		c.Logger.Warn("table cache unavailable, continuing without it", "err", err)
		tc, err = cache.NewNullCache(), nil
	}
	if err != nil {
		return nil, err
	}
	c.tables = tc
	return tc, nil
}

// buildArch builds the named device with the CLI's options applied.
func (c *CLI) buildArch(ctx context.Context, name string) (*arch.Architecture, error) {
	params := preset.Params{
		Qubits:  c.flags.qubits,
		Density: c.flags.density,
		Seed:    c.flags.seed,
	}
	ttl, err := c.config.tableTTL()
	if err != nil {
		return nil, err
	}
	tables, err := c.tableCache(ctx)
	if err != nil {
		return nil, err
	}
	a, err := c.catalog.Build(name, params,
		arch.WithLogger(c.Logger),
		arch.WithTrace(c.flags.trace),
		arch.WithWorkers(c.flags.workers),
		arch.WithTableCache(tables, ttl),
		arch.WithKeyer(cache.NewScopedKeyer(nil, c.config.Cache.Prefix)),
	)
	if err != nil {
		return nil, err
	}
	if err := a.Precompute(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func newTableCache(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch strings.ToLower(cfg.Cache.Backend) {
	case "", "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cache.DefaultDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case "mongo", "mongodb":
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        cfg.Cache.Mongo.URI,
			Database:   cfg.Cache.Mongo.Database,
			Collection: cfg.Cache.Mongo.Collection,
		})
	case "none":
		return cache.NewNullCache(), nil
	}
	return nil, qerrors.Configuration("unknown cache backend %q (want file, redis, mongo or none)", cfg.Cache.Backend)
}

// =============================================================================
// Argument Helpers
// =============================================================================

// parseQubit parses a single qubit index argument.
func parseQubit(role, s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, qerrors.Configuration("%s %q is not a qubit index", role, s)
	}
	return q, nil
}

// parseQubits parses a comma-separated qubit list. An empty string yields nil.
func parseQubits(role, s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	qs := make([]int, 0, len(parts))
	for _, p := range parts {
		q, err := parseQubit(role, p)
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}
