// Command circuits reads junction-box coordinates ("x,y,z" per line),
// connects them pair by pair in ascending weight order and prints the
// product of the three largest resulting circuits.
//
// Usage:
//
//	circuits [-config run.yaml] [-metric dot|euclidean|manhattan]
//	         [-strategy forest|rescan] [-limit N] [-workers N]
//	         [-largest K] [-log-level debug|info|warn|error] input.txt
//
// Settings are layered, lowest first: built-in defaults, the config file,
// CIRCUITS_* environment variables, then explicitly set flags.
// Input "-" reads standard input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/circuits/cluster"
	"github.com/katalvlaran/circuits/internal/config"
	"github.com/katalvlaran/circuits/point"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("circuits", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath  = fs.String("config", "", "YAML run configuration")
		metric   = fs.String("metric", "", "pair weight: dot, euclidean or manhattan")
		strategy = fs.String("strategy", "", "merge strategy: forest or rescan")
		limit    = fs.Int("limit", -1, "process only the N smallest edges (0 = all)")
		workers  = fs.Int("workers", -1, "enumeration goroutines (0 = GOMAXPROCS)")
		largest  = fs.Int("largest", -1, "number of largest circuits to multiply")
		level    = fs.String("log-level", "", "log level: debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: circuits [flags] input.txt")
		fs.PrintDefaults()
		return 2
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	// Only flags the user actually set override the loaded config.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "metric":
			cfg.Metric = *metric
		case "strategy":
			cfg.Strategy = *strategy
		case "limit":
			cfg.EdgeLimit = *limit
		case "workers":
			cfg.Workers = *workers
		case "largest":
			cfg.Largest = *largest
		case "log-level":
			cfg.Log.Level = *level
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	product, err := solve(fs.Arg(0), stdin, cfg, logger)
	if err != nil {
		logger.Error("clustering failed", zap.Error(err))
		return 1
	}
	fmt.Fprintln(stdout, product)

	return 0
}

// solve parses the input named by path ("-" for stdin) and runs the pipeline.
func solve(path string, stdin io.Reader, cfg config.Config, logger *zap.Logger) (uint64, error) {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		in = f
	}

	pts, err := point.Parse(in)
	if err != nil {
		return 0, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return 0, err
	}
	opts = append(opts, cluster.WithLogger(logger))

	start := time.Now()
	res, err := cluster.Run(pts, opts...)
	if err != nil {
		if errors.Is(err, cluster.ErrInsufficientClusters) {
			logger.Warn("too few circuits remain; try a smaller -limit or a lower -largest",
				zap.Int("points", pts.Len()),
				zap.Int("edge_limit", cfg.EdgeLimit),
			)
		}
		return 0, err
	}
	logger.Info("circuits computed",
		zap.String("input", path),
		zap.Int("points", pts.Len()),
		zap.Int("edges", res.Edges),
		zap.Int("processed", res.Processed),
		zap.Int("merges", res.Merges),
		zap.Int("circuits", res.Clusters),
		zap.Ints("largest", res.Sizes[:min(cfg.Largest, len(res.Sizes))]),
		zap.Uint64("product", res.Product),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res.Product, nil
}
