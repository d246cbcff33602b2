// Package config loads the run configuration of the circuits command:
// defaults, then an optional YAML file, then CIRCUITS_* environment
// variables, validated as a whole before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/circuits/cluster"
)

// ErrInvalidConfig wraps every load or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// envPrefix namespaces the environment overlay.
const envPrefix = "CIRCUITS_"

var validate = validator.New()

// Config is the full run configuration.
type Config struct {
	// Metric is one of "dot", "euclidean", "manhattan".
	Metric string `yaml:"metric" validate:"required,oneof=dot euclidean manhattan"`
	// Strategy is one of "forest", "rescan".
	Strategy string `yaml:"strategy" validate:"required,oneof=forest rescan"`
	// EdgeLimit processes only the N smallest edges; 0 means all.
	EdgeLimit int `yaml:"edge_limit" validate:"gte=0"`
	// Workers for edge enumeration; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0,lte=1024"`
	// Largest is how many cluster sizes are multiplied.
	Largest int `yaml:"largest" validate:"gte=1"`

	Log Log `yaml:"log"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=console json"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Metric:    cluster.DotProduct.String(),
		Strategy:  cluster.StrategyForest.String(),
		EdgeLimit: 0,
		Workers:   1,
		Largest:   cluster.DefaultLargest,
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		defer f.Close()
		if err := Decode(f, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode overlays the YAML document read from r onto cfg. Unknown keys
// are rejected. An empty document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decode yaml: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ApplyEnv overlays CIRCUITS_METRIC, CIRCUITS_STRATEGY, CIRCUITS_EDGE_LIMIT,
// CIRCUITS_WORKERS, CIRCUITS_LARGEST, CIRCUITS_LOG_LEVEL and
// CIRCUITS_LOG_FORMAT using lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"METRIC":     &c.Metric,
		"STRATEGY":   &c.Strategy,
		"LOG_LEVEL":  &c.Log.Level,
		"LOG_FORMAT": &c.Log.Format,
	}
	for key, dst := range str {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = strings.ToLower(strings.TrimSpace(v))
		}
	}

	ints := map[string]*int{
		"EDGE_LIMIT": &c.EdgeLimit,
		"WORKERS":    &c.Workers,
		"LARGEST":    &c.Largest,
	}
	for key, dst := range ints {
		v, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, envPrefix, key, v)
		}
		*dst = n
	}

	return nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// Options converts the configuration into cluster options.
func (c Config) Options() ([]cluster.Option, error) {
	m, err := cluster.ParseMetric(c.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s, err := cluster.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return []cluster.Option{
		cluster.WithMetric(m),
		cluster.WithStrategy(s),
		cluster.WithEdgeLimit(c.EdgeLimit),
		cluster.WithWorkers(c.Workers),
		cluster.WithLargest(c.Largest),
	}, nil
}
