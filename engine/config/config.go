package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ApplicationConfig struct {
	/** @brief The name of the application */
	Name string `toml:"name"`
	/** @brief The minimum log level: debug, info, warn or error. */
	LogLevel string `toml:"log_level"`
}

type BatchingConfig struct {
	/** @brief Vertex capacity ceiling of every batch. */
	VertexLimit int `toml:"vertex_limit"`
	/** @brief Index capacity ceiling of every batch. */
	IndexLimit int `toml:"index_limit"`
	/** @brief The maximum number of batches the pool may hold. */
	MaxBatchCount int `toml:"max_batch_count"`
}

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Batching    BatchingConfig    `toml:"batching"`
}

func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:     "Lumina",
			LogLevel: "debug",
		},
		Batching: BatchingConfig{
			VertexLimit:   4096,
			IndexLimit:    6144,
			MaxBatchCount: 64,
		},
	}
}

// Load reads a TOML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Batching.VertexLimit <= 0 {
		return fmt.Errorf("batching.vertex_limit must be > 0, got %d", c.Batching.VertexLimit)
	}
	if c.Batching.IndexLimit <= 0 {
		return fmt.Errorf("batching.index_limit must be > 0, got %d", c.Batching.IndexLimit)
	}
	if c.Batching.MaxBatchCount <= 0 {
		return fmt.Errorf("batching.max_batch_count must be > 0, got %d", c.Batching.MaxBatchCount)
	}
	return nil
}
