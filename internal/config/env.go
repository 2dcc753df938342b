package config

import "os"

// Environment overrides for the input/output directories. These take
// precedence over file values but not over explicit CLI flags.
const (
	EnvContentDir = "BLOG_CONTENT_DIR"
	EnvOutputDir  = "BLOG_OUTPUT_DIR"
)

func applyEnvOverrides(c *Config) {
	if v := os.Getenv(EnvContentDir); v != "" {
		c.Content.Directory = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.Directory = v
	}
}
