package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Database.Host = expandEnvVar(cfg.Database.Host)
	cfg.Database.User = expandEnvVar(cfg.Database.User)
	cfg.Database.Password = expandEnvVar(cfg.Database.Password)
	cfg.Database.Database = expandEnvVar(cfg.Database.Database)

	for name, plot := range cfg.Plots {
		plot.Input = expandEnvVar(plot.Input)
		plot.Output = expandEnvVar(plot.Output)
		cfg.Plots[name] = plot
	}

	cfg.Server.Addr = expandEnvVar(cfg.Server.Addr)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// GetPlot retrieves a specific plot configuration by name.
func (c *Config) GetPlot(name string) (*PlotConfig, error) {
	plot, exists := c.Plots[name]
	if !exists {
		return nil, fmt.Errorf("plot %q not found in configuration", name)
	}
	return &plot, nil
}

// ListPlots returns all plot names defined in the configuration.
func (c *Config) ListPlots() []string {
	plots := make([]string, 0, len(c.Plots))
	for name := range c.Plots {
		plots = append(plots, name)
	}
	return plots
}

// ApplyOverrides applies CLI flag overrides to the global configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, refreshMillis int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if refreshMillis > 0 {
		c.Scatter.RefreshMillis = refreshMillis
	}
}
