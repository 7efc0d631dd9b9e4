package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// SourceFormat returns the explicit format or infers it from the input file extension.
func (pc *PlotConfig) SourceFormat() string {
	if pc.Format != "" {
		return strings.ToLower(pc.Format)
	}
	switch strings.ToLower(filepath.Ext(pc.Input)) {
	case ".csv":
		return "csv"
	case ".parquet", ".pq":
		return "parquet"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	return ""
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.UsesDatabase() {
		if err := c.validateDatabase(); err != nil {
			errors = append(errors, err...)
		}
	}

	if len(c.Plots) == 0 {
		errors = append(errors, ValidationError{
			Field:   "plots",
			Message: "at least one plot must be defined",
		})
	}
	for name, plot := range c.Plots {
		if err := c.validatePlot(name, &plot); err != nil {
			errors = append(errors, err...)
		}
	}

	if err := c.validateDomains(); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateScatter("scatter", c.Scatter); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateDatabase() ValidationErrors {
	var errors ValidationErrors
	db := &c.Database

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "database.host",
			Message: "host is required when a plot uses mysql",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "database.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   "database.user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "database.database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   "database.tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validatePlot(name string, plot *PlotConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("plots.%s", name)

	format := plot.SourceFormat()
	if format == "mysql" {
		if plot.Table == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".table",
				Message: "table is required for mysql plots",
			})
		}
	} else if plot.Input == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".input",
			Message: "input is required",
		})
	}

	if plot.Width < 0 || plot.Height < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".width",
			Message: "width and height cannot be negative",
		})
	}

	if plot.Dimensions.X < 0 || plot.Dimensions.Y < 0 || plot.Dimensions.Z < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".dimensions",
			Message: "dimensions cannot be negative",
		})
	}

	switch plot.Type {
	case PlotTypeSurface:
		errors = append(errors, c.validateSurface(prefix, plot, format)...)
	case PlotTypeScatter:
		errors = append(errors, c.validateScatterPlot(prefix, plot, format)...)
	default:
		errors = append(errors, ValidationError{
			Field:   prefix + ".type",
			Message: "type must be 'surface' or 'scatter'",
		})
	}

	return errors
}

func (c *Config) validateSurface(prefix string, plot *PlotConfig, format string) ValidationErrors {
	var errors ValidationErrors

	if format != "yaml" && format != "json" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".format",
			Message: "surface plots read 'yaml' or 'json' table documents",
		})
	}

	if len(plot.Colors) == 1 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".colors",
			Message: "colors needs at least two entries",
		})
	}

	validInterp := map[string]bool{"rgb": true, "hcl": true, "": true}
	if !validInterp[plot.Interpolate] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".interpolate",
			Message: "interpolate must be 'rgb' or 'hcl'",
		})
	}

	errors = append(errors, validateRange(prefix+".value_domain", plot.ValueDomain)...)
	errors = append(errors, validateRange(prefix+".color_domain", plot.ColorDomain)...)

	validViews := map[string]bool{"left": true, "side": true, "top": true, "dimetric": true, "": true}
	if !validViews[plot.Viewpoint] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".viewpoint",
			Message: "viewpoint must be 'left', 'side', 'top', or 'dimetric'",
		})
	}

	return errors
}

func (c *Config) validateScatterPlot(prefix string, plot *PlotConfig, format string) ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"csv": true, "parquet": true, "mysql": true}
	if !validFormats[format] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".format",
			Message: "scatter plots read 'csv', 'parquet', or 'mysql' sources",
		})
	}

	for _, axis := range []struct{ name, column string }{{"x", plot.X}, {"y", plot.Y}, {"z", plot.Z}} {
		if axis.column == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + axis.name,
				Message: axis.name + " column is required",
			})
		}
	}

	if plot.Band != "" {
		if _, ok := c.Band(plot.Band); !ok {
			errors = append(errors, ValidationError{
				Field:   prefix + ".band",
				Message: fmt.Sprintf("band %q is not defined", plot.Band),
			})
		}
	}

	last := 0
	for i, cl := range plot.Clusters {
		field := fmt.Sprintf("%s.clusters[%d]", prefix, i)
		if cl.Color == "" {
			errors = append(errors, ValidationError{Field: field + ".color", Message: "color is required"})
		}
		if cl.Until == 0 && i != len(plot.Clusters)-1 {
			errors = append(errors, ValidationError{Field: field + ".until", Message: "only the last cluster may omit until"})
		}
		if cl.Until != 0 && cl.Until <= last {
			errors = append(errors, ValidationError{Field: field + ".until", Message: "until must be increasing"})
		}
		if cl.Until != 0 {
			last = cl.Until
		}
	}

	if plot.Scatter != nil {
		errors = append(errors, c.validateScatter(prefix+".scatter", *plot.Scatter)...)
	}

	return errors
}

func (c *Config) validateDomains() ValidationErrors {
	var errors ValidationErrors

	for i, d := range c.Domains {
		field := fmt.Sprintf("domains[%d]", i)
		if d.Column == "" {
			errors = append(errors, ValidationError{Field: field + ".column", Message: "column is required"})
		}
		if d.Max <= d.Min {
			errors = append(errors, ValidationError{Field: field, Message: "max must be greater than min"})
		}
	}

	for i, b := range c.Bands {
		field := fmt.Sprintf("bands[%d]", i)
		if b.Name == "" {
			errors = append(errors, ValidationError{Field: field + ".name", Message: "name is required"})
		}
		if b.Max <= b.Min {
			errors = append(errors, ValidationError{Field: field, Message: "max must be greater than min"})
		}
	}

	return errors
}

func (c *Config) validateScatter(prefix string, s ScatterConfig) ValidationErrors {
	var errors ValidationErrors

	if s.RefreshMillis < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".refresh_ms",
			Message: "refresh_ms cannot be negative",
		})
	}

	if s.LoadTimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".load_timeout_seconds",
			Message: "load_timeout_seconds cannot be negative",
		})
	}

	if s.MaxInFlight < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_in_flight",
			Message: "max_in_flight cannot be negative",
		})
	}

	if s.AxisLength < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".axis_length",
			Message: "axis_length cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

func validateRange(field string, r []float64) ValidationErrors {
	if len(r) == 0 {
		return nil
	}
	if len(r) != 2 {
		return ValidationErrors{{Field: field, Message: "must have exactly two values"}}
	}
	if r[1] <= r[0] {
		return ValidationErrors{{Field: field, Message: "second value must be greater than the first"}}
	}
	return nil
}
