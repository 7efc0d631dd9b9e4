package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Plots = map[string]PlotConfig{
		"sales": {
			Type:   PlotTypeSurface,
			Input:  "tables/sales.yaml",
			Colors: []string{"rgb(0,0,255)", "rgb(255,0,0)"},
		},
		"hope": {
			Type:  PlotTypeScatter,
			Input: "data/hope.csv",
			X:     "THRTEMP",
			Y:     "MW",
			Z:     "FWFLOW",
			Band:  "All",
			Clusters: []ClusterConfig{
				{Until: 418, Color: "yellow"},
				{Until: 663, Color: "dodgerblue"},
				{Color: "green"},
			},
		},
	}
	return cfg
}

func TestValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected no validation errors, got: %v", err)
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "no plots",
			mutate: func(c *Config) { c.Plots = nil },
			field:  "plots",
		},
		{
			name: "unknown plot type",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.Type = "bar"
				c.Plots["sales"] = p
			},
			field: "plots.sales.type",
		},
		{
			name: "missing input",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.Input = ""
				c.Plots["sales"] = p
			},
			field: "plots.sales.input",
		},
		{
			name: "surface from csv",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.Input = "sales.csv"
				c.Plots["sales"] = p
			},
			field: "plots.sales.format",
		},
		{
			name: "single color",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.Colors = []string{"red"}
				c.Plots["sales"] = p
			},
			field: "plots.sales.colors",
		},
		{
			name: "bad interpolation",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.Interpolate = "lab"
				c.Plots["sales"] = p
			},
			field: "plots.sales.interpolate",
		},
		{
			name: "descending value domain",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.ValueDomain = []float64{950, 600}
				c.Plots["sales"] = p
			},
			field: "plots.sales.value_domain",
		},
		{
			name: "bad viewpoint",
			mutate: func(c *Config) {
				p := c.Plots["sales"]
				p.Viewpoint = "bottom"
				c.Plots["sales"] = p
			},
			field: "plots.sales.viewpoint",
		},
		{
			name: "missing scatter column",
			mutate: func(c *Config) {
				p := c.Plots["hope"]
				p.Z = ""
				c.Plots["hope"] = p
			},
			field: "plots.hope.z",
		},
		{
			name: "unknown band",
			mutate: func(c *Config) {
				p := c.Plots["hope"]
				p.Band = "B12"
				c.Plots["hope"] = p
			},
			field: "plots.hope.band",
		},
		{
			name: "clusters out of order",
			mutate: func(c *Config) {
				p := c.Plots["hope"]
				p.Clusters = []ClusterConfig{{Until: 600, Color: "yellow"}, {Until: 400, Color: "green"}}
				c.Plots["hope"] = p
			},
			field: "plots.hope.clusters[1].until",
		},
		{
			name: "open cluster not last",
			mutate: func(c *Config) {
				p := c.Plots["hope"]
				p.Clusters = []ClusterConfig{{Color: "yellow"}, {Until: 400, Color: "green"}}
				c.Plots["hope"] = p
			},
			field: "plots.hope.clusters[0].until",
		},
		{
			name: "mysql without table",
			mutate: func(c *Config) {
				p := c.Plots["hope"]
				p.Format = "mysql"
				c.Plots["hope"] = p
				c.Database.Host = "db"
				c.Database.User = "reader"
				c.Database.Database = "plant"
			},
			field: "plots.hope.table",
		},
		{
			name: "mysql without host",
			mutate: func(c *Config) {
				p := c.Plots["hope"]
				p.Format = "mysql"
				p.Table = "readings"
				c.Plots["hope"] = p
			},
			field: "database.host",
		},
		{
			name:   "inverted domain",
			mutate: func(c *Config) { c.Domains = append(c.Domains, DomainConfig{Column: "X", Min: 5, Max: 1}) },
			field:  "domains[9]",
		},
		{
			name:   "negative refresh",
			mutate: func(c *Config) { c.Scatter.RefreshMillis = -1 },
			field:  "scatter.refresh_ms",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			field:  "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestMultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"
	cfg.Scatter.MaxInFlight = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(verrs), err)
	}
	if !strings.HasPrefix(err.Error(), "validation failed:") {
		t.Errorf("unexpected error format: %v", err)
	}
}

func TestDatabaseSkippedWithoutMySQLPlots(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected database to be ignored for file plots, got: %v", err)
	}
}
