// Package config provides configuration structures and loading for gox3d.
package config

// Plot types.
const (
	PlotTypeSurface = "surface"
	PlotTypeScatter = "scatter"
)

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig        `yaml:"database" mapstructure:"database"`
	Plots    map[string]PlotConfig `yaml:"plots" mapstructure:"plots"`
	Domains  []DomainConfig        `yaml:"domains" mapstructure:"domains"`
	Bands    []BandConfig          `yaml:"bands" mapstructure:"bands"`
	Scatter  ScatterConfig         `yaml:"scatter" mapstructure:"scatter"`
	Server   ServerConfig          `yaml:"server" mapstructure:"server"`
	Logging  LoggingConfig         `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents a MySQL connection used by SQL-backed plots.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// PlotConfig describes one renderable plot.
type PlotConfig struct {
	Type    string `yaml:"type" mapstructure:"type"`         // surface or scatter
	Input   string `yaml:"input" mapstructure:"input"`       // file path (csv, parquet, yaml, json)
	Format  string `yaml:"format" mapstructure:"format"`     // csv, parquet, mysql, yaml, json; inferred from Input when empty
	Table   string `yaml:"table" mapstructure:"table"`       // table name for mysql sources
	OrderBy string `yaml:"order_by" mapstructure:"order_by"` // mysql row order column
	Output  string `yaml:"output" mapstructure:"output"`

	Width      int        `yaml:"width" mapstructure:"width"`
	Height     int        `yaml:"height" mapstructure:"height"`
	Dimensions Dimensions `yaml:"dimensions" mapstructure:"dimensions"`
	Debug      bool       `yaml:"debug" mapstructure:"debug"`

	// Surface options
	Colors      []string  `yaml:"colors" mapstructure:"colors"`
	Interpolate string    `yaml:"interpolate" mapstructure:"interpolate"` // rgb or hcl
	ValueDomain []float64 `yaml:"value_domain" mapstructure:"value_domain"`
	ColorDomain []float64 `yaml:"color_domain" mapstructure:"color_domain"`
	Viewpoint   string    `yaml:"viewpoint" mapstructure:"viewpoint"` // left, side, top, dimetric
	Rotate      bool      `yaml:"rotate" mapstructure:"rotate"`

	// Scatter options
	X        string          `yaml:"x" mapstructure:"x"`
	Y        string          `yaml:"y" mapstructure:"y"`
	Z        string          `yaml:"z" mapstructure:"z"`
	Band     string          `yaml:"band" mapstructure:"band"`
	Clusters []ClusterConfig `yaml:"clusters" mapstructure:"clusters"`
	Scatter  *ScatterConfig  `yaml:"scatter,omitempty" mapstructure:"scatter"`
}

// Dimensions is the size of the 3D plot volume in scene units.
type Dimensions struct {
	X float64 `yaml:"x" mapstructure:"x"`
	Y float64 `yaml:"y" mapstructure:"y"`
	Z float64 `yaml:"z" mapstructure:"z"`
}

// ClusterConfig colors datapoints whose row index is below Until.
// The last cluster may leave Until at 0 to cover the remaining rows.
type ClusterConfig struct {
	Until int    `yaml:"until" mapstructure:"until"`
	Color string `yaml:"color" mapstructure:"color"`
}

// DomainConfig is a fixed axis domain for a named column. Source names the
// column in the data when it differs from the name shown on the axis.
type DomainConfig struct {
	Column string  `yaml:"column" mapstructure:"column"`
	Source string  `yaml:"source" mapstructure:"source"`
	Min    float64 `yaml:"min" mapstructure:"min"`
	Max    float64 `yaml:"max" mapstructure:"max"`
}

// BandConfig is a named value range used to filter scatter datapoints.
type BandConfig struct {
	Name string  `yaml:"name" mapstructure:"name"`
	Min  float64 `yaml:"min" mapstructure:"min"`
	Max  float64 `yaml:"max" mapstructure:"max"`
}

// ScatterConfig controls the scatter redraw loop.
type ScatterConfig struct {
	RefreshMillis      int     `yaml:"refresh_ms" mapstructure:"refresh_ms"`
	LoadTimeoutSeconds float64 `yaml:"load_timeout_seconds" mapstructure:"load_timeout_seconds"`
	MaxInFlight        int     `yaml:"max_in_flight" mapstructure:"max_in_flight"`
	AxisLength         float64 `yaml:"axis_length" mapstructure:"axis_length"`
}

// ServerConfig represents settings for the interactive HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     4,
			MaxIdleConnections: 2,
		},
		Domains: []DomainConfig{
			{Column: "FWFLOW", Min: 1500, Max: 2500},
			{Column: "TAF", Min: 2300, Max: 3700},
			{Column: "YRHRPRS", Min: 6.5, Max: 10},
			{Column: "YRHRTEMPT", Min: 580, Max: 606},
			{Column: "O2", Min: 2, Max: 4.5},
			{Column: "THRTEMP", Min: 580, Max: 606},
			{Column: "MSP", Min: 20, Max: 32},
			{Column: "Angle", Source: "HHA81AS001XQ01", Min: 50, Max: 65},
			{Column: "MW", Min: 600, Max: 1000},
		},
		Bands: []BandConfig{
			{Name: "All", Min: 600, Max: 1000},
			{Name: "B6", Min: 600, Max: 700},
			{Name: "B7", Min: 700, Max: 800},
			{Name: "B8", Min: 800, Max: 900},
			{Name: "B9", Min: 900, Max: 1000},
		},
		Scatter: ScatterConfig{
			RefreshMillis:      900,
			LoadTimeoutSeconds: 5,
			MaxInFlight:        2,
			AxisLength:         10,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// DefaultSurfaceDimensions is used when a surface plot leaves dimensions unset.
var DefaultSurfaceDimensions = Dimensions{X: 80, Y: 40, Z: 160}

// GetPlotScatter returns the scatter loop config for a plot by name, falling back to global if not set.
func (c *Config) GetPlotScatter(plotName string) ScatterConfig {
	plot, err := c.GetPlot(plotName)
	if err != nil {
		return c.Scatter
	}
	return plot.GetPlotScatter(c.Scatter)
}

// GetPlotScatter returns the scatter loop config for a plot, falling back to global if not set.
func (pc *PlotConfig) GetPlotScatter(global ScatterConfig) ScatterConfig {
	if pc.Scatter == nil {
		return global
	}

	result := global
	if pc.Scatter.RefreshMillis > 0 {
		result.RefreshMillis = pc.Scatter.RefreshMillis
	}
	if pc.Scatter.LoadTimeoutSeconds > 0 {
		result.LoadTimeoutSeconds = pc.Scatter.LoadTimeoutSeconds
	}
	if pc.Scatter.MaxInFlight > 0 {
		result.MaxInFlight = pc.Scatter.MaxInFlight
	}
	if pc.Scatter.AxisLength > 0 {
		result.AxisLength = pc.Scatter.AxisLength
	}
	return result
}

// SurfaceDimensions returns the plot dimensions or the surface defaults.
func (pc *PlotConfig) SurfaceDimensions() Dimensions {
	if pc.Dimensions.X <= 0 || pc.Dimensions.Y <= 0 || pc.Dimensions.Z <= 0 {
		return DefaultSurfaceDimensions
	}
	return pc.Dimensions
}

// Domain returns the configured domain for a column.
func (c *Config) Domain(column string) (DomainConfig, bool) {
	for _, d := range c.Domains {
		if d.Column == column {
			return d, true
		}
	}
	return DomainConfig{}, false
}

// SourceColumn returns the data column behind an axis column name.
func (c *Config) SourceColumn(column string) string {
	if d, ok := c.Domain(column); ok && d.Source != "" {
		return d.Source
	}
	return column
}

// Band returns the configured band with the given name.
func (c *Config) Band(name string) (BandConfig, bool) {
	for _, b := range c.Bands {
		if b.Name == name {
			return b, true
		}
	}
	return BandConfig{}, false
}

// DomainColumns returns the columns that have a configured domain, in config order.
func (c *Config) DomainColumns() []string {
	cols := make([]string, 0, len(c.Domains))
	for _, d := range c.Domains {
		cols = append(cols, d.Column)
	}
	return cols
}

// BandNames returns band names in config order.
func (c *Config) BandNames() []string {
	names := make([]string, 0, len(c.Bands))
	for _, b := range c.Bands {
		names = append(names, b.Name)
	}
	return names
}

// UsesDatabase reports whether any plot reads from MySQL.
func (c *Config) UsesDatabase() bool {
	for _, p := range c.Plots {
		if p.SourceFormat() == "mysql" {
			return true
		}
	}
	return false
}
