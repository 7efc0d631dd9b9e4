package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test database defaults
	if cfg.Database.Port != 3306 {
		t.Errorf("expected database port 3306, got %d", cfg.Database.Port)
	}
	if cfg.Database.TLS != "preferred" {
		t.Errorf("expected database TLS 'preferred', got %s", cfg.Database.TLS)
	}

	// Test scatter defaults
	if cfg.Scatter.RefreshMillis != 900 {
		t.Errorf("expected refresh_ms 900, got %d", cfg.Scatter.RefreshMillis)
	}
	if cfg.Scatter.MaxInFlight != 2 {
		t.Errorf("expected max_in_flight 2, got %d", cfg.Scatter.MaxInFlight)
	}
	if cfg.Scatter.AxisLength != 10 {
		t.Errorf("expected axis_length 10, got %f", cfg.Scatter.AxisLength)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging format 'json', got %s", cfg.Logging.Format)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected server addr ':8080', got %s", cfg.Server.Addr)
	}
}

func TestDefaultDomainsAndBands(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		column   string
		min, max float64
	}{
		{"FWFLOW", 1500, 2500},
		{"TAF", 2300, 3700},
		{"YRHRPRS", 6.5, 10},
		{"O2", 2, 4.5},
		{"MSP", 20, 32},
		{"Angle", 50, 65},
	}
	for _, tt := range tests {
		d, ok := cfg.Domain(tt.column)
		if !ok {
			t.Errorf("expected domain for %s", tt.column)
			continue
		}
		if d.Min != tt.min || d.Max != tt.max {
			t.Errorf("domain %s = [%v, %v], expected [%v, %v]", tt.column, d.Min, d.Max, tt.min, tt.max)
		}
	}

	if got := cfg.SourceColumn("Angle"); got != "HHA81AS001XQ01" {
		t.Errorf("SourceColumn(Angle) = %s, expected HHA81AS001XQ01", got)
	}
	if got := cfg.SourceColumn("MW"); got != "MW" {
		t.Errorf("SourceColumn(MW) = %s, expected MW", got)
	}

	if _, ok := cfg.Domain("missing"); ok {
		t.Error("expected no domain for unknown column")
	}

	names := cfg.BandNames()
	expected := []string{"All", "B6", "B7", "B8", "B9"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d bands, got %d", len(expected), len(names))
	}
	for i, n := range expected {
		if names[i] != n {
			t.Errorf("band[%d] = %s, expected %s", i, names[i], n)
		}
	}

	b7, ok := cfg.Band("B7")
	if !ok || b7.Min != 700 || b7.Max != 800 {
		t.Errorf("unexpected B7 band: %+v", b7)
	}
}

func TestPlotScatterOverride(t *testing.T) {
	global := ScatterConfig{
		RefreshMillis:      900,
		LoadTimeoutSeconds: 5,
		MaxInFlight:        2,
		AxisLength:         10,
	}

	// No override
	pc := PlotConfig{}
	result := pc.GetPlotScatter(global)
	if result != global {
		t.Errorf("expected global scatter config, got %+v", result)
	}

	// Partial override
	pc = PlotConfig{
		Scatter: &ScatterConfig{
			RefreshMillis: 250,
		},
	}
	result = pc.GetPlotScatter(global)
	if result.RefreshMillis != 250 {
		t.Errorf("expected refresh_ms 250, got %d", result.RefreshMillis)
	}
	if result.MaxInFlight != 2 {
		t.Errorf("expected max_in_flight to remain 2, got %d", result.MaxInFlight)
	}

	cfg := &Config{
		Scatter: global,
		Plots: map[string]PlotConfig{
			"fast": pc,
		},
	}
	if cfg.GetPlotScatter("fast").RefreshMillis != 250 {
		t.Error("expected plot override through config lookup")
	}
	if cfg.GetPlotScatter("unknown").RefreshMillis != 900 {
		t.Error("expected global scatter config for unknown plot")
	}
}

func TestSurfaceDimensions(t *testing.T) {
	pc := PlotConfig{}
	if pc.SurfaceDimensions() != DefaultSurfaceDimensions {
		t.Errorf("expected default dimensions, got %+v", pc.SurfaceDimensions())
	}

	pc.Dimensions = Dimensions{X: 10, Y: 20, Z: 30}
	if pc.SurfaceDimensions() != pc.Dimensions {
		t.Errorf("expected configured dimensions, got %+v", pc.SurfaceDimensions())
	}
}

func TestSourceFormat(t *testing.T) {
	tests := []struct {
		input, format, expected string
	}{
		{"data/hope.csv", "", "csv"},
		{"data/hope.CSV", "", "csv"},
		{"data/readings.parquet", "", "parquet"},
		{"table.yml", "", "yaml"},
		{"table.json", "", "json"},
		{"", "mysql", "mysql"},
		{"data/hope.csv", "Parquet", "parquet"},
		{"data/unknown.bin", "", ""},
	}

	for _, tt := range tests {
		pc := PlotConfig{Input: tt.input, Format: tt.format}
		if got := pc.SourceFormat(); got != tt.expected {
			t.Errorf("SourceFormat(%q, %q) = %q, expected %q", tt.input, tt.format, got, tt.expected)
		}
	}
}

func TestUsesDatabase(t *testing.T) {
	cfg := &Config{
		Plots: map[string]PlotConfig{
			"file": {Input: "hope.csv"},
		},
	}
	if cfg.UsesDatabase() {
		t.Error("expected no database for file-only plots")
	}

	cfg.Plots["sql"] = PlotConfig{Format: "mysql", Table: "readings"}
	if !cfg.UsesDatabase() {
		t.Error("expected database when a plot uses mysql")
	}
}
