package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.NumCars != NumCars || c.MinFloor != MinFloor || c.MaxFloor != MaxFloor {
		t.Errorf("Expected defaults, got %+v", c)
	}
	if c.Strategy != DefaultStrategy {
		t.Errorf("Expected strategy %q, got %q", DefaultStrategy, c.Strategy)
	}
}

func TestLoadYamlKeepsMissingDefaults(t *testing.T) {
	path := writeFile(t, "bank.yaml", `
NumCars: 2
MaxFloor: 20
StartFloors: [1, 20]
TickInterval: 250ms
Strategy: nearest
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.NumCars != 2 || c.MaxFloor != 20 || c.Strategy != "nearest" {
		t.Errorf("Unexpected config %+v", c)
	}
	if c.TickInterval != 250*time.Millisecond {
		t.Errorf("Expected tick 250ms, got %v", c.TickInterval)
	}
	if c.MinFloor != MinFloor || c.DispatchInterval != DispatchInterval {
		t.Errorf("Expected missing keys to keep defaults, got %+v", c)
	}
	if c.StartFloor(1) != 20 {
		t.Errorf("Expected car 1 to start at 20, got %d", c.StartFloor(1))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestApplyEnvFileAndProcessOverride(t *testing.T) {
	path := writeFile(t, ".env", "ELEVBANK_NUM_CARS=4\nELEVBANK_STRATEGY=load\nELEVBANK_TICK_INTERVAL=50ms\n")
	t.Setenv("ELEVBANK_NUM_CARS", "6")

	c := Default()
	if err := c.ApplyEnv(path); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.NumCars != 6 {
		t.Errorf("Expected process env to win with 6 cars, got %d", c.NumCars)
	}
	if c.Strategy != "load" {
		t.Errorf("Expected strategy load, got %q", c.Strategy)
	}
	if c.TickInterval != 50*time.Millisecond {
		t.Errorf("Expected tick 50ms, got %v", c.TickInterval)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("ELEVBANK_MAX_FLOOR", "ten")
	c := Default()
	if err := c.ApplyEnv(""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty range", func(c *Config) { c.MinFloor, c.MaxFloor = 5, 5 }, false},
		{"no cars", func(c *Config) { c.NumCars = 0 }, false},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, false},
		{"negative retries", func(c *Config) { c.MaxDispatchRetries = -1 }, false},
		{"start floor count", func(c *Config) { c.StartFloors = []int{1} }, false},
		{"start floor range", func(c *Config) { c.StartFloors = []int{1, 2, 11} }, false},
		{"start floors", func(c *Config) { c.StartFloors = []int{1, 5, 10} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateNamesBank(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Name == "" {
		t.Error("Expected a generated bank name")
	}
}
