package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/xyproto/randomstring"
	"gopkg.in/yaml.v3"
)

const (
	NumCars            = 3
	MinFloor           = 1
	MaxFloor           = 10
	TickInterval       = 1 * time.Second
	DispatchInterval   = 300 * time.Millisecond
	MaxDispatchRetries = 5
	DefaultStrategy    = "energy"
	EventBufferSize    = 64
	NameLength         = 8
	EnvPrefix          = "ELEVBANK_"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Name               string        `yaml:"Name"`
	NumCars            int           `yaml:"NumCars"`
	MinFloor           int           `yaml:"MinFloor"`
	MaxFloor           int           `yaml:"MaxFloor"`
	StartFloors        []int         `yaml:"StartFloors"`
	TickInterval       time.Duration `yaml:"TickInterval"`
	DispatchInterval   time.Duration `yaml:"DispatchInterval"`
	MaxDispatchRetries int           `yaml:"MaxDispatchRetries"`
	Strategy           string        `yaml:"Strategy"`
	EventBufferSize    int           `yaml:"EventBufferSize"`
}

func Default() Config {
	return Config{
		NumCars:            NumCars,
		MinFloor:           MinFloor,
		MaxFloor:           MaxFloor,
		TickInterval:       TickInterval,
		DispatchInterval:   DispatchInterval,
		MaxDispatchRetries: MaxDispatchRetries,
		Strategy:           DefaultStrategy,
		EventBufferSize:    EventBufferSize,
	}
}

// Load decodes a yaml file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides fields from an optional .env file and then from the process
// environment. Process variables win over the file.
func (c *Config) ApplyEnv(envPath string) error {
	vars := make(map[string]string)
	if envPath != "" {
		fileVars, err := godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", envPath, err)
		}
		vars = fileVars
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := vars[EnvPrefix+key]
		return v, ok
	}

	if v, ok := lookup("NAME"); ok {
		c.Name = v
	}
	if v, ok := lookup("STRATEGY"); ok {
		c.Strategy = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"NUM_CARS", &c.NumCars},
		{"MIN_FLOOR", &c.MinFloor},
		{"MAX_FLOOR", &c.MaxFloor},
		{"MAX_DISPATCH_RETRIES", &c.MaxDispatchRetries},
		{"EVENT_BUFFER_SIZE", &c.EventBufferSize},
	}
	for _, field := range ints {
		v, ok := lookup(field.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, field.key, v)
		}
		*field.dst = n
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"TICK_INTERVAL", &c.TickInterval},
		{"DISPATCH_INTERVAL", &c.DispatchInterval},
	}
	for _, field := range durations {
		v, ok := lookup(field.key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a duration", ErrInvalidConfig, EnvPrefix, field.key, v)
		}
		*field.dst = d
	}
	return nil
}

// Validate checks the configuration and fills in the bank name when it is unset.
func (c *Config) Validate() error {
	if c.MinFloor >= c.MaxFloor {
		return fmt.Errorf("%w: floor range [%d, %d] is empty", ErrInvalidConfig, c.MinFloor, c.MaxFloor)
	}
	if c.NumCars < 1 {
		return fmt.Errorf("%w: need at least one car, got %d", ErrInvalidConfig, c.NumCars)
	}
	if c.TickInterval <= 0 || c.DispatchInterval <= 0 {
		return fmt.Errorf("%w: intervals must be positive (tick %v, dispatch %v)",
			ErrInvalidConfig, c.TickInterval, c.DispatchInterval)
	}
	if c.MaxDispatchRetries < 0 {
		return fmt.Errorf("%w: negative dispatch retries %d", ErrInvalidConfig, c.MaxDispatchRetries)
	}
	if c.EventBufferSize < 0 {
		return fmt.Errorf("%w: negative event buffer size %d", ErrInvalidConfig, c.EventBufferSize)
	}
	if len(c.StartFloors) != 0 && len(c.StartFloors) != c.NumCars {
		return fmt.Errorf("%w: %d start floors for %d cars", ErrInvalidConfig, len(c.StartFloors), c.NumCars)
	}
	for id, floor := range c.StartFloors {
		if floor < c.MinFloor || floor > c.MaxFloor {
			return fmt.Errorf("%w: car %d starts at floor %d outside [%d, %d]",
				ErrInvalidConfig, id, floor, c.MinFloor, c.MaxFloor)
		}
	}
	if c.Name == "" {
		c.Name = randomstring.EnglishFrequencyString(NameLength)
	}
	return nil
}

// StartFloor returns the configured start floor of a car, MinFloor if none is set.
func (c Config) StartFloor(carID int) int {
	if carID < len(c.StartFloors) {
		return c.StartFloors[carID]
	}
	return c.MinFloor
}
