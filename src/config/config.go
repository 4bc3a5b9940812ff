package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"conway/src/simulation"
	"conway/src/universe"
)

//Speeds maps the preset names to step intervals
var Speeds = map[string]time.Duration{
	"slow":   simulation.SlowSpeed,
	"normal": simulation.NormalSpeed,
	"fast":   simulation.FastSpeed,
}

//Config holds the configuration for the simulator
type Config struct {
	Size           int           `json:"size"`
	Speed          string        `json:"speed"`
	Interval       time.Duration `json:"interval"`
	MaxSteps       int           `json:"max_steps"`
	StopWhenStable bool          `json:"stop_when_stable"`
	Interactive    bool          `json:"interactive"`
	Random         bool          `json:"random"`
	Seed           int64         `json:"seed"`
	Template       string        `json:"template"`
}

//Default returns the universe of the desktop simulator: 800px canvas of 10px cells
func Default() Config {
	return Config{
		Size:     80,
		Speed:    "normal",
		MaxSteps: 1000,
		Seed:     time.Now().UnixNano(),
		Template: "testSample",
	}
}

//Load loads configuration from JSON file on top of the defaults
func Load(filename string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return c, errors.Wrapf(err, "[Load] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "[Load] failed to unmarshal data from file: %+v", filename)
	}

	return c, nil
}

//UnmarshalJSON reads the interval as a duration string such as "75ms"
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Interval string `json:"interval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Interval == "" {
		return nil
	}
	d, err := time.ParseDuration(aux.Interval)
	if err != nil {
		return errors.Wrapf(err, "invalid interval %q", aux.Interval)
	}
	c.Interval = d
	return nil
}

//Parse builds the configuration from the command line arguments without the program name
//values from the --config file are overridden by the flags given explicitly
func Parse(args []string) (Config, error) {
	c := Default()
	var path string
	if err := newParser(&c, &path).ParseArgs(args); err != nil {
		return c, errors.Wrap(err, "[Parse] failed to parse flags")
	}
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return c, err
		}
		if err = newParser(&c, &path).ParseArgs(args); err != nil {
			return c, errors.Wrap(err, "[Parse] failed to parse flags")
		}
	}
	return c, c.Validate()
}

//Validate checks the values which can not be clamped
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.Errorf("size must be positive, got %d", c.Size)
	}
	if _, ok := Speeds[c.Speed]; !ok && c.Interval <= 0 {
		return errors.Errorf("unknown speed %q", c.Speed)
	}
	if c.Interval < 0 {
		return errors.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.MaxSteps < 0 {
		return errors.Errorf("maxSteps must not be negative, got %d", c.MaxSteps)
	}
	if c.Template != "" && !c.Random {
		if _, err := universe.LookupTemplate(c.Template); err != nil {
			return err
		}
	}
	return nil
}

//StepInterval returns the explicit interval or the one of the speed preset
func (c Config) StepInterval() time.Duration {
	if c.Interval > 0 {
		return c.Interval
	}
	if d, ok := Speeds[c.Speed]; ok {
		return d
	}
	return simulation.NormalSpeed
}

//Options returns the controller options
//the finish conditions only apply to headless runs, an interactive session runs until stopped
func (c Config) Options() *simulation.Options {
	o := &simulation.Options{Interval: c.StepInterval()}
	if !c.Interactive {
		o.MaxSteps = c.MaxSteps
		o.StopWhenStable = c.StopWhenStable
	}
	return o
}

func newParser(c *Config, path *string) *flaggy.Parser {
	p := flaggy.NewParser("conway")
	p.Description = "Conway's Game of Life"
	p.ShowHelpOnUnexpected = true
	p.String(path, "c", "config", "JSON configuration file")
	p.Int(&c.Size, "x", "size", "Side length of the square grid")
	p.String(&c.Speed, "p", "speed", "Speed preset [slow|normal|fast]")
	p.Duration(&c.Interval, "i", "interval", "Interval between the steps in format the number with 'ms' suffix, overrides the speed preset")
	p.Int(&c.MaxSteps, "s", "maxSteps", "Limit the headless simulation to maxSteps, 0 is unlimited")
	p.Bool(&c.StopWhenStable, "b", "stopWhenStable", "Finish the headless simulation when the grid stops changing")
	p.Bool(&c.Interactive, "n", "interactive", "Start interactive mode")
	p.Bool(&c.Random, "r", "random", "Settle with random data")
	p.Int64(&c.Seed, "d", "seed", "Seed for the random data")
	p.String(&c.Template, "t", "template", "Seeding template ["+strings.Join(universe.TemplateNames(), "|")+"]")
	return p
}
