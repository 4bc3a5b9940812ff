package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"conway/src/simulation"
	"conway/src/universe"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Size != 80 || c.StepInterval() != simulation.NormalSpeed || c.Template != "testSample" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestParseFlags(t *testing.T) {
	c, err := Parse([]string{"--size", "20", "--speed", "fast", "-s", "10", "--stopWhenStable"})
	if err != nil {
		t.Fatal(err)
	}
	o := c.Options()
	if c.Size != 20 || o.Interval != simulation.FastSpeed || o.MaxSteps != 10 || !o.StopWhenStable {
		t.Fatalf("unexpected config %+v", c)
	}

	c, err = Parse([]string{"--speed", "slow", "--interval", "20ms"})
	if err != nil {
		t.Fatal(err)
	}
	if c.StepInterval() != 20*time.Millisecond {
		t.Fatalf("interval %v", c.StepInterval())
	}
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conway.json")
	data := `{"size": 30, "speed": "slow", "interval": "20ms", "max_steps": 5, "template": "glider"}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Parse([]string{"--config", path, "--size", "40"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Size != 40 || c.Speed != "slow" || c.MaxSteps != 5 || c.Template != "glider" {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.StepInterval() != 20*time.Millisecond {
		t.Fatalf("interval %v", c.StepInterval())
	}
}

func TestLoadIntervalFormat(t *testing.T) {
	tests := []struct {
		data string
		want time.Duration
		ok   bool
	}{
		{`{"interval": "75ms"}`, 75 * time.Millisecond, true},
		{`{"interval": "1s"}`, time.Second, true},
		{`{"size": 10}`, 0, true},
		{`{"interval": "75"}`, 0, false},
		{`{"interval": 75}`, 0, false},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "conway.json")
		if err := os.WriteFile(path, []byte(tt.data), 0o600); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if (err == nil) != tt.ok {
			t.Errorf("%s: err=%v, expected ok=%v", tt.data, err, tt.ok)
			continue
		}
		if tt.ok && c.Interval != tt.want {
			t.Errorf("%s: interval=%v, expected %v", tt.data, c.Interval, tt.want)
		}
	}
}

func TestInteractiveRunsUntilStopped(t *testing.T) {
	c, err := Parse([]string{"--interactive", "--maxSteps", "5", "--stopWhenStable"})
	if err != nil {
		t.Fatal(err)
	}
	o := c.Options()
	if o.MaxSteps != 0 || o.StopWhenStable {
		t.Fatalf("interactive options %+v carry finish conditions", o)
	}

	c, err = Parse([]string{"--interactive"})
	if err != nil {
		t.Fatal(err)
	}
	if o := c.Options(); o.MaxSteps != 0 {
		t.Fatalf("interactive default maxSteps=%d", o.MaxSteps)
	}
	if o := Default().Options(); o.MaxSteps != 1000 {
		t.Fatalf("headless default maxSteps=%d", o.MaxSteps)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("err=%v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"zero size", func(c *Config) { c.Size = 0 }, false},
		{"unknown speed", func(c *Config) { c.Speed = "warp" }, false},
		{"unknown speed with interval", func(c *Config) { c.Speed = "warp"; c.Interval = time.Second }, true},
		{"negative steps", func(c *Config) { c.MaxSteps = -1 }, false},
		{"unknown template", func(c *Config) { c.Template = "nope" }, false},
		{"random ignores template", func(c *Config) { c.Template = "nope"; c.Random = true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("err=%v, expected ok=%v", err, tt.ok)
			}
		})
	}

	c := Default()
	c.Template = "nope"
	if errors.Cause(c.Validate()) != universe.ErrUnknownTemplate {
		t.Fatal("expected ErrUnknownTemplate")
	}
}
