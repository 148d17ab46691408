// Package config loads the YAML settings shared by the commands.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/notegrid/constants"
	"github.com/jsphweid/notegrid/model"
	"github.com/pkg/errors"
)

type Config struct {
	// PPQ is used when a song is built without a time format.
	PPQ             int  `yaml:"ppq"`
	ControlNoteMax  int  `yaml:"control_note_max"`
	RemovePolyphony bool `yaml:"remove_polyphony"`

	// Quantize is "auto", "none", a note value like "16" or "8-3", or a tick
	// count.
	Quantize string `yaml:"quantize"`
	Locale   string `yaml:"locale"`
	OutDir   string `yaml:"out_dir"`

	Server   Server   `yaml:"server"`
	Metadata Metadata `yaml:"metadata"`
}

// Server configures the HTTP API. No allowed origins means any origin.
type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Metadata points at the DynamoDB table with song titles. Lookups are off
// while Table is empty.
type Metadata struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Table    string `yaml:"table,omitempty"`
}

func Default() *Config {
	return &Config{
		PPQ:             model.DefaultPPQ,
		ControlNoteMax:  constants.ControlNoteMax,
		RemovePolyphony: true,
		Quantize:        "auto",
		Locale:          "US",
		OutDir:          constants.GetOutDir(),
		Server:          Server{Addr: ":8080"},
		Metadata:        Metadata{Region: "us-east-1"},
	}
}

// Load reads the config at path on top of the defaults. A missing file is not
// an error. Environment variables override the file.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, errors.Wrap(err, "could not read config")
		default:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, errors.Wrapf(err, "could not parse config %v", path)
			}
		}
	}

	if dir := os.Getenv("NOTEGRID_OUT_DIR"); dir != "" {
		c.OutDir = dir
	}
	if endpoint := constants.GetMetadataEndpoint(); endpoint != "" {
		c.Metadata.Endpoint = endpoint
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.PPQ <= 0 {
		return model.NewValueError("ppq must be positive, got %d", c.PPQ)
	}
	if c.ControlNoteMax < -1 || c.ControlNoteMax > model.MaxPitch {
		return model.NewValueError("control_note_max out of range: %d", c.ControlNoteMax)
	}
	switch strings.ToUpper(c.Locale) {
	case "US", "UK":
	default:
		return model.NewValueError("unknown locale %q", c.Locale)
	}
	if _, _, err := ParseQuantize(c.Quantize); err != nil {
		return err
	}
	return nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "could not encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "could not write config %v", path)
}

// QuantizeMode says how songs are snapped to a grid before measures are built.
type QuantizeMode int

const (
	QuantizeAuto QuantizeMode = iota
	QuantizeNone
	QuantizeNote
	QuantizeTicks
)

// ParseQuantize reads a quantize setting along with its argument. Numbers
// that name a note value ("16") win over tick counts.
func ParseQuantize(s string) (QuantizeMode, string, error) {
	switch s {
	case "", "auto":
		return QuantizeAuto, "", nil
	case "none":
		return QuantizeNone, "", nil
	}
	if _, ok := constants.DurationStr[s]; ok {
		return QuantizeNote, s, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return QuantizeTicks, s, nil
	}
	return QuantizeAuto, "", model.NewValueError("unknown quantize setting %q", s)
}
