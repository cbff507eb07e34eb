// Package config loads the client configuration from the XDG config path,
// falling back to built-in defaults when no file exists.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	XDGName = "edura"
)

var (
	// Default is the configuration used when ~/.config/edura/config.yaml
	// is absent. The base URL points at the hosted backend.
	Default = Config{
		BaseURL:        "https://edura-website.onrender.com",
		Timeout:        30 * time.Second,
		SearchDebounce: 300 * time.Millisecond,
	}
)

type Config struct {
	BaseURL        string        `yaml:"baseURL" validate:"required,url"`
	Timeout        time.Duration `yaml:"timeout" validate:"required"`
	SearchDebounce time.Duration `yaml:"searchDebounce"`
	SessionFile    string        `yaml:"sessionFile,omitempty"`
	SessionSecret  string        `yaml:"sessionSecret,omitempty"`
	Verbose        bool          `yaml:"verbose,omitempty"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	validate := validator.New()
	err = validate.Struct(c)
	if err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &c, nil
}

// Load resolves the config file under the XDG config home and parses it.
// A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := xdg.ConfigFile(XDGName + "/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("unable to determine config path: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			c := Default
			return &c, nil
		}
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	return NewFromReader(f)
}

// SessionPath resolves where the durable session lives: the configured
// path, or a file under the XDG state home.
func (c *Config) SessionPath() (string, error) {
	if c.SessionFile != "" {
		return c.SessionFile, nil
	}
	return xdg.StateFile(XDGName + "/session")
}
