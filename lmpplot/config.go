package lmpplot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects the style applied to the plots. It is an explicit value
// handed to every plotting function; nothing in this package keeps global
// rendering state. The zero value is not useful, start from Default.
type Config struct {
	Width     float64 `yaml:"width"`      //cm
	Height    float64 `yaml:"height"`     //cm
	LineWidth float64 `yaml:"line_width"` //pt
	DashedErr bool    `yaml:"dashed_err"` //draw the +-std envelope as dashed lines
}

// Default returns the house style.
func Default() Config {
	return Config{
		Width:     14,
		Height:    10,
		LineWidth: 2,
		DashedErr: true,
	}
}

// Load reads a YAML style file and overlays it on the default
// configuration, so a file only needs to name the fields it changes.
func Load(name string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("lmpplot: parsing %s: %w", name, err)
	}
	return cfg, nil
}
