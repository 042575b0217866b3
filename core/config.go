package core

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// WindowConfig describes the window and its GL context.
type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Resizable  bool   `toml:"resizable"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
	// Samples is the MSAA sample count of the default framebuffer.
	Samples int `toml:"samples"`
	// Debug requests a debug context so driver messages reach the log.
	Debug bool `toml:"debug"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      1280,
		Height:     720,
		Title:      "glsafe",
		Resizable:  true,
		VSync:      true,
		Fullscreen: false,
		Samples:    4,
	}
}

// LoadWindowConfig reads a TOML file over the defaults. Keys the file sets
// replace the default values; unknown keys are an error.
func LoadWindowConfig(path string) (WindowConfig, error) {
	config := DefaultWindowConfig()
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return WindowConfig{}, fmt.Errorf("failed to read window config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return WindowConfig{}, fmt.Errorf("window config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return config, config.Validate()
}

// Validate reports settings no window can be created with.
func (c WindowConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Samples < 0 || c.Samples > 16 {
		return fmt.Errorf("invalid sample count %d", c.Samples)
	}
	return nil
}
