package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the TUI app.
type Config struct {
	PacksDir     string `env:"PACKS_DIR"`
	PackID       string `env:"PACK"`
	LogPath      string `env:"LOG_PATH"`
	Debug        bool   `env:"DEBUG"`
	Dev          bool   `env:"DEV"`
	DevHTTP      string `env:"DEV_HTTP"`
	DevCacheDir  string `env:"DEV_CACHE_DIR"`
	DemoScenario string `env:"DEMO"`
	ASCIIOnly    bool   `env:"ASCII"`

	UI UIConfig `envPrefix:"UI_"`
}

type UIConfig struct {
	StyleVariant string `env:"STYLE"`
	MotionLevel  string `env:"MOTION"`
	MouseScope   string `env:"MOUSE"`
}

func DefaultConfig() Config {
	return Config{
		PacksDir: "packs",
		DevHTTP:  "127.0.0.1:17341",
		UI: UIConfig{
			StyleVariant: "studio",
			MotionLevel:  "full",
			MouseScope:   "full",
		},
	}
}

// ApplyEnv layers PLOTDOJO_* environment variables over the current values.
// Flags bind after this, so the precedence is defaults < env < flags.
func (c *Config) ApplyEnv() error {
	return env.ParseWithOptions(c, env.Options{Prefix: "PLOTDOJO_"})
}

func (c *Config) Validate() error {
	if c.PacksDir == "" {
		c.PacksDir = "packs"
	}
	if c.DevHTTP == "" {
		c.DevHTTP = "127.0.0.1:17341"
	}

	switch c.UI.StyleVariant {
	case "", "studio", "chalkboard", "mono":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "studio"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	switch c.UI.MouseScope {
	case "", "off", "scoped", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}
	if c.UI.MouseScope == "" {
		c.UI.MouseScope = "full"
	}

	return nil
}
