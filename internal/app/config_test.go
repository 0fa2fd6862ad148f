package app

import (
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.PacksDir != "packs" {
		t.Fatalf("unexpected packs dir %q", cfg.PacksDir)
	}
	if cfg.UI.StyleVariant != "studio" {
		t.Fatalf("unexpected style %q", cfg.UI.StyleVariant)
	}
}

func TestValidateFillsEmptyFields(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty config should validate: %v", err)
	}
	if cfg.PacksDir != "packs" {
		t.Fatalf("expected packs dir default, got %q", cfg.PacksDir)
	}
	if cfg.DevHTTP != "127.0.0.1:17341" {
		t.Fatalf("expected dev http default, got %q", cfg.DevHTTP)
	}
	if cfg.UI.StyleVariant != "studio" || cfg.UI.MotionLevel != "full" || cfg.UI.MouseScope != "full" {
		t.Fatalf("expected ui defaults, got %+v", cfg.UI)
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"style", func(c *Config) { c.UI.StyleVariant = "neon" }, "style variant"},
		{"motion", func(c *Config) { c.UI.MotionLevel = "extreme" }, "motion level"},
		{"mouse", func(c *Config) { c.UI.MouseScope = "everywhere" }, "mouse scope"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mut(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestApplyEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PLOTDOJO_PACKS_DIR", "/srv/packs")
	t.Setenv("PLOTDOJO_PACK", "critique-101")
	t.Setenv("PLOTDOJO_UI_STYLE", "mono")
	t.Setenv("PLOTDOJO_ASCII", "true")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.PacksDir != "/srv/packs" {
		t.Fatalf("expected env packs dir, got %q", cfg.PacksDir)
	}
	if cfg.PackID != "critique-101" {
		t.Fatalf("expected env pack id, got %q", cfg.PackID)
	}
	if cfg.UI.StyleVariant != "mono" {
		t.Fatalf("expected env style, got %q", cfg.UI.StyleVariant)
	}
	if !cfg.ASCIIOnly {
		t.Fatalf("expected ascii mode from env")
	}
	if cfg.UI.MotionLevel != "full" {
		t.Fatalf("unset env should keep default, got %q", cfg.UI.MotionLevel)
	}
}

func TestApplyEnvLeavesValuesWithoutEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DemoScenario = "review_pass"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.DemoScenario != "review_pass" {
		t.Fatalf("expected scenario preserved, got %q", cfg.DemoScenario)
	}
}
