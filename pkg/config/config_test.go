package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (c *testConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
	)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "name: osukit\nport: 8080\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "osukit" || cfg.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_NAME", "from-env")
	path := writeConfig(t, "name: ${TEST_CONFIG_NAME}\n")
	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, "port: 8080\n")
	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Error("expected validation error for missing name")
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load("does/not/exist.yaml", &cfg); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg := testConfig{Name: "default"}
	if err := LoadOrDefault("does/not/exist.yaml", &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "default" {
		t.Errorf("Name = %q, want defaults kept", cfg.Name)
	}
}
