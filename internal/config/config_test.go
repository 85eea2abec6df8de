package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if c.IdentityColumn != "Work Email" {
		t.Errorf("IdentityColumn = %q", c.IdentityColumn)
	}
}

func TestLoad(t *testing.T) {
	t.Run("overlay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "addr: ':9090'\nrecent_hire_days: 30\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if c.Addr != ":9090" {
			t.Errorf("Addr = %q", c.Addr)
		}
		if c.RecentHireDays != 30 {
			t.Errorf("RecentHireDays = %d", c.RecentHireDays)
		}
		// Untouched keys keep their defaults.
		if c.IdentityColumn != "Work Email" {
			t.Errorf("IdentityColumn = %q", c.IdentityColumn)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("identity must be required", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "identity_column: 'Badge ID'\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("ROSTERD_ADDR", "0.0.0.0:7070")
		c, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if c.Addr != "0.0.0.0:7070" {
			t.Errorf("Addr = %q", c.Addr)
		}
	})
}
