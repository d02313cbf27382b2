package config

import (
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate cleanly, got: %v", ValidationErrors(errs))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "empty manifest path",
			mutate:    func(c *Config) { c.Manifest.Path = "" },
			wantField: "manifest.path",
		},
		{
			name:      "empty propagate command",
			mutate:    func(c *Config) { c.Steps.Propagate.Command = "" },
			wantField: "steps.propagate.command",
		},
		{
			name:      "empty lock command",
			mutate:    func(c *Config) { c.Steps.Lock.Command = "" },
			wantField: "steps.lock.command",
		},
		{
			name:      "no lock packages",
			mutate:    func(c *Config) { c.Steps.Lock.Packages = nil },
			wantField: "steps.lock.packages",
		},
		{
			name:      "empty changelog command",
			mutate:    func(c *Config) { c.Steps.Changelog.Command = "" },
			wantField: "steps.changelog.command",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Logging.Level = "verbose" },
			wantField: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("Validate() returned no errors")
			}

			found := false
			for _, err := range errs {
				if err.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors %v should name field %q", errs, tt.wantField)
			}
		})
	}
}

func TestLockArgs(t *testing.T) {
	lock := LockConfig{
		Command:  "cargo",
		Args:     []string{"update"},
		Packages: []string{"rash_core", "rash_derive"},
	}

	got := strings.Join(lock.LockArgs(), " ")
	want := "update -p rash_core -p rash_derive"
	if got != want {
		t.Errorf("LockArgs() = %q, want %q", got, want)
	}
}

func TestResolveEditor(t *testing.T) {
	t.Run("configured editor wins", func(t *testing.T) {
		t.Setenv("EDITOR", "nano")
		cfg := Default()
		cfg.Editor.Command = "hx"
		if got := cfg.ResolveEditor(); got != "hx" {
			t.Errorf("ResolveEditor() = %q, want %q", got, "hx")
		}
	})

	t.Run("EDITOR env fallback", func(t *testing.T) {
		t.Setenv("EDITOR", "nano")
		cfg := Default()
		if got := cfg.ResolveEditor(); got != "nano" {
			t.Errorf("ResolveEditor() = %q, want %q", got, "nano")
		}
	})

	t.Run("vi as last resort", func(t *testing.T) {
		t.Setenv("EDITOR", "")
		cfg := Default()
		if got := cfg.ResolveEditor(); got != "vi" {
			t.Errorf("ResolveEditor() = %q, want %q", got, "vi")
		}
	})

	t.Run("whitespace-only command falls through to EDITOR", func(t *testing.T) {
		t.Setenv("EDITOR", "nano")
		cfg := Default()
		cfg.Editor.Command = "   "
		if got := cfg.ResolveEditor(); got != "nano" {
			t.Errorf("ResolveEditor() = %q, want %q", got, "nano")
		}
	})

	t.Run("whitespace everywhere still yields vi", func(t *testing.T) {
		t.Setenv("EDITOR", " \t ")
		cfg := Default()
		cfg.Editor.Command = "  "
		if got := cfg.ResolveEditor(); got != "vi" {
			t.Errorf("ResolveEditor() = %q, want %q", got, "vi")
		}
	})
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "manifest.path", Value: "", Message: "manifest path must not be empty"},
		{Field: "logging.level", Value: "verbose", Message: "must be one of: debug, info, warn, error"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Error() = %q, want error count prefix", msg)
	}
	if !strings.Contains(msg, "manifest.path") || !strings.Contains(msg, "logging.level") {
		t.Errorf("Error() = %q, want both fields mentioned", msg)
	}
}
