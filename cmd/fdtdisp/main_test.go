package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func resetFlags(t *testing.T) {
	t.Helper()
	preset, configFile = "", ""
}

func TestResolveConfig_Defaults(t *testing.T) {
	resetFlags(t)
	cmd := newRunCmd()

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Figure != "error1d" || cfg.Courant != 0.5 || cfg.Range.Steps != 100 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestResolveConfig_PresetThenFlags(t *testing.T) {
	resetFlags(t)
	cmd := newRunCmd()
	if err := cmd.Flags().Set("preset", "problem2-6"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("steps", "50"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd, []string{"error2d"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if math.Abs(cfg.Courant-math.Sqrt2/2) > 1e-12 {
		t.Errorf("preset courant not applied: %v", cfg.Courant)
	}
	if cfg.Range.Steps != 50 {
		t.Errorf("steps flag not applied: %d", cfg.Range.Steps)
	}
	if cfg.Range.Min != 3 || cfg.Range.Max != 80 {
		t.Errorf("unset flags should keep the preset range: %+v", cfg.Range)
	}
}

func TestResolveConfig_FileBetweenPresetAndFlags(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("courant: 0.3\nrange:\n  min: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRunCmd()
	for flag, val := range map[string]string{"preset": "problem2-5", "config": path, "courant": "0.2"} {
		if err := cmd.Flags().Set(flag, val); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := resolveConfig(cmd, []string{"error1d"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Courant != 0.2 {
		t.Errorf("flag should win over the file, got S=%v", cfg.Courant)
	}
	if cfg.Range.Min != 5 {
		t.Errorf("file should win over the preset, got min=%v", cfg.Range.Min)
	}
	if cfg.Range.Max != 80 {
		t.Errorf("preset max lost, got %v", cfg.Range.Max)
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	resetFlags(t)
	cmd := newRunCmd()
	if err := cmd.Flags().Set("preset", "nope"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, []string{"error1d"}); err == nil {
		t.Error("unknown preset should fail")
	}

	resetFlags(t)
	cmd = newRunCmd()
	if err := cmd.Flags().Set("min", "90"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, nil); err == nil {
		t.Error("min above max should fail")
	}

	resetFlags(t)
	if _, err := resolveConfig(newRunCmd(), []string{"surface"}); err == nil {
		t.Error("unknown figure should fail")
	}
}
