package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryLimit != 50 {
		t.Fatalf("HistoryLimit = %d, want 50", cfg.HistoryLimit)
	}
	if cfg.Model != DefaultConfig().Model {
		t.Fatalf("Model = %q, want %q", cfg.Model, DefaultConfig().Model)
	}
	if cfg.DefaultBubbleColor != "#0ea5e9" {
		t.Fatalf("DefaultBubbleColor = %q, want #0ea5e9", cfg.DefaultBubbleColor)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"history_limit": 10, "model": "gemini-2.5-flash"}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HistoryLimit != 10 {
		t.Fatalf("HistoryLimit = %d, want 10", cfg.HistoryLimit)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Fatalf("Model = %q, want gemini-2.5-flash", cfg.Model)
	}
	// Fields absent from the file keep their defaults.
	if cfg.DefaultBubbleColor != "#0ea5e9" {
		t.Fatalf("DefaultBubbleColor = %q, want default", cfg.DefaultBubbleColor)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["rig_export", "vault_remove"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "rig_export" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "rig_export")
	}
}

func TestMerge_Booleans(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{NoAutoPreset: true}

	merged := Merge(base, overlay)
	if !merged.NoAutoPreset {
		t.Error("NoAutoPreset = false, want true from overlay")
	}
	if merged.NoEnrich {
		t.Error("NoEnrich = true, want false")
	}
}

func TestMerge_ArraysDeduplicated(t *testing.T) {
	base := &Config{DisabledTools: []string{"rig_export", " vault_remove "}}
	overlay := &Config{DisabledTools: []string{"rig_export", "rack_load"}}

	merged := Merge(base, overlay)
	if len(merged.DisabledTools) != 3 {
		t.Fatalf("DisabledTools = %v, want 3 deduplicated entries", merged.DisabledTools)
	}
}
