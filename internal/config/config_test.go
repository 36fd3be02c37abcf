package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provenance != ProvenanceNone {
		t.Errorf("Provenance = %q, want %q", cfg.Provenance, ProvenanceNone)
	}
	if cfg.DomainSize != Domain64 {
		t.Errorf("DomainSize = %d, want %d", cfg.DomainSize, Domain64)
	}
	if cfg.RunsProvenance() {
		t.Error("RunsProvenance() = true for the default config")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "souffle.yaml")
	contents := "provenance: subtreeHeights\nramDomainSize: 32\ndebugReport: type-analysis\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provenance != ProvenanceSubtreeHeights {
		t.Errorf("Provenance = %q, want %q", cfg.Provenance, ProvenanceSubtreeHeights)
	}
	if cfg.DomainSize != Domain32 {
		t.Errorf("DomainSize = %d, want %d", cfg.DomainSize, Domain32)
	}
	if !cfg.WantsDebugReport("type-analysis") {
		t.Error("expected WantsDebugReport(\"type-analysis\") to be true")
	}
	if !cfg.RunsProvenance() {
		t.Error("expected RunsProvenance() to be true")
	}
}

func TestLoadRejectsUnknownProvenanceMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "souffle.yaml")
	if err := os.WriteFile(path, []byte("provenance: bogus\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unrecognized provenance mode")
	}
}
