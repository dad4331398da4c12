package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/theDavidOlasupo/seglog/pkg/config"
)

func TestCheckConfig_NoPathUsesDefaults(t *testing.T) {
	cfg, result := checkConfig(context.Background(), "")

	if result.Status != "ok" {
		t.Errorf("status = %q, want ok", result.Status)
	}
	if cfg == nil || cfg.Parser.ChunkSize != config.DefaultChunkSize {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestCheckConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("parser:\n  chunk_size: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, result := checkConfig(context.Background(), path)
	if result.Status != "error" {
		t.Errorf("status = %q, want error", result.Status)
	}
}

func TestCheckInputFile_Missing(t *testing.T) {
	results := checkInputFile(config.DefaultConfig(), filepath.Join(t.TempDir(), "missing.log"))

	if len(results) != 1 || results[0].Status != "error" {
		t.Errorf("results = %+v, want single error", results)
	}
}

func TestCheckInputFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	results := checkInputFile(config.DefaultConfig(), path)
	if len(results) != 1 || results[0].Status != "warning" {
		t.Errorf("results = %+v, want single warning", results)
	}
}

func TestCheckInputFile_OverCeiling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Limits.MaxFileSize = 4

	results := checkInputFile(cfg, path)
	if len(results) != 1 || results[0].Status != "error" {
		t.Errorf("results = %+v, want single error", results)
	}
}

func TestSampleEntryStarts(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.log")
	if err := os.WriteFile(good, []byte("2024-01-15T10:30:00 INFO a\n  continuation\nERROR b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := sampleEntryStarts(good)
	if result.Status != "ok" {
		t.Errorf("status = %q, want ok (%s)", result.Status, result.Message)
	}

	bad := filepath.Join(dir, "bad.log")
	if err := os.WriteFile(bad, []byte("no markers here\nnothing either\n"), 0644); err != nil {
		t.Fatal(err)
	}
	result = sampleEntryStarts(bad)
	if result.Status != "warning" {
		t.Errorf("status = %q, want warning", result.Status)
	}
}

func TestCheckInputFile_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("2024-01-15T10:30:00 INFO ok\n"), 0644); err != nil {
		t.Fatal(err)
	}

	results := checkInputFile(config.DefaultConfig(), path)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (file check plus sample)", len(results))
	}
	if results[0].Status != "ok" || results[1].Status != "ok" {
		t.Errorf("results = %+v, want both ok", results)
	}
}
