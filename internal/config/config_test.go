package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Input.File != "dataset.csv" {
		t.Fatalf("input file default: got=%s", cfg.Input.File)
	}
	if cfg.Output.SQLite != "processed_orders.db" || cfg.Output.Table != "customer_orders" {
		t.Fatalf("output defaults: %+v", cfg.Output)
	}
	if cfg.Cursor.Backend != "pebble" {
		t.Fatalf("cursor backend default: got=%s", cfg.Cursor.Backend)
	}
	if cfg.Manifest.Sink != "file" {
		t.Fatalf("manifest sink default: got=%s", cfg.Manifest.Sink)
	}
}

func TestLoadConfig_DataFileEnv(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	t.Setenv("DATA_FILE", "/tmp/orders.csv")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Input.File != "/tmp/orders.csv" {
		t.Fatalf("DATA_FILE override: got=%s", cfg.Input.File)
	}
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	yaml := "input:\n  file: other.csv\ncursor:\n  backend: badger\n"
	if err := os.WriteFile("config.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Input.File != "other.csv" || cfg.Cursor.Backend != "badger" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
}
