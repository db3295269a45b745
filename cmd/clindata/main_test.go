package main

import (
	"os"
	"testing"
)

func TestGenerateCommandTree(t *testing.T) {
	cmd := generateCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	if !names["base"] {
		t.Error("generate is missing the base subcommand")
	}
	if !names["encounters"] {
		t.Error("generate is missing the encounters subcommand")
	}
}

func TestLoadRunConfig_FlagOverrides(t *testing.T) {
	os.Setenv("AS_OF", "2025-06-01T00:00:00Z")
	defer os.Unsetenv("AS_OF")

	cmd := generateCmd().Commands()[1] // encounters
	if cmd.Name() != "encounters" {
		t.Fatalf("unexpected subcommand order, got %s", cmd.Name())
	}
	if err := cmd.Flags().Set("seed", "99"); err != nil {
		t.Fatalf("set seed: %v", err)
	}
	if err := cmd.Flags().Set("patients", "10"); err != nil {
		t.Fatalf("set patients: %v", err)
	}
	if err := cmd.Flags().Set("workers", "2"); err != nil {
		t.Fatalf("set workers: %v", err)
	}

	run, outDir, err := loadRunConfig(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Seed != 99 {
		t.Errorf("expected seed override 99, got %d", run.Seed)
	}
	if run.Patients != 10 {
		t.Errorf("expected patients override 10, got %d", run.Patients)
	}
	if run.Workers != 2 {
		t.Errorf("expected workers override 2, got %d", run.Workers)
	}
	if outDir == "" {
		t.Error("expected a default output directory")
	}
}

func TestLoadRunConfig_RejectsInvalidOverride(t *testing.T) {
	cmd := generateCmd().Commands()[0] // base
	if err := cmd.Flags().Set("patients", "-5"); err != nil {
		t.Fatalf("set patients: %v", err)
	}
	if _, _, err := loadRunConfig(cmd); err == nil {
		t.Fatal("expected validation error for negative patient count")
	}
}
