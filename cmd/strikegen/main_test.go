// Package main provides tests for the StrikeGen CLI.
package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dustinanglin/StrikeGen/internal/cli"
	"github.com/dustinanglin/StrikeGen/internal/cli/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "StrikeGen") {
		t.Errorf("version output should contain 'StrikeGen', got: %s", output)
	}
}

func TestHelpListsCommands(t *testing.T) {
	output, err := runCommand(t, "--help")
	if err != nil {
		t.Errorf("help error = %v", err)
	}
	for _, name := range []string{"new", "list", "show", "export", "rulebook", "doctor"} {
		if !strings.Contains(output, name) {
			t.Errorf("help output should list %q, got: %s", name, output)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCommand(t, "frobnicate")
	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestListAgainstEmptyStore(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "characters.db")
	output, err := runCommand(t, "list", "--store", store, "--homebrew-dir", filepath.Join(dir, "homebrew"), "-o", "json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(output, "[]") {
		t.Errorf("expected empty JSON array, got: %s", output)
	}
}
