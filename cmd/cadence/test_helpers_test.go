package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cadence/internal/config"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	audioPath  string
}

// setupCLITestEnv writes a working configuration under a temp directory with
// a stub fpcalc binary and a throwaway audio file.
func setupCLITestEnv(t *testing.T, acoustidURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.AcoustID.APIKey = "test-app-key"
	cfgVal.AcoustID.UserKey = "test-user-key"
	if acoustidURL != "" {
		cfgVal.AcoustID.BaseURL = acoustidURL
	}
	cfgVal.Fpcalc.Binary = writeStubFpcalc(t, base)
	cfgVal.History.Enabled = true
	cfgVal.History.Path = filepath.Join(base, "state", "history.db")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, &cfgVal)

	audioPath := filepath.Join(base, "01 - thunderstruck.flac")
	if err := os.WriteFile(audioPath, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write audio file: %v", err)
	}

	return &cliTestEnv{
		cfg:        &cfgVal,
		configPath: configPath,
		baseDir:    base,
		audioPath:  audioPath,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeStubFpcalc creates a shell script that emits a fixed fpcalc JSON
// payload regardless of its arguments.
func writeStubFpcalc(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "fpcalc")
	script := "#!/bin/sh\necho '{\"duration\":215.8,\"fingerprint\":\"AQADtest\"}'\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fpcalc stub: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}

	root := newRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}
