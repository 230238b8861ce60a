package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pymatrix.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func nothingChanged(string) bool { return false }

func TestApplyConfig(t *testing.T) {
	path := writeConfig(t, `
runners = ["ubuntu-latest", "macos-14"]
min-version = "3.10"
max-version = "3.12"
pre-releases = true
freethreaded = true
implementations = ["cpython", "pypy"]
check-platform = false
timeout = "10s"
`)

	opts := resolveOpts{configPath: path, minVersion: "auto", maxVersion: "auto", checkPlatform: true}
	if err := opts.applyConfig(nothingChanged); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}

	if len(opts.runners) != 2 || opts.runners[0] != "ubuntu-latest" {
		t.Errorf("runners = %v", opts.runners)
	}
	if opts.minVersion != "3.10" || opts.maxVersion != "3.12" {
		t.Errorf("bounds = %s..%s", opts.minVersion, opts.maxVersion)
	}
	if !opts.prereleases || !opts.freethreaded {
		t.Error("boolean options not applied")
	}
	if opts.checkPlatform {
		t.Error("check-platform = false not applied")
	}
	if len(opts.implementations) != 2 {
		t.Errorf("implementations = %v", opts.implementations)
	}
	if opts.timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", opts.timeout)
	}
}

func TestApplyConfigFlagsWin(t *testing.T) {
	path := writeConfig(t, `
runners = ["ubuntu-latest"]
min-version = "3.10"
check-platform = false
`)

	opts := resolveOpts{
		configPath:    path,
		runners:       []string{"windows-latest"},
		minVersion:    "3.11",
		checkPlatform: true,
	}
	changed := func(name string) bool {
		return name == "runner" || name == "min" || name == "check-platform"
	}
	if err := opts.applyConfig(changed); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}

	if opts.runners[0] != "windows-latest" {
		t.Errorf("config overrode explicit --runner: %v", opts.runners)
	}
	if opts.minVersion != "3.11" {
		t.Errorf("config overrode explicit --min: %s", opts.minVersion)
	}
	if !opts.checkPlatform {
		t.Error("config overrode explicit --check-platform")
	}
}

func TestApplyConfigNoPath(t *testing.T) {
	opts := resolveOpts{minVersion: "auto"}
	if err := opts.applyConfig(nothingChanged); err != nil {
		t.Fatalf("applyConfig without a path must be a no-op, got %v", err)
	}
	if opts.minVersion != "auto" {
		t.Errorf("minVersion mutated to %s", opts.minVersion)
	}
}

func TestApplyConfigBadTimeout(t *testing.T) {
	path := writeConfig(t, `timeout = "not-a-duration"`)

	opts := resolveOpts{configPath: path}
	if err := opts.applyConfig(nothingChanged); err == nil {
		t.Fatal("expected error for malformed timeout")
	}
}

func TestApplyConfigMissingFile(t *testing.T) {
	opts := resolveOpts{configPath: filepath.Join(t.TempDir(), "absent.toml")}
	if err := opts.applyConfig(nothingChanged); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
