package platform

import "testing"

func TestParseOS(t *testing.T) {
	tests := []struct {
		name string
		want OS
	}{
		{"linux", Linux},
		{"win32", Windows},
		{"win64", Windows},
		{"windows", Windows},
		{"darwin", MacOS},
		{"macos", MacOS},
		{"LINUX", Linux},
		{"solaris", OSUnknown},
		{"", OSUnknown},
	}

	for _, tt := range tests {
		if got := ParseOS(tt.name); got != tt.want {
			t.Errorf("ParseOS(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseArch(t *testing.T) {
	tests := []struct {
		name string
		want Arch
	}{
		{"x64", X64},
		{"x86", X86},
		{"i686", X86},
		{"arm64", ARM64},
		{"aarch64", ARM64},
		{"x64-freethreaded", X64},
		{"arm64-freethreaded", ARM64},
		{"sparc", ArchUnknown},
	}

	for _, tt := range tests {
		if got := ParseArch(tt.name); got != tt.want {
			t.Errorf("ParseArch(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsFreethreadedArch(t *testing.T) {
	if !IsFreethreadedArch("x64-freethreaded") {
		t.Error("expected x64-freethreaded to be free-threaded")
	}
	if IsFreethreadedArch("x64") {
		t.Error("x64 is not free-threaded")
	}
}

func TestInferRunner(t *testing.T) {
	tests := []struct {
		label string
		os    OS
		arch  Arch
	}{
		{"ubuntu-latest", Linux, X64},
		{"ubuntu-24.04", Linux, X64},
		{"ubuntu-24.04-arm", Linux, ARM64},
		{"windows-latest", Windows, X64},
		{"windows-11-arm", Windows, ARM64},
		{"macos-latest", MacOS, ARM64},
		{"macos-15", MacOS, ARM64},
		{"macos-14", MacOS, ARM64},
		{"macos-13", MacOS, X64},
		{"macos-13-xlarge", MacOS, ARM64},
		{"macos-15-large", MacOS, X64},
		{"self-hosted-thing", OSUnknown, X64},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			r := InferRunner(tt.label)
			if r.OS != tt.os || r.Arch != tt.arch {
				t.Errorf("InferRunner(%q) = (%v, %v), want (%v, %v)",
					tt.label, r.OS, r.Arch, tt.os, tt.arch)
			}
			if r.Name != tt.label {
				t.Errorf("Name = %q, want %q", r.Name, tt.label)
			}
		})
	}
}

func TestRunnerMatchesFile(t *testing.T) {
	linux := InferRunner("ubuntu-latest")

	if !linux.MatchesFile("linux", "x64") {
		t.Error("expected linux/x64 file to match ubuntu-latest")
	}
	if !linux.MatchesFile("linux", "x64-freethreaded") {
		t.Error("free-threaded suffix must not affect arch matching")
	}
	if linux.MatchesFile("darwin", "x64") {
		t.Error("darwin file must not match a linux runner")
	}
	if linux.MatchesFile("linux", "arm64") {
		t.Error("arm64 file must not match an x64 runner")
	}
}

func TestRunnerKnown(t *testing.T) {
	if !InferRunner("ubuntu-latest").Known() {
		t.Error("ubuntu-latest should be fully inferred")
	}
	if InferRunner("my-custom-box").Known() {
		t.Error("unknown label should not be fully inferred")
	}
}
