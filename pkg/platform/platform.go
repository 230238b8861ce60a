// Package platform maps the OS and architecture vocabulary of release
// indexes and CI runner labels onto a small common model.
//
// Release indexes describe build files with free-form platform and arch
// strings ("darwin", "win32", "x64-freethreaded", "aarch64"); CI runners are
// identified by labels like "ubuntu-latest" or "macos-13". Both sides
// normalize into the same [OS] and [Arch] enums so compatibility is a plain
// equality check.
package platform

import (
	"regexp"
	"strconv"
	"strings"
)

// OS identifies a runner or build-file operating system.
type OS int

const (
	// OSUnknown is returned for names outside the known vocabulary.
	OSUnknown OS = iota
	// Linux covers the ubuntu-* runner images and "linux" build files.
	Linux
	// Windows covers windows-* runners and "win32"/"win64" build files.
	Windows
	// MacOS covers macos-* runners and "darwin" build files.
	MacOS
)

// String returns the lowercase canonical name.
func (o OS) String() string {
	switch o {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	case MacOS:
		return "macos"
	default:
		return "unknown"
	}
}

// Arch identifies a processor architecture.
type Arch int

const (
	// ArchUnknown is returned for names outside the known vocabulary.
	ArchUnknown Arch = iota
	// X86 is 32-bit x86 ("x86", "i686").
	X86
	// X64 is 64-bit x86 ("x64").
	X64
	// ARM64 is 64-bit ARM ("arm64", "aarch64").
	ARM64
)

// String returns the lowercase canonical name.
func (a Arch) String() string {
	switch a {
	case X86:
		return "x86"
	case X64:
		return "x64"
	case ARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

// FreethreadedSuffix marks free-threaded build files in the CPython
// versions manifest (e.g. arch "x64-freethreaded").
const FreethreadedSuffix = "-freethreaded"

var osNames = map[string]OS{
	"linux":   Linux,
	"windows": Windows,
	"win32":   Windows,
	"win64":   Windows,
	"macos":   MacOS,
	"darwin":  MacOS,
}

var archNames = map[string]Arch{
	"x86":     X86,
	"i686":    X86,
	"x64":     X64,
	"aarch64": ARM64,
	"arm64":   ARM64,
}

// ParseOS maps a build-file platform name onto an OS.
// Unrecognized names return OSUnknown.
func ParseOS(name string) OS {
	return osNames[strings.ToLower(strings.TrimSpace(name))]
}

// ParseArch maps a build-file arch name onto an Arch, ignoring the
// free-threaded suffix. Unrecognized names return ArchUnknown.
func ParseArch(name string) Arch {
	n := strings.ToLower(strings.TrimSpace(name))
	return archNames[strings.TrimSuffix(n, FreethreadedSuffix)]
}

// IsFreethreadedArch reports whether a build-file arch name denotes a
// free-threaded build.
func IsFreethreadedArch(name string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(name)), FreethreadedSuffix)
}

// Runner identifies a CI execution environment by label, with the OS and
// architecture inferred from it.
type Runner struct {
	Name string // the label as given (e.g. "ubuntu-latest")
	OS   OS
	Arch Arch
}

// macosVersionRegex extracts the numeric image version from macos-N labels.
var macosVersionRegex = regexp.MustCompile(`^macos-(\d+)`)

// InferRunner derives OS and architecture from a GitHub-hosted runner label.
//
// OS comes from the label prefix. Architecture rules:
//   - labels containing "arm" or "aarch64" are ARM64
//   - "-large" macOS images are Intel, "-xlarge" are ARM
//   - macos-14 and newer default to ARM64 (Apple silicon images);
//     macos-13 and older are x64
//   - everything else defaults to x64
//
// Labels with an unrecognized OS yield OSUnknown; the platform filter then
// fails closed for them.
func InferRunner(label string) Runner {
	l := strings.ToLower(strings.TrimSpace(label))
	r := Runner{Name: label, Arch: X64}

	switch {
	case strings.HasPrefix(l, "ubuntu") || strings.Contains(l, "linux"):
		r.OS = Linux
	case strings.HasPrefix(l, "windows") || strings.HasPrefix(l, "win"):
		r.OS = Windows
	case strings.HasPrefix(l, "macos") || strings.Contains(l, "darwin"):
		r.OS = MacOS
	}

	switch {
	case strings.Contains(l, "aarch64") || strings.Contains(l, "arm"):
		r.Arch = ARM64
	case r.OS == MacOS:
		if strings.HasSuffix(l, "-xlarge") {
			r.Arch = ARM64
		} else if strings.HasSuffix(l, "-large") {
			r.Arch = X64
		} else if m := macosVersionRegex.FindStringSubmatch(l); m != nil {
			if n, _ := strconv.Atoi(m[1]); n >= 14 {
				r.Arch = ARM64
			}
		} else {
			// macos-latest has been Apple silicon since the macos-14 rollover.
			r.Arch = ARM64
		}
	}

	return r
}

// Known reports whether both OS and architecture could be inferred.
func (r Runner) Known() bool {
	return r.OS != OSUnknown && r.Arch != ArchUnknown
}

// MatchesFile reports whether a build file published for (filePlatform,
// fileArch) runs on this runner. The free-threaded suffix on the arch is
// ignored here; callers filter free-threaded builds separately.
func (r Runner) MatchesFile(filePlatform, fileArch string) bool {
	return ParseOS(filePlatform) == r.OS && ParseArch(fileArch) == r.Arch
}
