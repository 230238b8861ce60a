// Package pyversion parses and compares Python release version identifiers.
//
// The accepted grammar is the subset of PEP 440 that appears in the release
// indexes this project consumes: a dotted numeric triple (micro optional),
// an optional alpha/beta/release-candidate segment, and an optional trailing
// "t" marking a free-threaded build. Free-threaded versions are distinct
// identities: 3.13.0 and 3.13.0t never compare equal.
//
// Versions are immutable once parsed and serialize back to the form they
// were parsed from.
package pyversion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PreTag identifies a pre-release segment. The zero value means the version
// is a final release. Ordering follows PEP 440: alpha < beta < rc < final.
type PreTag int

const (
	// PreNone marks a final release (no pre-release segment).
	PreNone PreTag = iota
	// PreAlpha marks an alpha pre-release (e.g. 3.14.0a4).
	PreAlpha
	// PreBeta marks a beta pre-release (e.g. 3.14.0b2).
	PreBeta
	// PreRC marks a release candidate (e.g. 3.14.0rc1).
	PreRC
)

// String returns the canonical short spelling of the tag.
func (t PreTag) String() string {
	switch t {
	case PreAlpha:
		return "a"
	case PreBeta:
		return "b"
	case PreRC:
		return "rc"
	default:
		return ""
	}
}

// ParseError reports a version string that could not be parsed.
type ParseError struct {
	Input  string // the offending input
	Reason string // what was wrong with it
}

// Error returns the error message naming the offending input.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Version is an immutable, comparable Python version identifier.
// The zero value is not a valid version; construct via [Parse].
type Version struct {
	raw          string
	major        int
	minor        int
	micro        int
	pre          PreTag
	preNum       int
	freethreaded bool
}

// versionRegex matches the version spellings found in the CPython
// versions-manifest and the PyPy version index:
//   - 3.8, 3.9.0, 3.13.2
//   - 3.14.0a4, 3.14.0b2, 3.14.0rc1
//   - dotted/dashed PEP 440 spellings: 3.14.0-rc.2, 3.13.0-alpha.1
//   - free-threaded marker: 3.13.0t, 3.14.0rc2t
//
// Captures: major, minor, micro (optional), pre-release tag (optional),
// pre-release index, free-threaded marker.
var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?(?:[-._]?(a|b|c|rc|alpha|beta)[-._]?(\d+))?(t)?$`)

// preTags maps accepted tag spellings to their canonical PreTag.
var preTags = map[string]PreTag{
	"a":     PreAlpha,
	"alpha": PreAlpha,
	"b":     PreBeta,
	"beta":  PreBeta,
	"c":     PreRC,
	"rc":    PreRC,
}

// Parse converts a version string into a Version.
// It returns a *ParseError on malformed input.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Version{}, &ParseError{Input: s, Reason: "empty string"}
	}

	matches := versionRegex.FindStringSubmatch(strings.ToLower(trimmed))
	if matches == nil {
		return Version{}, &ParseError{Input: s, Reason: "must be MAJOR.MINOR[.MICRO][{a|b|rc}N][t]"}
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	var micro int
	if matches[3] != "" {
		micro, _ = strconv.Atoi(matches[3])
	}

	v := Version{
		raw:          trimmed,
		major:        major,
		minor:        minor,
		micro:        micro,
		freethreaded: matches[6] == "t",
	}
	if matches[4] != "" {
		tag, ok := preTags[matches[4]]
		if !ok {
			return Version{}, &ParseError{Input: s, Reason: fmt.Sprintf("unknown pre-release tag %q", matches[4])}
		}
		v.pre = tag
		v.preNum, _ = strconv.Atoi(matches[5])
	}
	return v, nil
}

// MustParse parses s or panics. Use only for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version in the form it was parsed from.
func (v Version) String() string { return v.raw }

// Major returns the major version number.
func (v Version) Major() int { return v.major }

// Minor returns the minor version number.
func (v Version) Minor() int { return v.minor }

// Micro returns the micro (patch) version number.
func (v Version) Micro() int { return v.micro }

// Pre returns the pre-release tag, or PreNone for final releases.
func (v Version) Pre() PreTag { return v.pre }

// PreIndex returns the numeric index of the pre-release segment (e.g. 2 for
// rc2). It is zero for final releases.
func (v Version) PreIndex() int { return v.preNum }

// IsPrerelease reports whether the version carries a pre-release segment.
func (v Version) IsPrerelease() bool { return v.pre != PreNone }

// Freethreaded reports whether this is a free-threaded build identity.
func (v Version) Freethreaded() bool { return v.freethreaded }

// MinorLine returns the "MAJOR.MINOR" release line, e.g. "3.12".
// Free-threaded and standard builds share a line.
func (v Version) MinorLine() string {
	return fmt.Sprintf("%d.%d", v.major, v.minor)
}

// AsFreethreaded returns the free-threaded counterpart of v.
// The serialized form gains a trailing "t". Calling it on a version that is
// already free-threaded returns v unchanged.
func (v Version) AsFreethreaded() Version {
	if v.freethreaded {
		return v
	}
	ft := v
	ft.freethreaded = true
	ft.raw = v.raw + "t"
	return ft
}

// Compare returns -1 if v < other, 0 if equal, 1 if v > other.
//
// Ordering: numeric triple, then pre-release precedence (final > rc > beta >
// alpha, higher index wins within a tag), then the free-threaded marker.
// A free-threaded build sorts immediately after its standard counterpart so
// both appear adjacent when free-threaded inclusion is enabled.
func (v Version) Compare(other Version) int {
	if v.major != other.major {
		return intCompare(v.major, other.major)
	}
	if v.minor != other.minor {
		return intCompare(v.minor, other.minor)
	}
	if v.micro != other.micro {
		return intCompare(v.micro, other.micro)
	}

	// A final release outranks any pre-release of the same triple.
	if v.pre == PreNone && other.pre != PreNone {
		return 1
	}
	if v.pre != PreNone && other.pre == PreNone {
		return -1
	}
	if v.pre != other.pre {
		return intCompare(int(v.pre), int(other.pre))
	}
	if v.preNum != other.preNum {
		return intCompare(v.preNum, other.preNum)
	}

	// Distinct identities: the free-threaded variant sorts after.
	if v.freethreaded != other.freethreaded {
		if v.freethreaded {
			return 1
		}
		return -1
	}
	return 0
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other denote the same version identity.
// Serialization differences (e.g. "3.14.0rc2" vs "3.14.0-rc.2") do not
// affect equality; the free-threaded marker does.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

func intCompare(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Versions is a sortable slice of Version.
type Versions []Version

func (v Versions) Len() int           { return len(v) }
func (v Versions) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }
func (v Versions) Less(i, j int) bool { return v[i].Less(v[j]) }
