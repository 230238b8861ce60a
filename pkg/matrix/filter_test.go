package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matrixforge/pymatrix/pkg/platform"
)

func TestCompatible(t *testing.T) {
	rel := release("3.13.0", false,
		File{Platform: "linux", Arch: "x64"},
		File{Platform: "linux", Arch: "x64-freethreaded"},
		File{Platform: "darwin", Arch: "arm64"},
		File{Platform: "win32", Arch: "x64"},
	)

	ubuntu := platform.InferRunner("ubuntu-latest")
	ubuntuARM := platform.InferRunner("ubuntu-24.04-arm")
	macos := platform.InferRunner("macos-latest")
	windows := platform.InferRunner("windows-latest")

	assert.True(t, Compatible(rel, ubuntu, false))
	assert.True(t, Compatible(rel, macos, false))
	assert.True(t, Compatible(rel, windows, false))
	assert.False(t, Compatible(rel, ubuntuARM, false), "no linux/arm64 file published")

	assert.True(t, Compatible(rel, ubuntu, true), "free-threaded linux/x64 file exists")
	assert.False(t, Compatible(rel, macos, true), "no free-threaded darwin file")
}

func TestCompatible_NoFilesFailsClosed(t *testing.T) {
	rel := release("3.13.0", false)
	ubuntu := platform.InferRunner("ubuntu-latest")

	assert.False(t, Compatible(rel, ubuntu, false))
	assert.False(t, Compatible(rel, ubuntu, true))
}

func TestCompatible_UnknownRunnerFailsClosed(t *testing.T) {
	rel := release("3.13.0", false, linuxX64())
	box := platform.InferRunner("my-custom-box")

	assert.False(t, Compatible(rel, box, false))
}
