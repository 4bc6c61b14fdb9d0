package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidTextSources(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "5x4\n2,0 0,3\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "valid")
}

func TestValidateBadPlanetSize(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "ax4\n\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "INVALID_PLANET")
}

func TestValidateBadRoverDirectionJSON(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "5x4\n\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nQ\n")

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), `"valid":false`)
	assert.Contains(t, out.String(), "INVALID_ROVER")
	assert.Contains(t, out.String(), "InvalidDirection")
}

func TestValidateMissionPack(t *testing.T) {
	dir := t.TempDir()
	pack := writeSource(t, dir, "missions.cue", `
mission: demo: {
	planet: size: "3x3"
	rover: {
		position:  "1,1"
		direction: "W"
	}
}
`)

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mission", pack})

	require.NoError(t, cmd.Execute())
}

func TestValidateBrokenMissionPack(t *testing.T) {
	dir := t.TempDir()
	pack := writeSource(t, dir, "missions.cue", `
mission: bad: {
	planet: size: "0x0"
	rover: {
		position:  "0,0"
		direction: "N"
	}
}
`)

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mission", pack})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out.String(), "DECODE")
}

func TestValidateMissingFlags(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
