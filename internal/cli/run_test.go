package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsbound/rover/internal/store"
	"github.com/marsbound/rover/internal/trace"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCompletedMission(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "5x4\n2,0 0,3\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader("FFRFF\n"))
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Waiting commands... ")
	assert.Contains(t, out.String(), "2:2:E")
}

func TestRunObstacleHit(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "5x4\n0,1\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("F\n"))
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	// An obstacle hit is a reported outcome, not a failure.
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "O:0:0:N")
}

func TestRunMalformedPlanetFails(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "ax4\n\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errOut.String(), "INVALID_PLANET")
	assert.Contains(t, errOut.String(), "InvalidSize")
}

func TestRunMissingSourceFlags(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--planet", "only-planet.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunMissionPackScripted(t *testing.T) {
	dir := t.TempDir()
	pack := writeSource(t, dir, "missions.cue", `
mission: demo: {
	planet: {
		size:      "5x4"
		obstacles: "2,0 0,3"
	}
	rover: {
		position:  "0,0"
		direction: "N"
	}
	commands: "FFRFF"
}
`)

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mission", pack})

	// Scripted missions never touch stdin.
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2:2:E")
}

func TestRunMissionPackUnknownName(t *testing.T) {
	dir := t.TempDir()
	pack := writeSource(t, dir, "missions.cue", `
mission: demo: {
	planet: size: "2x2"
	rover: {
		position:  "0,0"
		direction: "N"
	}
	commands: "F"
}
`)

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--mission", pack, "--name", "nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestRunJSONFormatEmbedsReports(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "5x4\n\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("FF\n"))
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"status":"ok"`)
	assert.Contains(t, out.String(), `"outcome":"completed"`)
	assert.Contains(t, out.String(), "0:2:N")
}

func TestRunJournalsToDatabase(t *testing.T) {
	dir := t.TempDir()
	planet := writeSource(t, dir, "planet.txt", "5x4\n\n")
	rover := writeSource(t, dir, "rover.txt", "0,0\nN\n")
	dbPath := filepath.Join(dir, "runs.db")

	out := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("F\n"))
	cmd.SetArgs([]string{"--planet", planet, "--rover", rover, "--db", dbPath})

	require.NoError(t, cmd.Execute())

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, trace.OutcomeCompleted, runs[0].Outcome)
	assert.Equal(t, planet, runs[0].PlanetRef)

	steps, err := st.ReadSteps(context.Background(), runs[0].Token)
	require.NoError(t, err)
	assert.Len(t, steps, 2)
}
