package shell

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsbound/rover/internal/core"
	"github.com/marsbound/rover/internal/runtime"
	"github.com/marsbound/rover/internal/sim"
	"github.com/marsbound/rover/internal/testutil"
	"github.com/marsbound/rover/internal/trace"
)

type missionFixture struct {
	sink     *testutil.CaptureSink
	recorder *testutil.MemoryRecorder
	config   MissionConfig
}

func newMissionFixture(t *testing.T, loader SourceLoader, commandLine string) *missionFixture {
	t.Helper()
	sink := &testutil.CaptureSink{}
	recorder := testutil.NewMemoryRecorder()
	return &missionFixture{
		sink:     sink,
		recorder: recorder,
		config: MissionConfig{
			PlanetRef:   "planet.txt",
			RoverRef:    "rover.txt",
			Interpreter: newTestInterpreter(loader, testutil.NewScriptConsole(commandLine), sink),
			Recorder:    recorder,
			Tokens:      runtime.NewFixedGenerator("run-test"),
			Logger:      quietLogger(),
		},
	}
}

func plainLoader(sizeLine, obstaclesLine, posLine, dirLine string) testutil.MapLoader {
	return testutil.MapLoader{Sources: map[string]testutil.TwoLines{
		"planet.txt": {First: sizeLine, Second: obstaclesLine},
		"rover.txt":  {First: posLine, Second: dirLine},
	}}
}

func TestRunMission_CompletedSequence(t *testing.T) {
	// 5x4 planet, no obstacles, rover (0,0) N, commands FFRFF: ends 2:2:E.
	f := newMissionFixture(t, plainLoader("5x4", "", "0,0", "N"), "FFRFF")

	result, err := RunMission(context.Background(), f.config)

	require.NoError(t, err)
	assert.Equal(t, "run-test", result.RunToken)
	assert.Equal(t, trace.OutcomeCompleted, result.Outcome)
	assert.Equal(t, core.StateReady, result.FinalState.Kind)
	assert.Equal(t, sim.Position{X: 2, Y: 2}, result.FinalState.Mission.Rover.Position)
	assert.Equal(t, sim.East, result.FinalState.Mission.Rover.Direction)
	assert.Equal(t, []string{"2:2:E"}, f.sink.InfoLines)
	assert.Empty(t, f.sink.ErrLines)
}

func TestRunMission_ObstacleHit(t *testing.T) {
	// Obstacle at (0,1), F from (0,0) N: no movement, distinct report prefix.
	f := newMissionFixture(t, plainLoader("5x4", "0,1", "0,0", "N"), "F")

	result, err := RunMission(context.Background(), f.config)

	require.NoError(t, err)
	assert.Equal(t, trace.OutcomeObstacleHit, result.Outcome)
	assert.Equal(t, sim.Position{X: 0, Y: 0}, result.FinalState.Mission.Rover.Position)
	assert.Equal(t, []string{"O:0:0:N"}, f.sink.InfoLines)
}

func TestRunMission_DegenerateGrid(t *testing.T) {
	// 1x1 planet: F wraps onto the start cell and the batch completes.
	f := newMissionFixture(t, plainLoader("1x1", "", "0,0", "N"), "F")

	result, err := RunMission(context.Background(), f.config)

	require.NoError(t, err)
	assert.Equal(t, trace.OutcomeCompleted, result.Outcome)
	assert.Equal(t, []string{"0:0:N"}, f.sink.InfoLines)
}

func TestRunMission_LoadFailure(t *testing.T) {
	// Malformed planet size: exactly one error report, outcome error.
	f := newMissionFixture(t, plainLoader("ax4", "", "0,0", "N"), "F")

	result, err := RunMission(context.Background(), f.config)

	require.NoError(t, err, "a failed load ends the run cleanly via Ko")
	assert.Equal(t, trace.OutcomeError, result.Outcome)
	assert.Equal(t, core.StateFailed, result.FinalState.Kind)
	assert.Empty(t, f.sink.InfoLines)
	require.Len(t, f.sink.ErrLines, 1)
	assert.Contains(t, f.sink.ErrLines[0], "INVALID_PLANET")
	assert.Contains(t, f.sink.ErrLines[0], `raw="ax4"`)
	assert.Contains(t, f.sink.ErrLines[0], "reason=InvalidSize")
}

func TestRunMission_JournalsEveryTransition(t *testing.T) {
	f := newMissionFixture(t, plainLoader("5x4", "", "0,0", "N"), "FFRFF")

	_, err := RunMission(context.Background(), f.config)
	require.NoError(t, err)

	require.Len(t, f.recorder.Runs, 1)
	run := f.recorder.Runs[0]
	assert.Equal(t, "run-test", run.Token)
	assert.Equal(t, "planet.txt", run.PlanetRef)
	assert.Equal(t, "rover.txt", run.RoverRef)
	assert.Equal(t, trace.OutcomeCompleted, f.recorder.Outcomes["run-test"])

	// Two transitions: load -> ask, commands -> report.
	require.Len(t, f.recorder.Steps, 2)
	assert.Equal(t, int64(1), f.recorder.Steps[0].Seq)
	assert.Equal(t, "LoadMissionSuccessful", f.recorder.Steps[0].Event.Kind)
	assert.Equal(t, "Ready", f.recorder.Steps[0].State)
	assert.Equal(t, "AskCommands", f.recorder.Steps[0].Effect.Kind)

	assert.Equal(t, int64(2), f.recorder.Steps[1].Seq)
	assert.Equal(t, "CommandsReceived", f.recorder.Steps[1].Event.Kind)
	assert.Equal(t, "FFRFF", f.recorder.Steps[1].Event.Fields["commands"])
	assert.Equal(t, "ReportCommandSequenceCompleted", f.recorder.Steps[1].Effect.Kind)
	assert.Equal(t, "2,2", f.recorder.Steps[1].Effect.Fields["position"])
}

func TestFileLoader_ReadsTwoLines(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/planet.txt"
	require.NoError(t, writeFile(path, "5x4\n2,0 0,3\n"))

	first, second, err := FileLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "5x4", first)
	assert.Equal(t, "2,0 0,3", second)
}

func TestFileLoader_SingleLineFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/planet.txt"
	require.NoError(t, writeFile(path, "5x4"))

	first, second, err := FileLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "5x4", first)
	assert.Equal(t, "", second)
}

func TestFileLoader_Missing(t *testing.T) {
	_, _, err := FileLoader{}.Load(t.TempDir() + "/absent.txt")
	require.Error(t, err)
}

func TestFileLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/empty.txt"
	require.NoError(t, writeFile(path, ""))

	_, _, err := FileLoader{}.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected two lines")
}

func TestConsoleReader_PromptAndRead(t *testing.T) {
	var prompts strings.Builder
	r := NewConsoleReader(strings.NewReader("FFRFF\nLL\n"), &prompts)

	line, err := r.PromptAndRead("> ")
	require.NoError(t, err)
	assert.Equal(t, "FFRFF", line)

	line, err = r.PromptAndRead("> ")
	require.NoError(t, err)
	assert.Equal(t, "LL", line)
	assert.Equal(t, "> > ", prompts.String())
}

func TestConsoleReader_TrailingLineWithoutNewline(t *testing.T) {
	r := NewConsoleReader(strings.NewReader("FF"), io.Discard)

	line, err := r.PromptAndRead("> ")
	require.NoError(t, err)
	assert.Equal(t, "FF", line)
}

func TestConsoleReader_EOF(t *testing.T) {
	r := NewConsoleReader(strings.NewReader(""), io.Discard)

	_, err := r.PromptAndRead("> ")
	require.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
