package missionfile

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsbound/rover/internal/sim"
)

func TestDecodeMissionBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
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
	require.NoError(t, v.Err())

	m, err := DecodeMission("demo", v.LookupPath(cue.ParsePath("mission.demo")))
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "5x4", m.Mission.Planet.Size().String())
	assert.True(t, m.Mission.Planet.HasObstacleAt(sim.Position{X: 2, Y: 0}))
	assert.True(t, m.Mission.Planet.HasObstacleAt(sim.Position{X: 0, Y: 3}))
	assert.Equal(t, sim.Position{X: 0, Y: 0}, m.Mission.Rover.Position)
	assert.Equal(t, sim.North, m.Mission.Rover.Direction)
	assert.True(t, m.Scripted)
	assert.Equal(t, []sim.Command{
		sim.CommandMoveForward, sim.CommandMoveForward, sim.CommandTurnRight,
		sim.CommandMoveForward, sim.CommandMoveForward,
	}, m.Commands)
}

func TestDecodeMissionWithoutObstaclesOrCommands(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		mission: bare: {
			planet: size: "3x3"
			rover: {
				position:  "1,1"
				direction: "S"
			}
		}
	`)
	require.NoError(t, v.Err())

	m, err := DecodeMission("bare", v.LookupPath(cue.ParsePath("mission.bare")))
	require.NoError(t, err)

	assert.Zero(t, m.Mission.Planet.ObstacleCount())
	assert.False(t, m.Scripted)
	assert.Nil(t, m.Commands)
}

func TestDecodeMissionMissingField(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		mission: broken: {
			planet: size: "5x4"
			rover: position: "0,0"
		}
	`)
	require.NoError(t, v.Err())

	_, err := DecodeMission("broken", v.LookupPath(cue.ParsePath("mission.broken")))
	require.Error(t, err)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "rover.direction", derr.Field)
	assert.Contains(t, derr.Message, "required")
}

func TestDecodeMissionBadGrammar(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		mission: bad: {
			planet: size: "ax4"
			rover: {
				position:  "0,0"
				direction: "N"
			}
		}
	`)
	require.NoError(t, v.Err())

	_, err := DecodeMission("bad", v.LookupPath(cue.ParsePath("mission.bad")))
	require.Error(t, err)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "planet", derr.Field)
	assert.Contains(t, derr.Message, "InvalidSize")
}

func TestDecodePackCollectsAllErrors(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		mission: {
			good: {
				planet: size: "2x2"
				rover: {
					position:  "0,0"
					direction: "E"
				}
			}
			badSize: {
				planet: size: "0x4"
				rover: {
					position:  "0,0"
					direction: "N"
				}
			}
			badDir: {
				planet: size: "2x2"
				rover: {
					position:  "0,0"
					direction: "Q"
				}
			}
		}
	`)
	require.NoError(t, v.Err())

	pack, errs := DecodePack(v)
	assert.Len(t, errs, 2)
	require.Len(t, pack.Missions, 1)
	assert.Equal(t, "good", pack.Missions[0].Name)
}

func TestDecodePackNoMissions(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`other: 1`)
	require.NoError(t, v.Err())

	_, errs := DecodePack(v)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no missions")
}

func TestLoadPackFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missions.cue")
	src := `
mission: alpha: {
	planet: {
		size:      "4x4"
		obstacles: "1,1"
	}
	rover: {
		position:  "0,0"
		direction: "W"
	}
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	pack, errs := LoadPack(path)
	require.Empty(t, errs)
	require.Len(t, pack.Missions, 1)

	m, ok := pack.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, sim.West, m.Mission.Rover.Direction)
}

func TestLoadPackMissingPath(t *testing.T) {
	_, errs := LoadPack(filepath.Join(t.TempDir(), "nope.cue"))
	require.NotEmpty(t, errs)
}

func TestSourceServesMissionLines(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		mission: demo: {
			planet: {
				size:      "5x4"
				obstacles: "2,0 0,3"
			}
			rover: {
				position:  "2,3"
				direction: "E"
			}
		}
	`)
	require.NoError(t, v.Err())
	m, err := DecodeMission("demo", v.LookupPath(cue.ParsePath("mission.demo")))
	require.NoError(t, err)

	src := NewSource(*m)

	first, second, err := src.Load(src.PlanetRef())
	require.NoError(t, err)
	assert.Equal(t, "5x4", first)
	assert.Equal(t, "0,3 2,0", second)

	first, second, err = src.Load(src.RoverRef())
	require.NoError(t, err)
	assert.Equal(t, "2,3", first)
	assert.Equal(t, "E", second)

	_, _, err = src.Load("bogus")
	assert.Error(t, err)
}
