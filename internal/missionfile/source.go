package missionfile

import (
	"fmt"
	"strings"
)

// Source serves a decoded mission through the two-line source contract, so
// a CUE mission runs through the exact same load path as text files.
type Source struct {
	mission Mission
}

// NewSource wraps a decoded mission as a two-line source loader.
func NewSource(m Mission) *Source {
	return &Source{mission: m}
}

// PlanetRef is the reference the planet source answers to.
func (s *Source) PlanetRef() string {
	return "mission:" + s.mission.Name + "/planet"
}

// RoverRef is the reference the rover source answers to.
func (s *Source) RoverRef() string {
	return "mission:" + s.mission.Name + "/rover"
}

// Load serves the mission's planet or rover lines in the textual grammar.
func (s *Source) Load(ref string) (string, string, error) {
	switch ref {
	case s.PlanetRef():
		return s.mission.Mission.Planet.Size().String(), s.obstaclesLine(), nil
	case s.RoverRef():
		p := s.mission.Mission.Rover.Position
		return fmt.Sprintf("%d,%d", p.X, p.Y), s.mission.Mission.Rover.Direction.String(), nil
	default:
		return "", "", fmt.Errorf("unknown mission source %q", ref)
	}
}

func (s *Source) obstaclesLine() string {
	obstacles := s.mission.Mission.Planet.Obstacles()
	parts := make([]string, len(obstacles))
	for i, o := range obstacles {
		parts[i] = fmt.Sprintf("%d,%d", o.Position.X, o.Position.Y)
	}
	return strings.Join(parts, " ")
}
