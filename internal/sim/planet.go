package sim

import "sort"

// Obstacle marks a position that blocks entry.
type Obstacle struct {
	Position Position
}

// Planet is a toroidal grid with a fixed set of obstacles.
//
// A Planet is immutable once constructed. The obstacle set is copied by
// NewPlanet and never written afterwards, so Planet values may be shared
// freely across mission snapshots.
type Planet struct {
	size      Size
	obstacles map[Position]struct{}
}

// NewPlanet builds a planet from a size and a list of obstacles.
// Duplicate obstacles collapse to one; set semantics are all the engine needs
// for containment checks.
func NewPlanet(size Size, obstacles []Obstacle) Planet {
	set := make(map[Position]struct{}, len(obstacles))
	for _, o := range obstacles {
		set[o.Position] = struct{}{}
	}
	return Planet{size: size, obstacles: set}
}

// Size returns the planet's grid extent.
func (p Planet) Size() Size {
	return p.size
}

// HasObstacleAt reports whether pos is blocked.
func (p Planet) HasObstacleAt(pos Position) bool {
	_, ok := p.obstacles[pos]
	return ok
}

// ObstacleCount returns the number of distinct obstacles.
// Used for diagnostics and validation output.
func (p Planet) ObstacleCount() int {
	return len(p.obstacles)
}

// Obstacles returns the obstacle set in deterministic order (by X, then Y).
// The order matters for journaling and golden traces: serializing the same
// planet twice must produce identical output.
func (p Planet) Obstacles() []Obstacle {
	out := make([]Obstacle, 0, len(p.obstacles))
	for pos := range p.obstacles {
		out = append(out, Obstacle{Position: pos})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return out
}
