// Package placement positions text labels so they avoid the segments and
// label boxes already drawn in a diagram.
//
// The search is local and greedy. [Walk] steps a candidate from a starting
// position and stops at the first box that collides with nothing, or after a
// fixed budget of steps. Callers build on it with two strategies: tangential
// stepping for vertex and edge labels, and horizontal sliding for labels
// placed above or below a whole shape. Every search terminates within its
// budget; when nothing fits, the least-bad candidate is returned.
package placement

import "github.com/matzehuels/geodraw/pkg/geom"

// Step budgets and step sizes in pixels.
const (
	VertexBudget = 40
	ShapeBudget  = 60
	EdgeBudget   = 30

	TangentialStep = 4.0
	HorizontalStep = 6.0
)

// Probe counts the obstacles a label centred at c would hit.
type Probe func(c geom.Point) int

// Candidate is the outcome of a search.
type Candidate struct {
	Center     geom.Point
	Steps      int
	Collisions int
}

// Fits reports whether the candidate hits nothing.
func (c Candidate) Fits() bool { return c.Collisions == 0 }

// better reports whether a beats b: fewer collisions first, then fewer steps.
// Ties go to b, so the caller passes its preferred candidate second.
func better(a, b Candidate) bool {
	if a.Collisions != b.Collisions {
		return a.Collisions < b.Collisions
	}
	return a.Steps < b.Steps
}

// pick returns the preferred of primary and secondary.
func pick(primary, secondary Candidate) Candidate {
	if better(secondary, primary) {
		return secondary
	}
	return primary
}

// Walk evaluates start, then start+step, start+2·step, ... for at most
// budget steps. It returns the first candidate that fits, or the candidate
// with the fewest collisions (earliest on ties) if none does.
func Walk(start, step geom.Point, budget int, probe Probe) Candidate {
	best := Candidate{Center: start, Collisions: probe(start)}
	for i := 1; i <= budget && !best.Fits(); i++ {
		c := start.Add(step.Scale(float64(i)))
		if n := probe(c); n < best.Collisions {
			best = Candidate{Center: c, Steps: i, Collisions: n}
		}
	}
	return best
}

// Tangential walks from start along +tangent and -tangent in TangentialStep
// increments and returns the cheaper result. +tangent wins ties.
func Tangential(start, tangent geom.Point, budget int, probe Probe) Candidate {
	step := tangent.Unit().Scale(TangentialStep)
	fwd := Walk(start, step, budget, probe)
	if fwd.Fits() && fwd.Steps == 0 {
		return fwd
	}
	back := Walk(start, step.Scale(-1), budget, probe)
	return pick(fwd, back)
}

// Horizontal slides from start to the right and to the left in
// HorizontalStep increments and returns the cheaper result. Right wins ties.
func Horizontal(start geom.Point, budget int, probe Probe) Candidate {
	step := geom.Pt(HorizontalStep, 0)
	right := Walk(start, step, budget, probe)
	if right.Fits() && right.Steps == 0 {
		return right
	}
	left := Walk(start, step.Scale(-1), budget, probe)
	return pick(right, left)
}
