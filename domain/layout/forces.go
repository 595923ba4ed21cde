package layout

import "math"

// applyLinkForce pulls each spring's endpoints toward the rest distance.
// The correction is split evenly between the two endpoints.
func applyLinkForce(sim []*simNode, springs []spring, p Params, alpha float64) {
	for i, spr := range springs {
		s, t := sim[spr.source], sim[spr.target]

		dx := t.x + t.vx - s.x - s.vx
		dy := t.y + t.vy - s.y - s.vy
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dx, dy = jiggle(i), jiggle(i+1)
			dist = math.Hypot(dx, dy)
		}

		correction := (dist - p.LinkDistance) / dist * alpha * p.LinkStrength
		dx *= correction
		dy *= correction

		t.vx -= dx * 0.5
		t.vy -= dy * 0.5
		s.vx += dx * 0.5
		s.vy += dy * 0.5
	}
}

// distanceMin2 floors the squared distance in the charge force so nearly
// coincident nodes do not produce unbounded repulsion.
const distanceMin2 = 1.0

// applyChargeForce applies the uniform many-body charge pairwise. This is
// the O(n²) formulation; graphs at panel scale stay far below the size
// where a Barnes-Hut approximation would pay off.
func applyChargeForce(sim []*simNode, p Params, alpha float64) {
	for i := 0; i < len(sim); i++ {
		for j := i + 1; j < len(sim); j++ {
			a, b := sim[i], sim[j]

			dx := a.x - b.x
			dy := a.y - b.y
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				dx, dy = jiggle(i), jiggle(j)
				d2 = dx*dx + dy*dy
			}
			if d2 < distanceMin2 {
				d2 = distanceMin2
			}

			w := p.ChargeStrength * alpha / d2
			a.vx -= dx * w
			a.vy -= dy * w
			b.vx += dx * w
			b.vy += dy * w
		}
	}
}

// applyCenterForce translates the whole layout so its centroid sits at
// the origin. Operates on positions directly, once per tick.
func applyCenterForce(sim []*simNode) {
	var cx, cy float64
	for _, s := range sim {
		cx += s.x
		cy += s.y
	}
	cx /= float64(len(sim))
	cy /= float64(len(sim))
	for _, s := range sim {
		s.x -= cx
		s.y -= cy
	}
}

// applyCollisionForce separates any pair of nodes closer than twice the
// collision radius, splitting the overlap between them. Position-based so
// the constraint holds even for heavily linked pairs.
func applyCollisionForce(sim []*simNode, p Params) {
	minDist := 2 * p.CollisionRadius
	if minDist <= 0 {
		return
	}
	for i := 0; i < len(sim); i++ {
		for j := i + 1; j < len(sim); j++ {
			a, b := sim[i], sim[j]

			dx := a.x - b.x
			dy := a.y - b.y
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dx, dy = jiggle(i), jiggle(j)
				dist = math.Hypot(dx, dy)
			}

			overlap := (minDist - dist) / dist * 0.5
			a.x += dx * overlap
			a.y += dy * overlap
			b.x -= dx * overlap
			b.y -= dy * overlap
		}
	}
}
