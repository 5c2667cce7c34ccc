package autotile

import "github.com/rywk/dualgrid/pkg/terrain"

// Weights of the samples taken past each end of a diagonal.
const (
	diagonalWeight = 2
	cardinalWeight = 1
)

// outward is the one-step direction leaving the cell through a corner.
func (c Corner) outward() (int, int) {
	switch c {
	case TopLeft:
		return -1, -1
	case TopRight:
		return 1, -1
	case BottomLeft:
		return -1, 1
	}
	return 1, 1
}

// diagonals by the two corners they join.
var (
	diagTLBR = [2]Corner{TopLeft, BottomRight}
	diagTRBL = [2]Corner{TopRight, BottomLeft}
)

// mirror reports whether a diagonal pattern should be drawn flipped. The
// sheet's diagonal sprite assumes the secondary terrain runs along the
// diagonal its corners sit on; when the neighborhood says it runs along
// the other one, the sprite is flipped horizontally.
func (r *Resolver) mirror(x, y int, lookup Lookup, natural Pattern, isSecondary func(terrain.Type) bool) bool {
	var def, other [2]Corner
	switch natural {
	case PatternTRBL:
		def, other = diagTRBL, diagTLBR
	case PatternTLBR:
		def, other = diagTLBR, diagTRBL
	default:
		return false
	}
	return r.continuation(x, y, lookup, other, isSecondary) > r.continuation(x, y, lookup, def, isSecondary)
}

// continuation scores how far the secondary terrain extends past both
// ends of a diagonal: the tile diagonally outward from each end, plus the
// two tiles beside it that also touch that end.
func (r *Resolver) continuation(x, y int, lookup Lookup, diag [2]Corner, isSecondary func(terrain.Type) bool) int {
	score := 0
	for _, c := range diag {
		cx, cy := c.offset()
		cx, cy = x+cx, y+cy
		dx, dy := c.outward()
		qx, qy := cx+dx, cy+dy
		if isSecondary(r.sample(lookup, qx, qy)) {
			score += diagonalWeight
		}
		if isSecondary(r.sample(lookup, cx, qy)) {
			score += cardinalWeight
		}
		if isSecondary(r.sample(lookup, qx, cy)) {
			score += cardinalWeight
		}
	}
	return score
}
