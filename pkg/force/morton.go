package force

import "github.com/nbody2d/core/pkg/vec2"

// mortonDomain is the coordinate range mapped onto the 16-bit Morton
// grid before interleaving. Positions outside this range are clamped;
// the key is a cache-locality heuristic, not a spatial index, so
// clamping introduces no correctness issue, only reduced locality for
// extreme outliers.
const mortonDomain = 1 << 15 // +/- 32768 world units

// mortonKey maps a 2D position to a single Z-order interleaved key by
// scaling into [0, 65535] per axis and spreading each coordinate's
// bits so x occupies even bit positions and y occupies odd ones.
func mortonKey(p vec2.Vector2) uint32 {
	x := clampToGrid(p.X)
	y := clampToGrid(p.Y)
	return spreadBits(x) | (spreadBits(y) << 1)
}

func clampToGrid(v float64) uint32 {
	scaled := (v + mortonDomain) / (2 * mortonDomain) * 65535
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 65535 {
		scaled = 65535
	}
	return uint32(scaled)
}

// spreadBits interleaves the low 16 bits of x with zero bits, the
// standard "magic numbers" bit trick for 2D Morton encoding.
func spreadBits(x uint32) uint32 {
	x &= 0x0000ffff
	x = (x | (x << 8)) & 0x00ff00ff
	x = (x | (x << 4)) & 0x0f0f0f0f
	x = (x | (x << 2)) & 0x33333333
	x = (x | (x << 1)) & 0x55555555
	return x
}
