package force

import (
	"math"
	"sort"

	"github.com/nbody2d/core/pkg/bodystore"
	"github.com/nbody2d/core/pkg/nbconfig"
	"github.com/nbody2d/core/pkg/soa"
	"github.com/nbody2d/core/pkg/vec2"
)

// pairAccel returns the acceleration contributed by a source of mass
// mSrc at srcPos on a receiver at dstPos, softened by eps and clamped
// to nbconfig.FMaxDirect. The clamp applies to the direct variants
// only, not the tree traversal; that asymmetry is preserved literally
// rather than guessed at.
func pairAccel(srcPos, dstPos vec2.Vector2, mSrc, g, eps float64) vec2.Vector2 {
	delta := srcPos.Sub(dstPos)
	d2 := delta.LengthSquared()
	if d2 < nbconfig.DegenerateD2 {
		return vec2.Vector2{}
	}
	denom := math.Pow(d2+eps*eps, 1.5)
	mag := g * mSrc / denom
	contrib := delta.Scale(mag)

	if l := contrib.Length(); l > nbconfig.FMaxDirect {
		contrib = contrib.Scale(nbconfig.FMaxDirect / l)
	}
	return contrib
}

// naiveDirect is the textbook O(N^2) all-pairs kernel, operating
// directly on Body pointers (no SoA staging) for the smallest
// populations where the staging cost would dominate.
func naiveDirect(bodies []*bodystore.Body, cfg nbconfig.Config) {
	for _, b := range bodies {
		b.ClearForce()
	}
	for i, bi := range bodies {
		if bi.Fixed {
			continue
		}
		var acc vec2.Vector2
		for j, bj := range bodies {
			if i == j {
				continue
			}
			acc = acc.Add(pairAccel(bj.Position, bi.Position, bj.Mass(), cfg.GravitationalConstant, cfg.SofteningLength))
		}
		bi.Force = acc
	}
}

// blockedDirect tiles the i-loop into blocks of blockSize for cache
// locality, operating on the SoA mirror and writing results back.
func blockedDirect(arrays *soa.Arrays, cfg nbconfig.Config) {
	n := arrays.Len()
	for blockStart := 0; blockStart < n; blockStart += blockSize {
		blockEnd := blockStart + blockSize
		if blockEnd > n {
			blockEnd = n
		}
		for i := blockStart; i < blockEnd; i++ {
			if arrays.Fixed[i] {
				arrays.Forces[i] = vec2.Vector2{}
				continue
			}
			var acc vec2.Vector2
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				acc = acc.Add(pairAccel(arrays.Positions[j], arrays.Positions[i], arrays.Masses[j], cfg.GravitationalConstant, cfg.SofteningLength))
			}
			arrays.Forces[i] = acc
		}
	}
}

// mortonDirect sorts receivers by a Z-order key before running the
// same all-pairs sum, trading a sort for improved locality on the
// source scan; it computes the identical quantity as the other direct
// variants up to float-associativity reordering.
func mortonDirect(arrays *soa.Arrays, cfg nbconfig.Config) {
	n := arrays.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return mortonKey(arrays.Positions[order[a]]) < mortonKey(arrays.Positions[order[b]])
	})

	for _, i := range order {
		if arrays.Fixed[i] {
			arrays.Forces[i] = vec2.Vector2{}
			continue
		}
		var acc vec2.Vector2
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			acc = acc.Add(pairAccel(arrays.Positions[j], arrays.Positions[i], arrays.Masses[j], cfg.GravitationalConstant, cfg.SofteningLength))
		}
		arrays.Forces[i] = acc
	}
}
