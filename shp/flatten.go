package shp

// RecordFloats is the number of floats emitted per primitive: four RGB
// triples.
//
//	texel 0: kind, p1, p2
//	texel 1: inverse transform row 0 (a, b, c)
//	texel 2: inverse transform row 1 (d, e, f)
//	texel 3: fill r, g, b
//
// The inverse transform maps a point in window coordinates into the
// primitive's local frame: local = (a*x + b*y + c, d*x + e*y + f).
const RecordFloats = 12

// RecordTexels is the number of RGB texels per primitive.
const RecordTexels = RecordFloats / 3

// Flatten encodes s as a flat float sequence. The result length is always a
// multiple of 3 and is empty for the nil shape. Primitives collapsed by a
// zero scale are dropped.
func (s Shape) Flatten() []float32 {
	if len(s.prims) == 0 {
		return []float32{}
	}
	out := make([]float32, 0, len(s.prims)*RecordFloats)
	for _, p := range s.prims {
		inv, ok := invert(p.xf)
		if !ok {
			continue
		}
		fill := White
		if p.filled {
			fill = p.fill
		}
		out = append(out,
			float32(p.kind), p.p1, p.p2,
			inv[0], inv[1], inv[2],
			inv[3], inv[4], inv[5],
			fill[0], fill[1], fill[2],
		)
	}
	return out
}
