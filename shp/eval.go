package shp

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Background is the colour behind all shapes.
var Background = [3]float32{0, 0, 0}

// Eval computes the colour at window point p for an encoding produced by
// Flatten. aa is the anti-aliasing width in window units, usually the size
// of one pixel. It is the CPU counterpart of the fragment shader and follows
// the same rules: records are painted in order, decoding stops at KindEnd or
// at the end of enc, and unknown kinds are skipped.
func Eval(enc []float32, p f32.Vec2, aa float32) [3]float32 {
	c := Background
	for i := 0; i+RecordFloats <= len(enc); i += RecordFloats {
		r := enc[i : i+RecordFloats]
		k := Kind(r[0])
		if k == KindEnd {
			break
		}
		lx := r[3]*p[0] + r[4]*p[1] + r[5]
		ly := r[6]*p[0] + r[7]*p[1] + r[8]
		d, ok := distance(k, r[1], r[2], lx, ly)
		if !ok {
			continue
		}
		// Local distances are rescaled to window units by the transform's
		// area factor.
		det := math32.Abs(r[3]*r[7] - r[4]*r[6])
		if det > 0 {
			d /= math32.Sqrt(det)
		}
		cov := coverage(d, aa)
		for j := range c {
			c[j] += (r[9+j] - c[j]) * cov
		}
	}
	return c
}

// Rasterize renders enc into dst. Pixel centres are mapped onto [-1, 1]
// with +Y up, matching the full-screen quad drawn on the GPU.
func Rasterize(enc []float32, dst *image.RGBA) {
	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	if w == 0 || h == 0 {
		return
	}
	aa := math32.Max(2/w, 2/h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		ny := 1 - (float32(y-b.Min.Y)+0.5)/h*2
		for x := b.Min.X; x < b.Max.X; x++ {
			nx := (float32(x-b.Min.X)+0.5)/w*2 - 1
			c := Eval(enc, f32.Vec2{nx, ny}, aa)
			dst.SetRGBA(x, y, color.RGBA{
				R: toByte(c[0]),
				G: toByte(c[1]),
				B: toByte(c[2]),
				A: 0xff,
			})
		}
	}
}

// distance returns the signed distance from (x, y) to a primitive in its
// local frame. Negative inside.
func distance(k Kind, p1, p2, x, y float32) (float32, bool) {
	switch k {
	case KindCircle:
		return math32.Hypot(x, y) - p1, true
	case KindSquare:
		return box(x, y, p1, p1), true
	case KindRect:
		return box(x, y, p1, p2), true
	default:
		return 0, false
	}
}

func box(x, y, hx, hy float32) float32 {
	qx := math32.Abs(x) - hx
	qy := math32.Abs(y) - hy
	outside := math32.Hypot(math32.Max(qx, 0), math32.Max(qy, 0))
	inside := math32.Min(math32.Max(qx, qy), 0)
	return outside + inside
}

func coverage(d, aa float32) float32 {
	if aa <= 0 {
		if d <= 0 {
			return 1
		}
		return 0
	}
	return clamp01(0.5 - d/aa)
}

func clamp01(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}

func toByte(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
