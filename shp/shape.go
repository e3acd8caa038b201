// Package shp describes immutable 2D shapes and flattens them into the float
// encoding read by the shapr fragment shader.
//
// Shapes are built from primitives (Circle, Square, Rect) and combined with
// transforms, fills and unions. Every combinator returns a new Shape; the
// receiver is never modified, so a Shape can be kept in application state and
// reused across frames.
//
//	s := shp.Square(0.5).Translate(0.2, 0.1).Fill([3]float32{1, 0.5, 0})
//	enc := s.Flatten() // len(enc)%3 == 0
//
// Coordinates are normalized device coordinates: the window spans [-1, 1] on
// both axes with +Y pointing up.
package shp

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Kind identifies a primitive in the encoding.
type Kind uint8

// Primitive kinds. The numeric values are part of the encoding.
const (
	KindEnd Kind = iota
	KindCircle
	KindSquare
	KindRect
)

// String returns the primitive name.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindCircle:
		return "circle"
	case KindSquare:
		return "square"
	case KindRect:
		return "rect"
	default:
		return "unknown"
	}
}

// White is the colour of primitives that were never filled.
var White = [3]float32{1, 1, 1}

// identity is the identity affine transform.
var identity = f32.Aff3{1, 0, 0, 0, 1, 0}

// prim is one primitive with its accumulated local-to-world transform.
type prim struct {
	kind   Kind
	p1, p2 float32
	xf     f32.Aff3
	fill   [3]float32
	filled bool
}

// Shape is an immutable composition of primitives. The zero value is the
// empty shape.
type Shape struct {
	prims []prim
}

// Nil returns the empty shape. It flattens to an empty encoding.
func Nil() Shape { return Shape{} }

// Circle returns a circle of radius r centred on the origin.
func Circle(r float32) Shape {
	return single(prim{kind: KindCircle, p1: r})
}

// Square returns an axis-aligned square with the given side length centred
// on the origin.
func Square(side float32) Shape {
	return single(prim{kind: KindSquare, p1: side / 2})
}

// Rect returns an axis-aligned w by h rectangle centred on the origin.
func Rect(w, h float32) Shape {
	return single(prim{kind: KindRect, p1: w / 2, p2: h / 2})
}

func single(p prim) Shape {
	p.xf = identity
	return Shape{prims: []prim{p}}
}

// Union combines shapes. Later shapes are painted over earlier ones.
func Union(shapes ...Shape) Shape {
	n := 0
	for _, s := range shapes {
		n += len(s.prims)
	}
	if n == 0 {
		return Shape{}
	}
	out := make([]prim, 0, n)
	for _, s := range shapes {
		out = append(out, s.prims...)
	}
	return Shape{prims: out}
}

// Add returns the union of s and o, with o painted over s.
func (s Shape) Add(o Shape) Shape { return Union(s, o) }

// Len returns the number of primitives in s.
func (s Shape) Len() int { return len(s.prims) }

// IsNil reports whether s contains no primitives.
func (s Shape) IsNil() bool { return len(s.prims) == 0 }

// Translate moves s by (x, y).
func (s Shape) Translate(x, y float32) Shape {
	return s.transform(f32.Aff3{1, 0, x, 0, 1, y})
}

// Trans moves s by v.
func (s Shape) Trans(v f32.Vec2) Shape { return s.Translate(v[0], v[1]) }

// Scale scales s uniformly about the origin.
func (s Shape) Scale(k float32) Shape {
	return s.transform(f32.Aff3{k, 0, 0, 0, k, 0})
}

// Rotate rotates s counter-clockwise about the origin by rad radians.
func (s Shape) Rotate(rad float32) Shape {
	sin, cos := math32.Sincos(rad)
	return s.transform(f32.Aff3{cos, -sin, 0, sin, cos, 0})
}

// Fill colours every primitive of s that has no fill yet. Fills applied
// closer to a primitive win over fills applied to an enclosing shape.
func (s Shape) Fill(rgb [3]float32) Shape {
	out := s.clone()
	for i := range out.prims {
		if !out.prims[i].filled {
			out.prims[i].fill = rgb
			out.prims[i].filled = true
		}
	}
	return out
}

// transform applies m after the existing transforms of every primitive.
func (s Shape) transform(m f32.Aff3) Shape {
	out := s.clone()
	for i := range out.prims {
		out.prims[i].xf = mul(m, out.prims[i].xf)
	}
	return out
}

func (s Shape) clone() Shape {
	if len(s.prims) == 0 {
		return Shape{}
	}
	return Shape{prims: append([]prim(nil), s.prims...)}
}

// mul returns a*b, the transform that applies b first and then a.
func mul(a, b f32.Aff3) f32.Aff3 {
	return f32.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// invert returns the inverse of m. ok is false when m is singular.
func invert(m f32.Aff3) (inv f32.Aff3, ok bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return f32.Aff3{}, false
	}
	id := 1 / det
	return f32.Aff3{
		m[4] * id,
		-m[1] * id,
		(m[1]*m[5] - m[2]*m[4]) * id,
		-m[3] * id,
		m[0] * id,
		(m[2]*m[3] - m[0]*m[5]) * id,
	}, true
}
