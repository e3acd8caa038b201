package main

import (
	"image"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/shapr/internal/encode"
	"github.com/gogpu/shapr/shp"
)

var (
	orange = [3]float32{1, 0.5, 0}
	teal   = [3]float32{0, 0.6, 0.6}
	violet = [3]float32{0.5, 0.2, 0.9}
)

// scenes maps scene names to shapes as a function of elapsed time.
var scenes = map[string]func(t time.Duration) shp.Shape{
	"nil": func(time.Duration) shp.Shape { return shp.Nil() },
	"square": func(time.Duration) shp.Shape {
		return shp.Square(0.5).Translate(0, 0.5).Fill(orange)
	},
	"composite": composite,
}

// composite is a ring of circles orbiting a spinning bar.
func composite(t time.Duration) shp.Shape {
	secs := float32(t.Seconds())
	var ring []shp.Shape
	const n = 6
	for i := 0; i < n; i++ {
		a := secs + float32(i)*2*math32.Pi/n
		s, c := math32.Sincos(a)
		ring = append(ring, shp.Circle(0.1).Translate(0.6*c, 0.6*s))
	}
	bar := shp.Rect(0.8, 0.15).Rotate(-secs).Fill(orange)
	return shp.Union(
		shp.Union(ring...).Fill(teal),
		bar,
		shp.Square(0.2).Rotate(math32.Pi/4).Fill(violet),
	)
}

// render runs the same encode checks as the GPU path before evaluating the
// shape on the CPU.
func render(s shp.Shape, width, height int) (*image.RGBA, error) {
	floats := s.Flatten()
	if _, err := encode.Pack(floats, 0); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	shp.Rasterize(floats, img)
	return img, nil
}
