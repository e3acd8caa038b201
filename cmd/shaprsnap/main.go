// Command shaprsnap renders a demo shape scene to a PNG with the CPU
// reference evaluator, and checks fragment shaders without opening a
// window.
//
// Usage:
//
//	shaprsnap -scene composite -t 1.5 -o composite.png
//	shaprsnap -check shaders/fragment.wgsl
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gogpu/shapr/internal/gpu"
)

func main() {
	var (
		output  = flag.String("o", "shapr.png", "output file")
		width   = flag.Int("w", 400, "image width")
		height  = flag.Int("h", 400, "image height")
		scene   = flag.String("scene", "composite", "scene to render: "+strings.Join(sceneNames(), ", "))
		elapsed = flag.Float64("t", 0, "elapsed time in seconds")
		check   = flag.String("check", "", "validate a WGSL fragment shader and exit")
	)
	flag.Parse()

	if *check != "" {
		if err := checkShader(*check); err != nil {
			log.Fatalf("%s: %v", *check, err)
		}
		log.Printf("%s: ok", *check)
		return
	}

	build, ok := scenes[*scene]
	if !ok {
		log.Fatalf("unknown scene %q (have %s)", *scene, strings.Join(sceneNames(), ", "))
	}
	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid size %dx%d", *width, *height)
	}

	t := time.Duration(*elapsed * float64(time.Second))
	img, err := render(build(t), *width, *height)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene %s saved to %s (%dx%d)\n", *scene, *output, *width, *height)
}

func checkShader(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return gpu.CheckFragment(string(src))
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode: %w", err)
	}
	return f.Close()
}

func sceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
