package capture

import (
	"fmt"
	"image/color"
	"math"
	"runtime"
	"sync"
)

// Buffers smaller than this are composited on the calling goroutine.
const parallelCompositeMin = 256 * 256

// CompositePixel blends one RGBA8 pixel over an opaque background. Fully
// transparent pixels yield the background, fully opaque ones the source.
func CompositePixel(r, g, b, a uint8, bg color.RGBA) (uint8, uint8, uint8) {
	switch a {
	case 0:
		return bg.R, bg.G, bg.B
	case 255:
		return r, g, b
	}
	alpha := float64(a) / 255
	blend := func(c, bc uint8) uint8 {
		return uint8(math.Round(float64(c)*alpha + float64(bc)*(1-alpha)))
	}
	return blend(r, bg.R), blend(g, bg.G), blend(b, bg.B)
}

// Composite flattens an interleaved RGBA8 buffer onto bg and returns an
// interleaved RGB8 buffer of width*height*3 bytes. Each output pixel depends
// only on its own input pixel, so rows are split across goroutines for large
// buffers.
func Composite(src []byte, width, height int, bg color.RGBA) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("composite: invalid size %dx%d", width, height)
	}
	n := width * height
	if len(src) < n*4 {
		return nil, fmt.Errorf("composite: buffer has %d bytes, need %d", len(src), n*4)
	}
	dst := make([]byte, n*3)
	workers := runtime.GOMAXPROCS(0)
	if n < parallelCompositeMin || workers < 2 || height < 2 {
		compositeRows(src, dst, width, 0, height, bg)
		return dst, nil
	}
	if workers > height {
		workers = height
	}
	band := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += band {
		y1 := min(y0+band, height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			compositeRows(src, dst, width, y0, y1, bg)
		}(y0, y1)
	}
	wg.Wait()
	return dst, nil
}

func compositeRows(src, dst []byte, width, y0, y1 int, bg color.RGBA) {
	for i := y0 * width; i < y1*width; i++ {
		s := src[i*4 : i*4+4 : i*4+4]
		d := dst[i*3 : i*3+3 : i*3+3]
		d[0], d[1], d[2] = CompositePixel(s[0], s[1], s[2], s[3], bg)
	}
}
