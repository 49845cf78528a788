package raster

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
)

// BenchmarkRasterizerArrow benchmarks our rasterizer drawing a stroked
// arrow shaft plus a filled arrowhead, the shape the asset generators draw.
func BenchmarkRasterizerArrow(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			s := float64(size)
			mid := s / 2
			shaft := linePath(s*0.1, mid, s*0.8, mid)
			head := trianglePath(s*0.9, mid, s*0.75, mid-s*0.08, s*0.75, mid+s*0.08)

			paint := func(y, xMin int, coverage []float32) {
				row := dst.Pix[y*dst.Stride+xMin:]
				for i, c := range coverage {
					row[i] = uint8(c * 255)
				}
			}

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Width = s * 0.03
				r.Stroke(shaft, paint)
				r.FillNonZero(head, paint)
			}
		})
	}
}

// BenchmarkVectorArrow benchmarks x/image/vector drawing the same shape.
func BenchmarkVectorArrow(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			s := float32(size)
			mid := s / 2
			halfW := s * 0.015

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)

				// Shaft as an explicit rectangle outline.
				r.MoveTo(s*0.1, mid-halfW)
				r.LineTo(s*0.8, mid-halfW)
				r.LineTo(s*0.8, mid+halfW)
				r.LineTo(s*0.1, mid+halfW)
				r.ClosePath()

				// Arrowhead triangle.
				r.MoveTo(s*0.9, mid)
				r.LineTo(s*0.75, mid-s*0.08)
				r.LineTo(s*0.75, mid+s*0.08)
				r.ClosePath()

				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}
