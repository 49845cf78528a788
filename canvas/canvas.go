// installerassets - procedural installer artwork
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package canvas implements an RGB raster buffer with the drawing
// operations the installer artwork needs: solid fills, row/column fills
// for gradients, polygon fills, thick lines, and PNG/BMP serialization.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"installerassets/raster"
)

// paintThreshold is the minimum pixel coverage for a shape to claim a
// pixel. Shapes are painted with hard edges: any pixel the shape covers
// beyond this threshold receives the full color. Installer bitmaps need
// flat color areas rather than anti-aliased blends, and the threshold also
// swallows float residue left where cancelling edge contributions do not
// sum to exactly zero.
const paintThreshold = 1.0 / 512

// Canvas is a width×height grid of RGB pixels (alpha is always opaque).
// Coordinates passed to the drawing operations are device pixels: pixel
// (x, y) covers the unit square [x, x+1) × [y, y+1).
type Canvas struct {
	img *image.RGBA
	ras *raster.Rasterizer
}

// New returns a canvas of the given size, filled with the background color.
func New(width, height int, bg color.RGBA) *Canvas {
	clip := rect.Rect{URx: float64(width), URy: float64(height)}
	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: raster.NewRasterizer(clip),
	}
	for y := range height {
		c.FillRow(y, bg)
	}
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Image returns the underlying image.
func (c *Canvas) Image() image.Image { return c.img }

// FillRow paints the full-width row y with the given color.
// Out-of-range rows are ignored.
func (c *Canvas) FillRow(y int, col color.RGBA) {
	if y < 0 || y >= c.Height() {
		return
	}
	row := c.img.Pix[y*c.img.Stride : y*c.img.Stride+4*c.Width()]
	for x := 0; x < len(row); x += 4 {
		row[x] = col.R
		row[x+1] = col.G
		row[x+2] = col.B
		row[x+3] = col.A
	}
}

// FillColumn paints the full-height column x with the given color.
// Out-of-range columns are ignored.
func (c *Canvas) FillColumn(x int, col color.RGBA) {
	if x < 0 || x >= c.Width() {
		return
	}
	for y := range c.Height() {
		i := y*c.img.Stride + 4*x
		c.img.Pix[i] = col.R
		c.img.Pix[i+1] = col.G
		c.img.Pix[i+2] = col.B
		c.img.Pix[i+3] = col.A
	}
}

// FillPolygon fills the closed polygon with the given color.
func (c *Canvas) FillPolygon(pts []vec.Vec2, col color.RGBA) {
	c.ras.FillNonZero(polygonPath(pts), c.painter(col))
}

// StrokeLine draws a straight line of the given width with butt caps.
func (c *Canvas) StrokeLine(a, b vec.Vec2, width float64, col color.RGBA) {
	c.ras.Width = width
	c.ras.Stroke(linePath(a, b), c.painter(col))
}

// painter returns an emit callback that paints coverage with hard edges.
func (c *Canvas) painter(col color.RGBA) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		for i, cov := range coverage {
			if cov < paintThreshold {
				continue
			}
			c.img.SetRGBA(xMin+i, y, col)
		}
	}
}

// WritePNG writes the canvas to the named file as a PNG.
func (c *Canvas) WritePNG(name string) error {
	return c.write(name, png.Encode)
}

// WriteBMP writes the canvas to the named file as an uncompressed BMP.
func (c *Canvas) WriteBMP(name string) error {
	return c.write(name, bmp.Encode)
}

func (c *Canvas) write(name string, encode func(w io.Writer, m image.Image) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// polygonPath builds a closed path from the polygon's vertices.
func polygonPath(pts []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if len(pts) < 3 {
			return
		}
		if !yield(path.CmdMoveTo, pts[:1]) {
			return
		}
		for i := 1; i < len(pts); i++ {
			if !yield(path.CmdLineTo, pts[i:i+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// linePath builds a single open line segment.
func linePath(a, b vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2 // stack-allocated, reused for each yield
		buf[0] = a
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		buf[0] = b
		yield(path.CmdLineTo, buf[:1])
	}
}
