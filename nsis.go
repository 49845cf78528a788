package installerassets

import (
	"fmt"
	"image/color"
	"path/filepath"

	"installerassets/canvas"
)

const (
	headerWidth  = 150
	headerHeight = 57

	sidebarWidth  = 164
	sidebarHeight = 314
)

// CreateNSISHeader draws the 150×57 Windows installer header banner: a
// horizontal gradient from the accent orange to a slightly darker shade.
// NSIS requires BMP, so the result is written to nsis-header.bmp in dir;
// the output path is printed and returned.
func CreateNSISHeader(dir string) (string, error) {
	c := canvas.New(headerWidth, headerHeight, accentColor)

	// Each column overwrites the base fill, so the finished image shows
	// only the gradient. The truncating arithmetic matches the shipped
	// artwork byte for byte.
	for x := range headerWidth {
		shade := uint8(249 - float64(x)/headerWidth*30)
		green := uint8(max(80, 115-int(float64(x)/headerWidth*35)))
		c.FillColumn(x, color.RGBA{shade, green, 22, 255})
	}

	out := filepath.Join(dir, "nsis-header.bmp")
	if err := c.WriteBMP(out); err != nil {
		return "", err
	}
	fmt.Println("Created:", out)
	return out, nil
}

// CreateNSISSidebar draws the 164×314 Windows installer sidebar banner: a
// vertical gradient from the accent orange at the top to a darker shade at
// the bottom. Written to nsis-sidebar.bmp in dir; the output path is
// printed and returned.
//
// Unlike the header, the per-row factor stays in floating point and only
// the final channel values truncate.
func CreateNSISSidebar(dir string) (string, error) {
	c := canvas.New(sidebarWidth, sidebarHeight, accentColor)

	for y := range sidebarHeight {
		factor := float64(y) / sidebarHeight
		c.FillRow(y, color.RGBA{
			R: uint8(249 - factor*50),
			G: uint8(115 - factor*40),
			B: uint8(22 + factor*10),
			A: 255,
		})
	}

	out := filepath.Join(dir, "nsis-sidebar.bmp")
	if err := c.WriteBMP(out); err != nil {
		return "", err
	}
	fmt.Println("Created:", out)
	return out, nil
}
