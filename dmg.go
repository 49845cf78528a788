package installerassets

import (
	"fmt"
	"path/filepath"

	"seehuhn.de/go/geom/vec"

	"installerassets/canvas"
)

// DMG background geometry. Finder renders the app icon centered at
// (180,190) and the Applications folder at (480,190); the arrow sits in
// the gap between the two. Coordinates ending in .5 address pixel centers.
const (
	dmgWidth  = 660
	dmgHeight = 400

	arrowY      = 190 // vertical center of the arrow
	shaftStartX = 260 // after the app icon (with padding)
	arrowTipX   = 400 // before the Applications folder (with padding)

	shaftThickness = 4  // shaft line width
	headLength     = 14 // arrowhead length along x
	headHalfWidth  = 10 // arrowhead half-height
	shaftSetback   = 12 // shaft stops this far before the tip
)

// CreateDMGBackground draws the 660×400 macOS disk image background: a
// light gray canvas with a subtle arrow pointing from the app icon
// position to the Applications folder position. The result is written to
// dmg-background.png in dir; the output path is printed and returned.
func CreateDMGBackground(dir string) (string, error) {
	c := canvas.New(dmgWidth, dmgHeight, dmgBackground)

	// Arrow shaft. The centerline sits on the y=190 pixel boundary so the
	// even 4px width covers rows 188-191 exactly.
	shaftEndX := float64(arrowTipX - shaftSetback)
	c.StrokeLine(
		vec.Vec2{X: shaftStartX + 0.5, Y: arrowY},
		vec.Vec2{X: shaftEndX + 0.5, Y: arrowY},
		shaftThickness, arrowColor)

	// Arrowhead: isoceles triangle pointing right, tip at pixel (400,190).
	base := float64(arrowTipX-headLength) + 0.5
	c.FillPolygon([]vec.Vec2{
		{X: arrowTipX + 0.5, Y: arrowY + 0.5},
		{X: base, Y: arrowY - headHalfWidth + 0.5},
		{X: base, Y: arrowY + headHalfWidth + 0.5},
	}, arrowColor)

	out := filepath.Join(dir, "dmg-background.png")
	if err := c.WritePNG(out); err != nil {
		return "", err
	}
	fmt.Println("Created:", out)
	return out, nil
}
