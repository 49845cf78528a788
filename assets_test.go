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

package installerassets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func decodeAsset(t *testing.T, name string) image.Image {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var img image.Image
	switch filepath.Ext(name) {
	case ".png":
		img, err = png.Decode(f)
	case ".bmp":
		img, err = bmp.Decode(f)
	default:
		t.Fatalf("unexpected asset extension: %s", name)
	}
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func pixel(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestCreateDMGBackground(t *testing.T) {
	dir := t.TempDir()
	name, err := CreateDMGBackground(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "dmg-background.png"); name != want {
		t.Fatalf("output path: got %s, want %s", name, want)
	}

	img := decodeAsset(t, name)
	if img.Bounds().Dx() != 660 || img.Bounds().Dy() != 400 {
		t.Fatalf("image size: got %v, want 660x400", img.Bounds())
	}

	bgPixels := [][2]int{{10, 10}, {300, 50}, {659, 399}, {259, 190}, {401, 190}, {270, 187}, {270, 192}}
	for _, pt := range bgPixels {
		if got := pixel(img, pt[0], pt[1]); got != dmgBackground {
			t.Errorf("pixel (%d,%d): got %v, want background %v", pt[0], pt[1], got, dmgBackground)
		}
	}

	arrowPixels := [][2]int{
		{400, 190}, // arrowhead tip
		{390, 190}, // inside the arrowhead
		{300, 190}, // shaft centerline
		{270, 189}, // shaft upper rows
		{270, 191}, // shaft lower rows
		{260, 190}, // shaft start
	}
	for _, pt := range arrowPixels {
		if got := pixel(img, pt[0], pt[1]); got != arrowColor {
			t.Errorf("pixel (%d,%d): got %v, want arrow %v", pt[0], pt[1], got, arrowColor)
		}
	}
}

func TestCreateNSISHeader(t *testing.T) {
	dir := t.TempDir()
	name, err := CreateNSISHeader(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "nsis-header.bmp"); name != want {
		t.Fatalf("output path: got %s, want %s", name, want)
	}

	img := decodeAsset(t, name)
	if img.Bounds().Dx() != 150 || img.Bounds().Dy() != 57 {
		t.Fatalf("image size: got %v, want 150x57", img.Bounds())
	}

	// Leftmost column carries the unshaded accent color.
	if got := pixel(img, 0, 0); got != accentColor {
		t.Errorf("pixel (0,0): got %v, want %v", got, accentColor)
	}

	// The gradient darkens left to right and is uniform within a column.
	prev := pixel(img, 0, 28)
	for x := 1; x < 150; x++ {
		got := pixel(img, x, 28)
		if got.R > prev.R || got.G > prev.G {
			t.Fatalf("column %d brighter than column %d: %v > %v", x, x-1, got, prev)
		}
		if got.B != 22 {
			t.Fatalf("column %d blue channel: got %d, want 22", x, got.B)
		}
		if top := pixel(img, x, 0); top != got {
			t.Fatalf("column %d not uniform: %v vs %v", x, top, got)
		}
		prev = got
	}

	if got := pixel(img, 149, 0); got != (color.RGBA{219, 81, 22, 255}) {
		t.Errorf("pixel (149,0): got %v, want {219 81 22 255}", got)
	}
}

func TestCreateNSISSidebar(t *testing.T) {
	dir := t.TempDir()
	name, err := CreateNSISSidebar(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "nsis-sidebar.bmp"); name != want {
		t.Fatalf("output path: got %s, want %s", name, want)
	}

	img := decodeAsset(t, name)
	if img.Bounds().Dx() != 164 || img.Bounds().Dy() != 314 {
		t.Fatalf("image size: got %v, want 164x314", img.Bounds())
	}

	if got := pixel(img, 0, 0); got != accentColor {
		t.Errorf("pixel (0,0): got %v, want %v", got, accentColor)
	}

	// The gradient darkens in red and green and brightens in blue
	// going down, uniform within each row.
	prev := pixel(img, 82, 0)
	for y := 1; y < 314; y++ {
		got := pixel(img, 82, y)
		if got.R > prev.R || got.G > prev.G || got.B < prev.B {
			t.Fatalf("row %d out of order: %v after %v", y, got, prev)
		}
		if left := pixel(img, 0, y); left != got {
			t.Fatalf("row %d not uniform: %v vs %v", y, left, got)
		}
		prev = got
	}

	if got := pixel(img, 0, 313); got != (color.RGBA{199, 75, 31, 255}) {
		t.Errorf("pixel (0,313): got %v, want {199 75 31 255}", got)
	}
}

func TestDeterministicOutput(t *testing.T) {
	// Two independent runs must produce byte-identical files, and a
	// second run over an existing directory must succeed.
	run := func(dir string) {
		t.Helper()
		if err := EnsureDir(dir); err != nil {
			t.Fatal(err)
		}
		for _, create := range []func(string) (string, error){
			CreateDMGBackground, CreateNSISHeader, CreateNSISSidebar,
		} {
			if _, err := create(dir); err != nil {
				t.Fatal(err)
			}
		}
	}

	dirA := t.TempDir()
	dirB := t.TempDir()
	run(dirA)
	run(dirB)
	run(dirB) // overwrite in place

	for _, name := range []string{"dmg-background.png", "nsis-header.bmp", "nsis-sidebar.bmp"} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "installer-assets")
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatal("EnsureDir did not create a directory")
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir on existing directory: %v", err)
	}
}

func TestCreateFailsForMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := CreateDMGBackground(dir); err == nil {
		t.Fatal("expected error when output directory is missing")
	}
}
