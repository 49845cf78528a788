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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment represents a line segment of a polyline being stroked.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// Stroke renders the path as a stroked outline using Width, Cap, Join, and
// MiterLimit. The emit callback receives coverage row-by-row; its slice
// argument is valid only during the call.
//
// Subpaths are stroked as open polylines; a close command contributes the
// closing segment back to the subpath start.
func (r *Rasterizer) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 {
		return
	}

	// Build stroke outlines for all subpaths into a single contiguous buffer.
	// strokeOffsets tracks where each polygon starts. Filling all polygons
	// together with the nonzero winding rule composites overlapping regions
	// correctly, including the self-overlaps the join geometry leaves on the
	// inner side of corners.
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	for i := range r.segsOffsets {
		segs := r.subpathSegments(i)

		startOffset := len(r.stroke)
		r.strokeSubpath(segs)
		if len(r.stroke)-startOffset >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, startOffset)
		} else {
			// Degenerate polygon, discard by resetting to start
			r.stroke = r.stroke[:startOffset]
		}
	}

	r.fillStrokeOutlines(emit)
}

// flattenPath walks the path and populates r.segs with precomputed segment
// geometry and r.segsOffsets with the start index of each subpath.
// Subpaths without any usable segment are dropped.
func (r *Rasterizer) flattenPath(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]

	var current vec.Vec2
	var subpathStart vec.Vec2
	subpathStartIdx := 0
	inSubpath := false

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath && len(r.segs) > subpathStartIdx {
				r.segsOffsets = append(r.segsOffsets, subpathStartIdx)
			}
			current = pts[0]
			subpathStart = current
			subpathStartIdx = len(r.segs)
			inSubpath = true

		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			if !inSubpath {
				continue
			}
			// curves degrade to their end point
			end := pts[len(pts)-1]
			r.addStrokeSegment(current, end)
			current = end

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if current != subpathStart {
				r.addStrokeSegment(current, subpathStart)
			}
			if len(r.segs) > subpathStartIdx {
				r.segsOffsets = append(r.segsOffsets, subpathStartIdx)
			}
			current = subpathStart
			subpathStartIdx = len(r.segs)
			inSubpath = false
		}
	}

	if inSubpath && len(r.segs) > subpathStartIdx {
		r.segsOffsets = append(r.segsOffsets, subpathStartIdx)
	}
}

// addStrokeSegment adds a line segment to the flattening buffer.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return // skip degenerate segment
	}
	t := d.Mul(1 / length)         // unit tangent
	n := vec.Vec2{X: -t.Y, Y: t.X} // unit normal (90° CCW)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: n})
}

// subpathSegments returns the segments for subpath i as a slice into segs.
func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	start := r.segsOffsets[i]
	var end int
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	} else {
		end = len(r.segs)
	}
	return r.segs[start:end]
}

// strokeSubpath builds the stroke outline for a single polyline into
// r.stroke: a start cap, the +N side forward, an end cap, then the -N side
// backward. Join geometry is added on the outer side of each corner; the
// inner side keeps both offset points, leaving a small self-overlap that
// the nonzero fill resolves.
func (r *Rasterizer) strokeSubpath(segs []strokeSegment) {
	if len(segs) == 0 {
		return
	}

	d := r.Width / 2 // half-width
	first := &segs[0]
	last := &segs[len(segs)-1]

	// Start cap (at first.A, direction = -T)
	r.addCap(first.A, first.T.Mul(-1), d)

	// Forward pass: +N side
	for i := range segs {
		seg := &segs[i]
		r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		if i < len(segs)-1 {
			next := &segs[i+1]
			sinTheta := seg.T.X*next.T.Y - seg.T.Y*next.T.X
			if sinTheta < -collinearityThreshold {
				// Left turn: +N is the outer side
				r.addJoin(seg.B, seg.T, next.T, d, true)
			}
		}
	}

	// End cap (at last.B, direction = T)
	r.addCap(last.B, last.T, d)

	// Backward pass: -N side
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		if i > 0 {
			prev := &segs[i-1]
			sinTheta := prev.T.X*seg.T.Y - prev.T.Y*seg.T.X
			if sinTheta > collinearityThreshold {
				// Right turn: -N is the outer side
				r.addJoin(seg.A, prev.T, seg.T, d, false)
			}
		}
	}
}

// addCap adds a line cap to the stroke outline at point P.
// T is the outward tangent direction (away from the line).
// d is half the stroke width.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X} // normal (90° CCW from T)

	switch r.Cap {
	case graphics.LineCapButt:
		// Butt cap: the two offset points added by the caller already
		// close the end; no additional points needed.

	case graphics.LineCapSquare:
		// Square cap: extend by d along tangent
		ext := P.Add(T.Mul(d))
		left := ext.Add(N.Mul(d))
		right := ext.Sub(N.Mul(d))
		r.stroke = append(r.stroke, left, right)

	case graphics.LineCapRound:
		// Round cap: semicircular arc curving outward (through T direction).
		// Starts at N and sweeps CW (negative angle) to -N, passing through T.
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addJoin adds outer join geometry at point P where the tangent changes
// from T1 to T2. d is half the stroke width. isPositiveNormalSide indicates
// which side of the stroke is being built.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, isPositiveNormalSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X // cross product Z component

	// Skip if nearly collinear
	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	// Check for cusp (path doubling back on itself)
	if cosTheta < cuspCosineThreshold {
		// Emit two caps instead of a join
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// Miter length = 1 / sin(φ/2), where φ is the interior angle of the
		// stroke at the corner. With θ the angle between tangents,
		// sin(φ/2) = cos(θ/2) = sqrt((1 + cosθ) / 2).
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}

			// Bisector direction depends on which side we're building
			bisector := N1.Add(N2)
			if !isPositiveNormalSide {
				bisector = bisector.Mul(-1)
			}
			bisectorLen := bisector.Length()
			if bisectorLen > zeroLengthThreshold {
				bisector = bisector.Mul(1 / bisectorLen)
				miterPt := P.Add(bisector.Mul(d / sinHalf))
				r.stroke = append(r.stroke, miterPt)
			}
			return
		}
		// Fall through to bevel if miter limit exceeded
		fallthrough

	case graphics.LineJoinBevel:
		// Bevel join: the two offset lines meet directly; the caller
		// already adds the necessary points.
		return

	case graphics.LineJoinRound:
		// Round join: arc curving outward on the current side. The caller
		// has already added the arc's start point.
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if isPositiveNormalSide {
			// Forward pass, left turn: arc from +N of T1 to +N of T2, CW.
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			r.addArc(P, d, N1, -angle, false)
		} else {
			// Backward pass, right turn: arc from -N of T2 to -N of T1
			// (reversed direction), CW.
			N2rev := vec.Vec2{X: T2.Y, Y: -T2.X}
			r.addArc(P, d, N2rev, -angle, false)
		}
	}
}

// addArc adds arc vertices to the stroke outline.
// center is the arc center, radius is the arc radius.
// startDir is the unit vector from center to arc start.
// sweep is the sweep angle in radians (positive = CCW).
// includeStart indicates whether to include the start point (false if the
// caller already added it).
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	if radius < r.Flatness {
		// Arc too small to matter - just add end point (and start if needed)
		if includeStart {
			r.stroke = append(r.stroke, center.Add(startDir.Mul(radius)))
		}
		cos, sin := math.Cos(sweep), math.Sin(sweep)
		endDir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(endDir.Mul(radius)))
		return
	}

	// For a chord subtending angle θ on a circle of radius r, the maximum
	// deviation (sagitta) is r*(1 - cos(θ/2)). For this to equal tolerance ε:
	//   θ = 2*acos(1 - ε/r)
	absSweep := math.Abs(sweep)

	angleStep := 2 * math.Acos(1-r.Flatness/radius)
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 4 // fallback
	}
	n := int(math.Ceil(absSweep / angleStep))
	n = max(n, 1)

	// Generate arc points
	dt := sweep / float64(n)
	startI := 0
	if !includeStart {
		startI = 1 // skip start point if caller already added it
	}
	for i := startI; i <= n; i++ {
		angle := float64(i) * dt
		// Rotate startDir by angle
		cos, sin := math.Cos(angle), math.Sin(angle)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}

// fillStrokeOutlines fills all collected stroke polygons as a compound path.
// Using the nonzero winding rule ensures overlapping regions are painted once.
func (r *Rasterizer) fillStrokeOutlines(emit func(y, xMin int, coverage []float32)) {
	if len(r.strokeOffsets) == 0 {
		return
	}

	xMin, xMax, yMin, yMax, ok := r.collectStrokeEdges()
	if !ok {
		return
	}

	r.fillArea(xMin, xMax, yMin, yMax, emit)
}

// collectStrokeEdges builds the edge list directly from the stroke polygons.
func (r *Rasterizer) collectStrokeEdges() (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	for i, start := range r.strokeOffsets {
		// Determine end of this polygon
		var end int
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		} else {
			end = len(r.stroke)
		}
		poly := r.stroke[start:end]
		if len(poly) < 2 {
			continue
		}

		// Add edges for each segment
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		// Close the polygon
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	return r.clampBBox()
}
