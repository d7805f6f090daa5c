// Package geometry implements the pure coordinate math that keeps bounding
// boxes consistent with resized, cropped, flipped and rotated frames.
//
// All functions take and return boxes in pixel coordinates with the origin
// at the frame's top-left corner. Fractional results are truncated toward
// zero; this is a deliberate, reproducible policy rather than rounding.
package geometry

import (
	"math"

	"github.com/menta2k/video-augment/pkg/types"
)

// ResizeBox scales a box from a frame of extent (oldW, oldH) to one of
// extent (newW, newH). Each axis is scaled independently by its new/old
// ratio and truncated to an integer.
func ResizeBox(b types.Box, oldW, oldH, newW, newH int) types.Box {
	fracW := float64(newW) / float64(oldW)
	fracH := float64(newH) / float64(oldH)
	return types.Box{
		XMin: int(float64(b.XMin) * fracW),
		YMin: int(float64(b.YMin) * fracH),
		XMax: int(float64(b.XMax) * fracW),
		YMax: int(float64(b.YMax) * fracH),
	}
}

// CropBox clips a box against a crop window. When the box and the window do
// not strictly overlap (a shared edge counts as no overlap) the
// types.OutOfBounds sentinel is returned. Otherwise each edge is clamped to
// the window.
//
// The clipped box stays expressed in the ORIGINAL frame's coordinates; it is
// not re-based to the window's origin. Callers that need window-local
// coordinates must subtract window.XMin / window.YMin themselves.
func CropBox(b, window types.Box) types.Box {
	if b.XMin >= window.XMax || b.XMax <= window.XMin ||
		b.YMin >= window.YMax || b.YMax <= window.YMin {
		return types.OutOfBounds
	}
	out := b
	if out.XMin < window.XMin {
		out.XMin = window.XMin
	}
	if out.YMin < window.YMin {
		out.YMin = window.YMin
	}
	if out.XMax > window.XMax {
		out.XMax = window.XMax
	}
	if out.YMax > window.YMax {
		out.YMax = window.YMax
	}
	return out
}

// FlipBoxH mirrors a box across the vertical centerline of a frame of the
// given width. The y coordinates are untouched.
func FlipBoxH(b types.Box, width int) types.Box {
	return types.Box{
		XMin: width - b.XMax,
		YMin: b.YMin,
		XMax: width - b.XMin,
		YMax: b.YMax,
	}
}

// FlipBoxV mirrors a box across the horizontal centerline of a frame of the
// given height. The x coordinates are untouched.
func FlipBoxV(b types.Box, height int) types.Box {
	return types.Box{
		XMin: b.XMin,
		YMin: height - b.YMax,
		XMax: b.XMax,
		YMax: height - b.YMin,
	}
}

// RotateBox rotates a box by angleDeg degrees about the center of a frame of
// extent (frameW, frameH) and returns the axis-aligned bounding rectangle of
// the four rotated corners. This is the minimal enclosing axis-aligned box,
// a coarse approximation rather than a tight rotated box.
func RotateBox(b types.Box, frameW, frameH int, angleDeg float64) types.Box {
	angle := angleDeg * math.Pi / 180
	halfW := float64(frameW) / 2
	halfH := float64(frameH) / 2

	corners := [4][2]float64{
		{float64(b.XMin) - halfW, float64(b.YMin) - halfH},
		{float64(b.XMax) - halfW, float64(b.YMin) - halfH},
		{float64(b.XMin) - halfW, float64(b.YMax) - halfH},
		{float64(b.XMax) - halfW, float64(b.YMax) - halfH},
	}

	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		rho, phi := cartToPol(c[0], c[1])
		x, y := polToCart(rho, phi+angle)
		x += halfW
		y += halfH
		xMin = math.Min(xMin, x)
		xMax = math.Max(xMax, x)
		yMin = math.Min(yMin, y)
		yMax = math.Max(yMax, y)
	}

	return types.Box{
		XMin: int(xMin),
		YMin: int(yMin),
		XMax: int(xMax),
		YMax: int(yMax),
	}
}

func cartToPol(x, y float64) (rho, phi float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}

func polToCart(rho, phi float64) (x, y float64) {
	return rho * math.Cos(phi), rho * math.Sin(phi)
}
