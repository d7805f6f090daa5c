package geometry

import (
	"testing"

	"github.com/menta2k/video-augment/pkg/types"
)

// boxNear reports whether every coordinate of got is within tol of want
func boxNear(want, got types.Box, tol int) bool {
	near := func(a, b int) bool {
		d := a - b
		if d < 0 {
			d = -d
		}
		return d <= tol
	}
	return near(want.XMin, got.XMin) && near(want.YMin, got.YMin) &&
		near(want.XMax, got.XMax) && near(want.YMax, got.YMax)
}

func TestResizeBox(t *testing.T) {
	// Halving a 100x100 frame halves the box
	got := ResizeBox(types.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50}, 100, 100, 50, 50)
	want := types.Box{XMin: 5, YMin: 5, XMax: 25, YMax: 25}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestResizeBoxIndependentAxes(t *testing.T) {
	// Width doubles, height stays
	got := ResizeBox(types.Box{XMin: 10, YMin: 20, XMax: 30, YMax: 40}, 100, 100, 200, 100)
	want := types.Box{XMin: 20, YMin: 20, XMax: 60, YMax: 40}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestResizeBoxTruncates(t *testing.T) {
	// 15 * 0.5 = 7.5 truncates to 7, never rounds to 8
	got := ResizeBox(types.Box{XMin: 15, YMin: 15, XMax: 33, YMax: 33}, 100, 100, 50, 50)
	want := types.Box{XMin: 7, YMin: 7, XMax: 16, YMax: 16}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestResizeBoxInverseWithinOnePixel(t *testing.T) {
	boxes := []types.Box{
		{XMin: 10, YMin: 20, XMax: 60, YMax: 80},
		{XMin: 11, YMin: 21, XMax: 61, YMax: 81},
		{XMin: 0, YMin: 0, XMax: 99, YMax: 99},
		{XMin: 33, YMin: 47, XMax: 35, YMax: 49},
	}
	for _, b := range boxes {
		down := ResizeBox(b, 100, 100, 50, 50)
		back := ResizeBox(down, 50, 50, 100, 100)
		if !boxNear(b, back, 1) {
			t.Errorf("Round trip of %+v drifted to %+v", b, back)
		}
	}
}

func TestCropBoxSentinel(t *testing.T) {
	window := types.Box{XMin: 20, YMin: 20, XMax: 60, YMax: 60}

	cases := []struct {
		name string
		box  types.Box
	}{
		{"fully left", types.Box{XMin: 0, YMin: 30, XMax: 10, YMax: 40}},
		{"fully above", types.Box{XMin: 30, YMin: 0, XMax: 40, YMax: 10}},
		{"fully right", types.Box{XMin: 70, YMin: 30, XMax: 90, YMax: 40}},
		{"fully below", types.Box{XMin: 30, YMin: 70, XMax: 40, YMax: 90}},
		// Shared edges count as no overlap (strict inequality rule)
		{"touching left edge", types.Box{XMin: 0, YMin: 30, XMax: 20, YMax: 40}},
		{"touching top edge", types.Box{XMin: 30, YMin: 0, XMax: 40, YMax: 20}},
		{"touching right edge", types.Box{XMin: 60, YMin: 30, XMax: 90, YMax: 40}},
		{"touching bottom edge", types.Box{XMin: 30, YMin: 60, XMax: 40, YMax: 90}},
		// A sentinel stays a sentinel
		{"sentinel input", types.OutOfBounds},
	}
	for _, tc := range cases {
		if got := CropBox(tc.box, window); !got.OutOfBounds() {
			t.Errorf("%s: expected sentinel, got %+v", tc.name, got)
		}
	}
}

func TestCropBoxClips(t *testing.T) {
	window := types.Box{XMin: 20, YMin: 20, XMax: 60, YMax: 60}

	cases := []struct {
		name string
		box  types.Box
		want types.Box
	}{
		{"fully inside", types.Box{XMin: 30, YMin: 30, XMax: 50, YMax: 50}, types.Box{XMin: 30, YMin: 30, XMax: 50, YMax: 50}},
		{"overhangs left and top", types.Box{XMin: 10, YMin: 10, XMax: 40, YMax: 40}, types.Box{XMin: 20, YMin: 20, XMax: 40, YMax: 40}},
		{"overhangs right and bottom", types.Box{XMin: 40, YMin: 40, XMax: 90, YMax: 90}, types.Box{XMin: 40, YMin: 40, XMax: 60, YMax: 60}},
		{"covers whole window", types.Box{XMin: 0, YMin: 0, XMax: 100, YMax: 100}, window},
	}
	for _, tc := range cases {
		got := CropBox(tc.box, window)
		if got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
		// Result stays contained in the window
		if got.XMin < window.XMin || got.YMin < window.YMin || got.XMax > window.XMax || got.YMax > window.YMax {
			t.Errorf("%s: result %+v escapes window %+v", tc.name, got, window)
		}
	}
}

func TestCropBoxKeepsOriginalCoordinates(t *testing.T) {
	// The clipped box is NOT re-based to the window origin
	window := types.Box{XMin: 15, YMin: 15, XMax: 35, YMax: 35}
	got := CropBox(types.Box{XMin: 5, YMin: 5, XMax: 25, YMax: 25}, window)
	want := types.Box{XMin: 15, YMin: 15, XMax: 25, YMax: 25}
	if got != want {
		t.Errorf("Expected window-clipped box in original coordinates %+v, got %+v", want, got)
	}
}

func TestFlipBoxH(t *testing.T) {
	got := FlipBoxH(types.Box{XMin: 10, YMin: 20, XMax: 40, YMax: 60}, 100)
	want := types.Box{XMin: 60, YMin: 20, XMax: 90, YMax: 60}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestFlipBoxV(t *testing.T) {
	got := FlipBoxV(types.Box{XMin: 10, YMin: 20, XMax: 40, YMax: 60}, 100)
	want := types.Box{XMin: 10, YMin: 40, XMax: 40, YMax: 80}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestFlipBoxInvolution(t *testing.T) {
	boxes := []types.Box{
		{XMin: 10, YMin: 20, XMax: 40, YMax: 60},
		{XMin: 0, YMin: 0, XMax: 100, YMax: 50},
		{XMin: 33, YMin: 1, XMax: 34, YMax: 99},
	}
	for _, b := range boxes {
		if got := FlipBoxH(FlipBoxH(b, 100), 100); got != b {
			t.Errorf("Horizontal double flip of %+v produced %+v", b, got)
		}
		if got := FlipBoxV(FlipBoxV(b, 100), 100); got != b {
			t.Errorf("Vertical double flip of %+v produced %+v", b, got)
		}
	}
}

func TestRotateBoxZeroAngle(t *testing.T) {
	b := types.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50}
	if got := RotateBox(b, 100, 100, 0); !boxNear(b, got, 1) {
		t.Errorf("Zero rotation moved %+v to %+v", b, got)
	}
}

func TestRotateBoxQuarterTurn(t *testing.T) {
	// 90 degrees about the center of a 100x100 frame maps
	// (10,10,50,50) onto (50,10,90,50)
	got := RotateBox(types.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50}, 100, 100, 90)
	want := types.Box{XMin: 50, YMin: 10, XMax: 90, YMax: 50}
	if !boxNear(want, got, 1) {
		t.Errorf("Expected %+v within 1px, got %+v", want, got)
	}
}

func TestRotateBoxHalfTurn(t *testing.T) {
	got := RotateBox(types.Box{XMin: 10, YMin: 20, XMax: 50, YMax: 60}, 100, 100, 180)
	want := types.Box{XMin: 50, YMin: 40, XMax: 90, YMax: 80}
	if !boxNear(want, got, 1) {
		t.Errorf("Expected %+v within 1px, got %+v", want, got)
	}
}

func TestRotateBoxFullTurnClosure(t *testing.T) {
	// Four quarter turns return to the start within the accumulated
	// integer truncation drift
	b := types.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50}
	got := b
	for i := 0; i < 4; i++ {
		got = RotateBox(got, 100, 100, 90)
	}
	if !boxNear(b, got, 3) {
		t.Errorf("Four quarter turns drifted %+v to %+v", b, got)
	}
}

func TestRotateBoxDiagonalGrowsHull(t *testing.T) {
	// A 45 degree rotation of a centered square yields the larger
	// axis-aligned hull of the rotated corners
	b := types.Box{XMin: 30, YMin: 30, XMax: 70, YMax: 70}
	got := RotateBox(b, 100, 100, 45)
	if got.Width() <= b.Width() || got.Height() <= b.Height() {
		t.Errorf("Expected hull larger than %+v, got %+v", b, got)
	}
	cx := (got.XMin + got.XMax) / 2
	cy := (got.YMin + got.YMax) / 2
	if cx < 49 || cx > 51 || cy < 49 || cy > 51 {
		t.Errorf("Hull %+v is not centered on the frame center", got)
	}
}
