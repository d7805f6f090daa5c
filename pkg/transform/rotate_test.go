package transform

import (
	"image"
	"math/rand"
	"testing"

	"github.com/menta2k/video-augment/pkg/types"
)

func TestRandomRotateQuarterTurn(t *testing.T) {
	c := createTestClip(2, 100, 100)
	boxes := singleBoxSet(2, types.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50})

	unit := NewRandomRotate(90)
	outClip, outBoxes, err := unit.Apply(c, boxes)
	if err != nil {
		t.Fatalf("RandomRotate failed: %v", err)
	}
	if unit.Angle() != 90 {
		t.Errorf("Expected sampled angle 90, got %f", unit.Angle())
	}
	w, h := outClip.Extent()
	if w != 100 || h != 100 {
		t.Errorf("Expected extent preserved at 100x100, got %dx%d", w, h)
	}

	want := types.Box{XMin: 50, YMin: 10, XMax: 90, YMax: 50}
	near := func(a, b int) bool { d := a - b; return d >= -1 && d <= 1 }
	got := outBoxes[0][0]
	if !near(got.XMin, want.XMin) || !near(got.YMin, want.YMin) || !near(got.XMax, want.XMax) || !near(got.YMax, want.YMax) {
		t.Errorf("Expected %+v within 1px, got %+v", want, got)
	}
}

func TestRandomRotateClosure(t *testing.T) {
	c := createTestClip(2, 100, 100)
	boxes := singleBoxSet(2, types.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50})

	unit := NewRandomRotate(90)
	outClip, outBoxes := c, boxes
	var err error
	for i := 0; i < 4; i++ {
		outClip, outBoxes, err = unit.Apply(outClip, outBoxes)
		if err != nil {
			t.Fatalf("Rotation %d failed: %v", i, err)
		}
	}

	w, h := outClip.Extent()
	if w != 100 || h != 100 {
		t.Errorf("Expected extent back at 100x100, got %dx%d", w, h)
	}
	if len(outClip) != 2 {
		t.Errorf("Expected 2 frames, got %d", len(outClip))
	}

	// Truncation drift accumulates over the four turns
	near := func(a, b int) bool { d := a - b; return d >= -3 && d <= 3 }
	want := boxes[0][0]
	got := outBoxes[0][0]
	if !near(got.XMin, want.XMin) || !near(got.YMin, want.YMin) || !near(got.XMax, want.XMax) || !near(got.YMax, want.YMax) {
		t.Errorf("Expected %+v within drift, got %+v", want, got)
	}
}

func TestRandomRotateSamplesFromSet(t *testing.T) {
	c := createTestClip(1, 40, 40)
	unit := NewRandomRotateWithSource(rand.NewSource(5), 0, 90, 180, 270)

	seen := map[float64]bool{}
	for i := 0; i < 100; i++ {
		if _, _, err := unit.Apply(c, nil); err != nil {
			t.Fatalf("RandomRotate failed: %v", err)
		}
		angle := unit.Angle()
		if angle != 0 && angle != 90 && angle != 180 && angle != 270 {
			t.Fatalf("Sampled angle %f outside the candidate set", angle)
		}
		seen[angle] = true
	}
	if len(seen) < 3 {
		t.Errorf("Expected most candidate angles over 100 samples, saw %v", seen)
	}
}

func TestRandomRotateDefaultAngles(t *testing.T) {
	unit := NewRandomRotate()
	if len(unit.Angles) != 4 {
		t.Errorf("Expected default angle set of 4, got %v", unit.Angles)
	}
}

func TestRandomRotatePreservesGrayscale(t *testing.T) {
	c := createGrayClip(t, 2, 30, 30)
	outClip, _, err := NewRandomRotate(180).Apply(c, nil)
	if err != nil {
		t.Fatalf("RandomRotate failed: %v", err)
	}
	if _, ok := outClip[0].(*image.Gray); !ok {
		t.Errorf("Expected grayscale frames to stay grayscale, got %T", outClip[0])
	}
}

func TestRandomRotateNonSquareKeepsExtent(t *testing.T) {
	c := createTestClip(1, 60, 40)
	outClip, _, err := NewRandomRotate(90).Apply(c, nil)
	if err != nil {
		t.Fatalf("RandomRotate failed: %v", err)
	}
	w, h := outClip.Extent()
	if w != 60 || h != 40 {
		t.Errorf("Expected 60x40 preserved, got %dx%d", w, h)
	}
}
