package transform

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/geometry"
	"github.com/menta2k/video-augment/pkg/types"
)

// DefaultAngles is the angle set RandomRotate samples from when none is
// configured.
var DefaultAngles = []float64{0, 90, 180, 270}

// RandomRotate rotates a whole clip about each frame's center by one angle
// sampled uniformly from a fixed candidate set. Frame extent is preserved:
// content rotated outside the frame is cut off and revealed corners fill
// black. Boxes become the axis-aligned hull of their rotated corners,
// computed against the pre-rotation extent.
type RandomRotate struct {
	Angles []float64

	rng   *rand.Rand
	angle float64
}

// NewRandomRotate creates a rotate unit seeded from the global random
// source. With no angles given it samples from DefaultAngles.
func NewRandomRotate(angles ...float64) *RandomRotate {
	return NewRandomRotateWithSource(rand.NewSource(rand.Int63()), angles...)
}

// NewRandomRotateWithSource creates a rotate unit with a caller-supplied
// source, for deterministic sampling.
func NewRandomRotateWithSource(src rand.Source, angles ...float64) *RandomRotate {
	if len(angles) == 0 {
		angles = append([]float64{}, DefaultAngles...)
	}
	return &RandomRotate{Angles: angles, rng: rand.New(src)}
}

// Angle returns the angle sampled by the most recent Apply call, in degrees.
func (t *RandomRotate) Angle() float64 {
	return t.angle
}

// Apply implements Transform.
func (t *RandomRotate) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	if len(t.Angles) == 0 {
		return nil, nil, fmt.Errorf("random rotate has no candidate angles")
	}
	t.angle = t.Angles[t.rng.Intn(len(t.Angles))]

	out := make(clip.Clip, len(c))
	var outBoxes types.BoxSet
	if boxes != nil {
		outBoxes = make(types.BoxSet, len(c))
	}

	for i, f := range c {
		b := f.Bounds()
		out[i] = rotateFrame(f, t.angle)

		if boxes != nil {
			row := make([]types.Box, len(boxes[i]))
			for j, bb := range boxes[i] {
				row[j] = geometry.RotateBox(bb, b.Dx(), b.Dy(), t.angle)
			}
			outBoxes[i] = row
		}
	}
	return out, outBoxes, nil
}

// rotateFrame rotates one frame about its center while keeping the original
// extent. imaging.Rotate grows the canvas to fit the rotated content, so the
// result is center-cropped back to the source extent.
func rotateFrame(f image.Image, angle float64) image.Image {
	b := f.Bounds()
	rotated := imaging.Rotate(f, angle, color.NRGBA{A: 255})
	if rb := rotated.Bounds(); rb.Dx() != b.Dx() || rb.Dy() != b.Dy() {
		rotated = imaging.CropCenter(rotated, b.Dx(), b.Dy())
	}
	return clip.ConvertLike(f, rotated)
}
