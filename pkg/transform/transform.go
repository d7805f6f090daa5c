// Package transform implements the clip transform units and their sequential
// composition.
//
// Every unit satisfies the same call contract: it consumes a clip and an
// optional box set and produces a transformed clip and box set. Geometric
// units recompute boxes through pkg/geometry so annotations stay consistent
// with the transformed pixels. Units never validate that the box set matches
// the clip length; that precondition belongs to the caller (Pipeline checks
// it once on entry).
//
// Randomized units (RandomCrop, RandomFlip, RandomRotate) own their random
// source and the parameters sampled by the most recent Apply call, exposed
// through an accessor so a caller can replay the identical sample on a
// paired modality. One unit instance is not safe for concurrent use; give
// each worker its own instances.
package transform

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/types"
)

// ErrInvalidCropSize is returned when a requested crop does not fit inside
// the source frame.
var ErrInvalidCropSize = errors.New("crop size does not fit frame")

// Transform is one configured, reusable clip operation.
//
// A nil box set means the caller carries no annotations; the returned box
// set is then nil as well. Implementations return a new clip rather than
// mutating the input.
type Transform interface {
	Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error)
}

// Identity returns its inputs unchanged. It is useful as a placeholder slot
// in configured pipelines.
type Identity struct{}

// Apply implements Transform.
func (Identity) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	return c, boxes, nil
}

// ApplyPerFrame lifts a single-frame operator to a whole clip. The operator
// runs independently on every frame; boxes pass through unchanged, so it is
// only suitable for operations that do not move pixels.
type ApplyPerFrame struct {
	Op func(image.Image) image.Image
}

// NewApplyPerFrame creates a per-frame wrapper around op.
func NewApplyPerFrame(op func(image.Image) image.Image) *ApplyPerFrame {
	return &ApplyPerFrame{Op: op}
}

// Apply implements Transform.
func (t *ApplyPerFrame) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	out := make(clip.Clip, len(c))
	for i, f := range c {
		out[i] = t.Op(f)
	}
	return out, boxes, nil
}

// SubtractMean subtracts a fixed per-channel mean from every pixel of every
// frame, clamping at zero. Grayscale frames use Mean[0]. Boxes pass through
// unchanged.
type SubtractMean struct {
	Mean [3]float64
}

// NewSubtractMean creates a mean subtraction unit with the given per-channel
// mean (R, G, B order).
func NewSubtractMean(mean [3]float64) *SubtractMean {
	return &SubtractMean{Mean: mean}
}

// Apply implements Transform.
func (t *SubtractMean) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	out := make(clip.Clip, len(c))
	for i, f := range c {
		if clip.IsGray(f) {
			src := clip.ConvertLike(f, f).(*image.Gray)
			b := src.Bounds()
			g := image.NewGray(b)
			for p := range src.Pix {
				g.Pix[p] = subByte(src.Pix[p], t.Mean[0])
			}
			out[i] = g
			continue
		}
		n := imaging.Clone(f)
		for p := 0; p < len(n.Pix); p += 4 {
			n.Pix[p+0] = subByte(n.Pix[p+0], t.Mean[0])
			n.Pix[p+1] = subByte(n.Pix[p+1], t.Mean[1])
			n.Pix[p+2] = subByte(n.Pix[p+2], t.Mean[2])
		}
		out[i] = n
	}
	return out, boxes, nil
}

func subByte(v uint8, mean float64) uint8 {
	d := float64(v) - mean
	if d <= 0 {
		return 0
	}
	if d >= 255 {
		return 255
	}
	return uint8(d)
}
