package transform

import (
	"fmt"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/geometry"
	"github.com/menta2k/video-augment/pkg/types"
)

// Direction selects the mirror axis of a flip.
type Direction string

const (
	// Horizontal mirrors left-right.
	Horizontal Direction = "horizontal"
	// Vertical mirrors top-bottom.
	Vertical Direction = "vertical"
)

// RandomFlip mirrors a whole clip, with probability, along one axis. One
// value is sampled per call and the flip happens iff that value is below the
// configured probability, so all frames and boxes of a clip flip together.
type RandomFlip struct {
	Direction   Direction
	Probability float64

	rng     *rand.Rand
	flipped bool
}

// NewRandomFlip creates a flip unit seeded from the global random source.
// A probability of 1 flips every clip, 0 never flips.
func NewRandomFlip(direction Direction, probability float64) *RandomFlip {
	return NewRandomFlipWithSource(direction, probability, rand.NewSource(rand.Int63()))
}

// NewRandomFlipWithSource creates a flip unit with a caller-supplied source,
// for deterministic sampling.
func NewRandomFlipWithSource(direction Direction, probability float64, src rand.Source) *RandomFlip {
	return &RandomFlip{Direction: direction, Probability: probability, rng: rand.New(src)}
}

// Flipped reports whether the most recent Apply call flipped the clip.
func (t *RandomFlip) Flipped() bool {
	return t.flipped
}

// Apply implements Transform.
func (t *RandomFlip) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	if t.Direction != Horizontal && t.Direction != Vertical {
		return nil, nil, fmt.Errorf("unsupported flip direction %q", t.Direction)
	}

	t.flipped = t.rng.Float64() < t.Probability
	if !t.flipped {
		return c, boxes, nil
	}

	out := make(clip.Clip, len(c))
	var outBoxes types.BoxSet
	if boxes != nil {
		outBoxes = make(types.BoxSet, len(c))
	}

	for i, f := range c {
		b := f.Bounds()
		if t.Direction == Horizontal {
			out[i] = clip.ConvertLike(f, imaging.FlipH(f))
		} else {
			out[i] = clip.ConvertLike(f, imaging.FlipV(f))
		}

		if boxes != nil {
			row := make([]types.Box, len(boxes[i]))
			for j, bb := range boxes[i] {
				if t.Direction == Horizontal {
					row[j] = geometry.FlipBoxH(bb, b.Dx())
				} else {
					row[j] = geometry.FlipBoxV(bb, b.Dy())
				}
			}
			outBoxes[i] = row
		}
	}
	return out, outBoxes, nil
}
