package transform

import (
	"github.com/disintegration/imaging"

	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/geometry"
	"github.com/menta2k/video-augment/pkg/types"
)

// Resize resamples every frame of a clip to a fixed target extent and
// rescales boxes with each frame's own pre-resize extent.
type Resize struct {
	Height int
	Width  int
}

// NewResize creates a resize unit with the given target extent.
func NewResize(height, width int) *Resize {
	return &Resize{Height: height, Width: width}
}

// Apply implements Transform.
func (t *Resize) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	out := make(clip.Clip, len(c))
	var outBoxes types.BoxSet
	if boxes != nil {
		outBoxes = make(types.BoxSet, len(c))
	}

	for i, f := range c {
		b := f.Bounds()
		oldW, oldH := b.Dx(), b.Dy()
		out[i] = clip.ConvertLike(f, imaging.Resize(f, t.Width, t.Height, imaging.Lanczos))

		if boxes != nil {
			row := make([]types.Box, len(boxes[i]))
			for j, bb := range boxes[i] {
				row[j] = geometry.ResizeBox(bb, oldW, oldH, t.Width, t.Height)
			}
			outBoxes[i] = row
		}
	}
	return out, outBoxes, nil
}
