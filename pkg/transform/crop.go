package transform

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/geometry"
	"github.com/menta2k/video-augment/pkg/types"
)

// Crop cuts a fixed window out of every frame. Boxes are clipped against the
// window; boxes with no remaining overlap become the types.OutOfBounds
// sentinel. Clipped boxes stay in the original frame's coordinates (see
// geometry.CropBox).
type Crop struct {
	window types.Box
}

// NewCrop creates a crop unit with a fixed window.
func NewCrop(window types.Box) *Crop {
	return &Crop{window: window}
}

// Window returns the current crop window.
func (t *Crop) Window() types.Box {
	return t.window
}

// SetWindow replaces the crop window. RandomCrop and CenterCrop use this to
// delegate the actual cropping to a shared Crop unit.
func (t *Crop) SetWindow(window types.Box) {
	t.window = window
}

// Apply implements Transform.
func (t *Crop) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	rect := image.Rect(t.window.XMin, t.window.YMin, t.window.XMax, t.window.YMax)
	out := make(clip.Clip, len(c))
	var outBoxes types.BoxSet
	if boxes != nil {
		outBoxes = make(types.BoxSet, len(c))
	}

	for i, f := range c {
		out[i] = clip.ConvertLike(f, imaging.Crop(f, rect))

		if boxes != nil {
			row := make([]types.Box, len(boxes[i]))
			for j, bb := range boxes[i] {
				row[j] = geometry.CropBox(bb, t.window)
			}
			outBoxes[i] = row
		}
	}
	return out, outBoxes, nil
}

// RandomCrop samples one uniform-random crop origin per call, fitting the
// crop inside the first frame's extent, and applies the same window to every
// frame. The window is re-sampled on every Apply; Window returns the last
// sampled one so a caller can apply the identical crop to a second modality.
type RandomCrop struct {
	Width  int
	Height int

	rng    *rand.Rand
	crop   *Crop
	window types.Box
}

// NewRandomCrop creates a random crop unit seeded from the global random
// source.
func NewRandomCrop(width, height int) *RandomCrop {
	return NewRandomCropWithSource(width, height, rand.NewSource(rand.Int63()))
}

// NewRandomCropWithSource creates a random crop unit with a caller-supplied
// source, for deterministic sampling.
func NewRandomCropWithSource(width, height int, src rand.Source) *RandomCrop {
	return &RandomCrop{
		Width:  width,
		Height: height,
		rng:    rand.New(src),
		crop:   NewCrop(types.Box{}),
	}
}

// Window returns the window sampled by the most recent Apply call.
func (t *RandomCrop) Window() types.Box {
	return t.window
}

// Apply implements Transform.
func (t *RandomCrop) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	if len(c) == 0 {
		return c, boxes, nil
	}
	w, h := c.Extent()
	if t.Width >= w || t.Height >= h {
		return nil, nil, fmt.Errorf("%w: random crop %dx%d, frame %dx%d", ErrInvalidCropSize, t.Width, t.Height, w, h)
	}

	xMin := t.rng.Intn(w - t.Width)
	yMin := t.rng.Intn(h - t.Height)
	t.window = types.Box{XMin: xMin, YMin: yMin, XMax: xMin + t.Width, YMax: yMin + t.Height}
	t.crop.SetWindow(t.window)
	return t.crop.Apply(c, boxes)
}

// CenterCrop cuts a window of fixed size centered on the first frame's
// extent out of every frame.
type CenterCrop struct {
	Width  int
	Height int

	crop *Crop
}

// NewCenterCrop creates a center crop unit.
func NewCenterCrop(width, height int) *CenterCrop {
	return &CenterCrop{Width: width, Height: height, crop: NewCrop(types.Box{})}
}

// Window returns the window computed by the most recent Apply call.
func (t *CenterCrop) Window() types.Box {
	return t.crop.Window()
}

// Apply implements Transform.
func (t *CenterCrop) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	if len(c) == 0 {
		return c, boxes, nil
	}
	w, h := c.Extent()
	if t.Width > w || t.Height > h {
		return nil, nil, fmt.Errorf("%w: center crop %dx%d, frame %dx%d", ErrInvalidCropSize, t.Width, t.Height, w, h)
	}

	xMin := (w - t.Width) / 2
	yMin := (h - t.Height) / 2
	t.crop.SetWindow(types.Box{XMin: xMin, YMin: yMin, XMax: xMin + t.Width, YMax: yMin + t.Height})
	return t.crop.Apply(c, boxes)
}
