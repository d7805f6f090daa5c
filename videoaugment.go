// Package videoaugment provides deterministic, composable geometric and
// photometric augmentation of video clips together with their per-frame
// bounding box annotations.
//
// Every transform that changes frame geometry (resize, crop, flip, rotate)
// recomputes the bounding boxes so they stay consistent with the transformed
// pixels: scaling uses per-axis ratios with integer truncation, cropping
// clips boxes against the window and marks boxes with no remaining overlap
// with a sentinel value, flips mirror coordinates, and rotation produces the
// axis-aligned hull of the rotated corners.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		videoaugment "github.com/menta2k/video-augment"
//		"github.com/menta2k/video-augment/pkg/transform"
//		"github.com/menta2k/video-augment/pkg/types"
//	)
//
//	func main() {
//		aug := videoaugment.New(
//			transform.NewResize(256, 256),
//			transform.NewRandomCrop(224, 224),
//			transform.NewRandomFlip(transform.Horizontal, 0.5),
//		)
//
//		// frames is a []image.Image from your data loader; boxes is a
//		// types.BoxSet indexed [frame][object].
//		clip, boxes, err := aug.Apply(frames, boxes)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		tensor, err := clip.Stack()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("stacked clip shape %v, %d boxes\n", tensor.Shape, len(boxes))
//	}
//
// The package consists of four main components:
//
// 1. Clip (pkg/clip): canonical frame representation and final array stacking
// 2. Geometry (pkg/geometry): pure box-coordinate math
// 3. Transform (pkg/transform): the transform units and pipeline composition
// 4. Frameio (pkg/frameio): frame and box file I/O for the CLI collaborator
//
// The core itself is single threaded and never logs or retries; all errors
// are returned to the caller. Randomized units keep the parameters sampled by
// their latest call so the same random choice can be replayed against a
// paired modality, which also means one unit instance must not be shared by
// concurrent workers.
package videoaugment

import (
	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/transform"
	"github.com/menta2k/video-augment/pkg/types"
)

// Version of the video augment library
const Version = "1.0.0"

// Augmentor is a high-level wrapper binding format normalization, a
// transform pipeline and final stacking together.
type Augmentor struct {
	pipeline transform.Pipeline
}

// New creates an Augmentor from an ordered list of transform units.
func New(units ...transform.Transform) *Augmentor {
	return &Augmentor{pipeline: transform.Compose(units...)}
}

// Pipeline returns the underlying pipeline.
func (a *Augmentor) Pipeline() transform.Pipeline {
	return a.pipeline
}

// Apply normalizes an input frame sequence (see clip.Normalize for the
// accepted representations) and runs the pipeline over it. A nil box set is
// passed through as nil.
func (a *Augmentor) Apply(frames interface{}, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	c, err := clip.Normalize(frames)
	if err != nil {
		return nil, nil, err
	}
	return a.pipeline.Apply(c, boxes)
}

// ApplyStacked runs Apply and converts the results to their array-backed
// form: the clip as a [frame, channel, height, width] (color) or
// [frame, height, width] (grayscale) float32 tensor, the boxes as a
// [frame, object, 4] tensor. The box tensor is zero valued when no boxes
// were supplied.
func (a *Augmentor) ApplyStacked(frames interface{}, boxes types.BoxSet) (types.Tensor, types.Tensor, error) {
	c, outBoxes, err := a.Apply(frames, boxes)
	if err != nil {
		return types.Tensor{}, types.Tensor{}, err
	}
	t, err := c.Stack()
	if err != nil {
		return types.Tensor{}, types.Tensor{}, err
	}
	var boxTensor types.Tensor
	if outBoxes != nil {
		boxTensor = outBoxes.Tensor()
	}
	return t, boxTensor, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
