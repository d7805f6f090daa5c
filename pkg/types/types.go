package types

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when a BoxSet does not line up with the clip
// it annotates: its frame count differs from the clip length, or the number
// of object slots differs between frames.
var ErrShapeMismatch = errors.New("box set shape does not match clip")

// Box is an axis-aligned bounding box in pixel coordinates.
// XMin <= XMax and YMin <= YMax are expected by all operations but are not
// enforced; callers own that precondition.
type Box struct {
	XMin int `json:"xmin"`
	YMin int `json:"ymin"`
	XMax int `json:"xmax"`
	YMax int `json:"ymax"`
}

// OutOfBounds is the sentinel value signaling a box with no remaining
// overlap after cropping. It is a value, not an error: sentinel boxes stay
// in the BoxSet and must be filtered by downstream consumers.
var OutOfBounds = Box{XMin: -1, YMin: -1, XMax: -1, YMax: -1}

// OutOfBounds reports whether the box is the out-of-bounds sentinel.
func (b Box) OutOfBounds() bool {
	return b == OutOfBounds
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int {
	return b.XMax - b.XMin
}

// Height returns the vertical extent of the box.
func (b Box) Height() int {
	return b.YMax - b.YMin
}

// BoxSet holds one box per frame per object slot, indexed [frame][object].
// The object slot count is fixed across frames: slot j in every frame is the
// same object track.
type BoxSet [][]Box

// Validate checks that the set has one entry per clip frame and that every
// frame carries the same number of object slots.
func (s BoxSet) Validate(clipLen int) error {
	if len(s) != clipLen {
		return fmt.Errorf("%w: %d box frames for %d clip frames", ErrShapeMismatch, len(s), clipLen)
	}
	if len(s) == 0 {
		return nil
	}
	objects := len(s[0])
	for i, frame := range s {
		if len(frame) != objects {
			return fmt.Errorf("%w: frame 0 has %d object slots, frame %d has %d", ErrShapeMismatch, objects, i, len(frame))
		}
	}
	return nil
}

// Clone returns a deep copy of the set.
func (s BoxSet) Clone() BoxSet {
	if s == nil {
		return nil
	}
	out := make(BoxSet, len(s))
	for i, frame := range s {
		out[i] = make([]Box, len(frame))
		copy(out[i], frame)
	}
	return out
}

// Tensor converts the set to its array-backed form with shape
// [frame, object, 4], coordinate order xmin, ymin, xmax, ymax.
func (s BoxSet) Tensor() Tensor {
	objects := 0
	if len(s) > 0 {
		objects = len(s[0])
	}
	t := NewTensor(len(s), objects, 4)
	for i, frame := range s {
		for j, b := range frame {
			base := (i*objects + j) * 4
			t.Data[base+0] = float32(b.XMin)
			t.Data[base+1] = float32(b.YMin)
			t.Data[base+2] = float32(b.XMax)
			t.Data[base+3] = float32(b.YMax)
		}
	}
	return t
}

// Tensor is a dense row-major float32 array with an explicit shape. It is
// the final layout handed to training and eval collaborators.
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// NewTensor allocates a zero-filled tensor with the given shape.
func NewTensor(shape ...int) Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return Tensor{Shape: append([]int{}, shape...), Data: make([]float32, n)}
}

// At returns the element at the given multi-dimensional index.
func (t Tensor) At(idx ...int) float32 {
	return t.Data[t.offset(idx)]
}

// Set stores v at the given multi-dimensional index.
func (t Tensor) Set(v float32, idx ...int) {
	t.Data[t.offset(idx)] = v
}

func (t Tensor) offset(idx []int) int {
	if len(idx) != len(t.Shape) {
		panic(fmt.Sprintf("tensor index rank %d for shape %v", len(idx), t.Shape))
	}
	off := 0
	for i, x := range idx {
		off = off*t.Shape[i] + x
	}
	return off
}
