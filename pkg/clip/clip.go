// Package clip defines the canonical in-memory representation of a video
// sample and the format normalization shared by all transform units.
//
// A Clip is an ordered sequence of frames. Canonical frames are either
// *image.NRGBA (color) or *image.Gray (grayscale); Normalize converts the
// accepted input representations into that form, and Stack converts a
// processed clip into the final array layout consumed by training and eval
// collaborators.
package clip

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/menta2k/video-augment/pkg/types"
)

// ErrUnsupportedFormat is returned when an input clip or frame cannot be
// classified as one of the accepted representations.
var ErrUnsupportedFormat = errors.New("unsupported clip format")

// Clip is an ordered sequence of frames of one video sample. All frames
// share the same extent until a resize or crop changes them uniformly.
type Clip []image.Image

// Len returns the number of frames.
func (c Clip) Len() int {
	return len(c)
}

// Extent returns the width and height of the first frame, or zeros for an
// empty clip.
func (c Clip) Extent() (width, height int) {
	if len(c) == 0 {
		return 0, 0
	}
	b := c[0].Bounds()
	return b.Dx(), b.Dy()
}

// Clone returns a deep copy of the clip. Each frame keeps its canonical
// color class.
func (c Clip) Clone() Clip {
	out := make(Clip, len(c))
	for i, f := range c {
		out[i] = ConvertLike(f, imaging.Clone(f))
	}
	return out
}

// Normalize converts a heterogeneous frame sequence into a canonical Clip.
//
// Accepted representations are a sequence of decoded images ([]image.Image
// or Clip) and a sequence of 2-D grayscale sample matrices indexed
// [frame][row][col]. Multi-channel numeric frames and anything else fail
// with ErrUnsupportedFormat.
func Normalize(frames interface{}) (Clip, error) {
	switch v := frames.(type) {
	case Clip:
		return v, nil
	case []image.Image:
		return Clip(v), nil
	case [][][]float64:
		return FromMatrices(v)
	case [][][][]float64:
		return nil, fmt.Errorf("%w: multi-channel numeric frames are not supported", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFormat, frames)
	}
}

// FromMatrices converts a sequence of 2-D sample matrices into a grayscale
// clip. Samples are interpreted as 8-bit intensities: values are rounded and
// clamped to [0, 255].
func FromMatrices(frames [][][]float64) (Clip, error) {
	out := make(Clip, len(frames))
	for i, m := range frames {
		if len(m) == 0 || len(m[0]) == 0 {
			return nil, fmt.Errorf("%w: frame %d has no samples", ErrUnsupportedFormat, i)
		}
		h, w := len(m), len(m[0])
		g := image.NewGray(image.Rect(0, 0, w, h))
		for y, row := range m {
			if len(row) != w {
				return nil, fmt.Errorf("%w: frame %d row %d has %d samples, want %d", ErrUnsupportedFormat, i, y, len(row), w)
			}
			for x, v := range row {
				g.Pix[y*g.Stride+x] = clampByte(v)
			}
		}
		out[i] = g
	}
	return out, nil
}

// IsGray reports whether a frame is canonical grayscale.
func IsGray(img image.Image) bool {
	if _, ok := img.(*image.Gray); ok {
		return true
	}
	return img.ColorModel() == color.GrayModel
}

// ConvertLike re-encodes img into the same canonical class as ref: frames
// that started grayscale stay *image.Gray, everything else becomes
// *image.NRGBA anchored at the origin. Transform units use this after every
// pixel operation so the color class of a clip survives the whole pipeline.
func ConvertLike(ref, img image.Image) image.Image {
	if IsGray(ref) {
		if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
			return g
		}
		b := img.Bounds()
		g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
		return g
	}
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// Stack converts the clip into a single tensor with axis order
// [frame, channel, height, width] for color clips or [frame, height, width]
// for grayscale clips, promoting samples to float32. The clip must be
// non-empty and all frames must share one extent.
func (c Clip) Stack() (types.Tensor, error) {
	if len(c) == 0 {
		return types.Tensor{}, fmt.Errorf("cannot stack an empty clip")
	}
	w, h := c.Extent()
	for i, f := range c {
		if b := f.Bounds(); b.Dx() != w || b.Dy() != h {
			return types.Tensor{}, fmt.Errorf("cannot stack clip: frame %d is %dx%d, want %dx%d", i, b.Dx(), b.Dy(), w, h)
		}
	}

	if IsGray(c[0]) {
		t := types.NewTensor(len(c), h, w)
		for i, f := range c {
			g := ConvertLike(c[0], f).(*image.Gray)
			for y := 0; y < h; y++ {
				row := (i*h + y) * w
				for x := 0; x < w; x++ {
					t.Data[row+x] = float32(g.Pix[y*g.Stride+x])
				}
			}
		}
		return t, nil
	}

	t := types.NewTensor(len(c), 3, h, w)
	for i, f := range c {
		n := imaging.Clone(f)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p := y*n.Stride + x*4
				for ch := 0; ch < 3; ch++ {
					t.Data[((i*3+ch)*h+y)*w+x] = float32(n.Pix[p+ch])
				}
			}
		}
	}
	return t, nil
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
