package transform

import (
	"fmt"

	"github.com/menta2k/video-augment/pkg/clip"
	"github.com/menta2k/video-augment/pkg/types"
)

// Pipeline applies an ordered sequence of transform units, feeding each
// unit's output to the next. The box set, when present, is validated against
// the clip once on entry; after that units trust the invariant. The first
// failing unit aborts the whole sequence with no partial results.
type Pipeline []Transform

// Compose builds a pipeline from an ordered list of units.
func Compose(units ...Transform) Pipeline {
	return Pipeline(units)
}

// Apply runs the pipeline over a clip and its optional box set.
func (p Pipeline) Apply(c clip.Clip, boxes types.BoxSet) (clip.Clip, types.BoxSet, error) {
	if boxes != nil {
		if err := boxes.Validate(len(c)); err != nil {
			return nil, nil, err
		}
	}
	for i, unit := range p {
		var err error
		c, boxes, err = unit.Apply(c, boxes)
		if err != nil {
			return nil, nil, fmt.Errorf("pipeline unit %d (%T): %w", i, unit, err)
		}
	}
	return c, boxes, nil
}
