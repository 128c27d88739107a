// Package zoo registers the reference detector variants bundled with the
// backend. The forward paths validate the declared contract and return
// empty predictions; deployments plug real computation behind the same
// registrations.
package zoo

import (
	"fmt"

	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/registry"
)

func init() {
	registry.Register("PillarNet", func() (detection.Detector, error) {
		return NewPillarNet(), nil
	})
	registry.Register("MonoCam", func() (detection.Detector, error) {
		return NewMonoCam(), nil
	})
}

// requireInputs checks that every declared input is present in samples.
func requireInputs(d detection.Detector, samples detection.Samples) error {
	for _, in := range d.Inputs() {
		if _, ok := samples[in.Name]; !ok {
			return fmt.Errorf("missing input %q", in.Name)
		}
	}
	return nil
}

// emptyPrediction returns a zero-box prediction matching the output
// contract of d.
func emptyPrediction(d detection.Detector) *detection.Prediction {
	var boxDim int64 = 7
	for _, out := range d.Outputs() {
		if out.Name == "box3d" && len(out.Shape) == 2 {
			boxDim = out.Shape[1]
		}
	}
	return &detection.Prediction{
		Box3D:      detection.NewFloat32Tensor([]int64{0, boxDim}, nil),
		Label:      detection.NewInt32Tensor([]int64{0}, nil),
		Confidence: detection.NewFloat32Tensor([]int64{0}, nil),
	}
}
