package zoo

import (
	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/nn"
)

// MonoCam is the monocular camera variant.
type MonoCam struct {
	detection.BaseModel
}

// imageBackbone extracts features from the input image batch.
type imageBackbone struct {
	nn.Module

	weight nn.Parameter
}

func newImageBackbone() *imageBackbone {
	return &imageBackbone{
		weight: nn.Parameter{
			Name:  "backbone.conv1.weight",
			Shape: []int64{16, 3, 3, 3},
			Data:  make([]float32, 16*3*3*3),
		},
	}
}

func (l *imageBackbone) Parameters() []nn.Parameter {
	return []nn.Parameter{l.weight}
}

// NewMonoCam constructs the variant with its sublayers registered.
func NewMonoCam() *MonoCam {
	m := &MonoCam{BaseModel: detection.NewBaseModel(false)}
	m.Register(newImageBackbone())
	return m
}

func (m *MonoCam) Inputs() []detection.Spec {
	return []detection.Spec{
		{Name: "image", DType: detection.Float32, Shape: []int64{detection.DynamicDim, 3, 224, 224}},
	}
}

func (m *MonoCam) Sensor() string { return detection.SensorCamera }

func (m *MonoCam) TrainForward(samples detection.Samples) (*detection.Prediction, error) {
	if err := requireInputs(m, samples); err != nil {
		return nil, err
	}
	return emptyPrediction(m), nil
}

func (m *MonoCam) TestForward(samples detection.Samples) (*detection.Prediction, error) {
	if err := requireInputs(m, samples); err != nil {
		return nil, err
	}
	return emptyPrediction(m), nil
}

func (m *MonoCam) ExportForward(samples detection.Samples) (*detection.Prediction, error) {
	if err := requireInputs(m, samples); err != nil {
		return nil, err
	}
	return emptyPrediction(m), nil
}
