package zoo

import (
	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/nn"
)

// PillarNet is the pillar-based lidar variant. Its boxes carry velocity.
type PillarNet struct {
	detection.BaseModel
}

// pillarEncoder scatters raw points into pillar features.
type pillarEncoder struct {
	nn.Module

	weight nn.Parameter
}

func newPillarEncoder() *pillarEncoder {
	return &pillarEncoder{
		weight: nn.Parameter{
			Name:  "pillar_encoder.weight",
			Shape: []int64{64, 9},
			Data:  make([]float32, 64*9),
		},
	}
}

func (l *pillarEncoder) Parameters() []nn.Parameter {
	return []nn.Parameter{l.weight}
}

// NewPillarNet constructs the variant with its sublayers registered.
func NewPillarNet() *PillarNet {
	m := &PillarNet{BaseModel: detection.NewBaseModel(true)}
	m.Register(newPillarEncoder())
	return m
}

func (m *PillarNet) Inputs() []detection.Spec {
	return []detection.Spec{
		{Name: "points", DType: detection.Float32, Shape: []int64{detection.DynamicDim, 4}},
	}
}

func (m *PillarNet) Sensor() string { return detection.SensorLidar }

func (m *PillarNet) TrainForward(samples detection.Samples) (*detection.Prediction, error) {
	if err := requireInputs(m, samples); err != nil {
		return nil, err
	}
	return emptyPrediction(m), nil
}

func (m *PillarNet) TestForward(samples detection.Samples) (*detection.Prediction, error) {
	if err := requireInputs(m, samples); err != nil {
		return nil, err
	}
	return emptyPrediction(m), nil
}

func (m *PillarNet) ExportForward(samples detection.Samples) (*detection.Prediction, error) {
	if err := requireInputs(m, samples); err != nil {
		return nil, err
	}
	return emptyPrediction(m), nil
}
