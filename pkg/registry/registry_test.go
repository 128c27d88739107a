package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepscene/det3d/pkg/detection"
)

type SmokeNet struct {
	detection.BaseModel
}

func (m *SmokeNet) Inputs() []detection.Spec {
	return []detection.Spec{{Name: "points", DType: detection.Float32, Shape: []int64{-1, 4}}}
}

func (m *SmokeNet) Sensor() string { return detection.SensorLidar }

func (m *SmokeNet) TrainForward(detection.Samples) (*detection.Prediction, error) {
	return &detection.Prediction{}, nil
}

func (m *SmokeNet) TestForward(detection.Samples) (*detection.Prediction, error) {
	return &detection.Prediction{}, nil
}

func (m *SmokeNet) ExportForward(detection.Samples) (*detection.Prediction, error) {
	return &detection.Prediction{}, nil
}

func build() (detection.Detector, error) {
	return &SmokeNet{BaseModel: detection.NewBaseModel(false)}, nil
}

func TestRegister_NormalizesAndBuilds(t *testing.T) {
	Register("SmokeNet", build)

	d, err := New("smoke_net")
	require.NoError(t, err)
	assert.Equal(t, detection.SensorLidar, d.Sensor())

	// Display name resolves to the same ID.
	d2, err := New("SmokeNet")
	require.NoError(t, err)
	assert.NotSame(t, d, d2)

	assert.Contains(t, List(), "smoke_net")
}

func TestRegister_DuplicatePanics(t *testing.T) {
	Register("DupNet", build)
	assert.Panics(t, func() { Register("dup_net", build) })
}

func TestNew_UnknownDetector(t *testing.T) {
	_, err := New("no_such_net")
	assert.Error(t, err)
}
