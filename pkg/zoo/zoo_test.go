package zoo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/export"
	"github.com/deepscene/det3d/pkg/nn"
	"github.com/deepscene/det3d/pkg/registry"
)

func TestZoo_Registered(t *testing.T) {
	ids := registry.List()
	assert.Contains(t, ids, "pillar_net")
	assert.Contains(t, ids, "mono_cam")

	d, err := registry.New("pillar_net")
	require.NoError(t, err)
	assert.Equal(t, detection.SensorLidar, d.Sensor())
}

func TestPillarNet_Contract(t *testing.T) {
	m := NewPillarNet()

	outputs := m.Outputs()
	assert.Equal(t, []int64{-1, 9}, outputs[0].Shape)
	assert.Equal(t, "pillarnet", detection.SaveName(m))

	samples := detection.Samples{
		"points": detection.NewFloat32Tensor([]int64{2, 4}, make([]float32, 8)),
	}
	pred, err := detection.Forward(m, samples)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 9}, pred.Box3D.Shape)

	_, err = detection.Forward(m, detection.Samples{})
	assert.Error(t, err)
}

func TestMonoCam_Contract(t *testing.T) {
	m := NewMonoCam()

	outputs := m.Outputs()
	assert.Equal(t, []int64{-1, 7}, outputs[0].Shape)
	assert.Equal(t, detection.SensorCamera, m.Sensor())

	nn.Train(m)
	samples := detection.Samples{
		"image": detection.NewFloat32Tensor([]int64{1, 3, 224, 224}, make([]float32, 3*224*224)),
	}
	pred, err := detection.Forward(m, samples)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 7}, pred.Box3D.Shape)
}

func TestZoo_ExportRoundTrip(t *testing.T) {
	m := NewPillarNet()

	path, err := detection.Export(context.Background(), m, export.NewGraphExporter(), t.TempDir(), "")
	require.NoError(t, err)

	params, err := export.ReadParams(path + ".params")
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "pillar_encoder.weight", params[0].Name)
	assert.False(t, m.ExportMode())
}
