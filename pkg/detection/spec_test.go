package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTensor_Float32RoundTrip(t *testing.T) {
	in := []float32{0.5, -1.25, 3}
	tensor := NewFloat32Tensor([]int64{3}, in)
	assert.Equal(t, Float32, tensor.DType)
	assert.Equal(t, 12, len(tensor.Raw))

	out, err := tensor.Float32s()
	assert.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = tensor.Int32s()
	assert.Error(t, err)
}

func TestTensor_Int32RoundTrip(t *testing.T) {
	in := []int32{0, 1, 2, 7}
	tensor := NewInt32Tensor([]int64{4}, in)

	out, err := tensor.Int32s()
	assert.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = tensor.Float32s()
	assert.Error(t, err)
}

func TestDType_ScanValue(t *testing.T) {
	v, err := Float32.Value()
	assert.NoError(t, err)
	assert.Equal(t, "float32", v)

	var d DType
	assert.NoError(t, d.Scan("int64"))
	assert.Equal(t, Int64, d)

	assert.Error(t, d.Scan(42))
}
