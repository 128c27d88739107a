package detection

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
)

// DType is the semantic scalar type tag carried by tensor specs.
type DType string

const (
	Float32 DType = "float32"
	Float64 DType = "float64"
	Int32   DType = "int32"
	Int64   DType = "int64"
	Bool    DType = "bool"
)

// for saving dtype tags as string values
func (d *DType) Scan(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into DType", value)
	}
	*d = DType(s)
	return nil
}

func (d DType) Value() (driver.Value, error) {
	return string(d), nil
}

// DynamicDim marks a dynamic (usually batch) dimension in a spec shape.
const DynamicDim int64 = -1

// Spec is a named shape/dtype descriptor. It tells a tracer what tensor
// shapes to expect for one named input or output.
type Spec struct {
	Name  string  `json:"name"`
	DType DType   `json:"dtype"`
	Shape []int64 `json:"shape"`
}

// Tensor is a named batch payload exchanged with the forward paths. Raw
// holds the row-major element data in little-endian byte order.
type Tensor struct {
	DType DType   `json:"dtype"`
	Shape []int64 `json:"shape"`
	Raw   []byte  `json:"raw,omitempty"`
}

// Samples is the model input: one tensor per declared input spec name.
type Samples map[string]Tensor

// Prediction is the fixed detection output contract: 3D boxes, integer
// labels and per-box confidences.
type Prediction struct {
	Box3D      Tensor `json:"box3d"`
	Label      Tensor `json:"label"`
	Confidence Tensor `json:"confidence"`
}

// NewFloat32Tensor packs data into a float32 tensor with the given shape.
func NewFloat32Tensor(shape []int64, data []float32) Tensor {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, data)
	return Tensor{DType: Float32, Shape: shape, Raw: buf.Bytes()}
}

// NewInt32Tensor packs data into an int32 tensor with the given shape.
func NewInt32Tensor(shape []int64, data []int32) Tensor {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, data)
	return Tensor{DType: Int32, Shape: shape, Raw: buf.Bytes()}
}

// Float32s unpacks the raw contents as float32 elements.
func (t Tensor) Float32s() ([]float32, error) {
	if t.DType != Float32 {
		return nil, fmt.Errorf("tensor dtype is %s, not %s", t.DType, Float32)
	}
	out := make([]float32, len(t.Raw)/4)
	if err := binary.Read(bytes.NewReader(t.Raw), binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Int32s unpacks the raw contents as int32 elements.
func (t Tensor) Int32s() ([]int32, error) {
	if t.DType != Int32 {
		return nil, fmt.Errorf("tensor dtype is %s, not %s", t.DType, Int32)
	}
	out := make([]int32, len(t.Raw)/4)
	if err := binary.Read(bytes.NewReader(t.Raw), binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}
