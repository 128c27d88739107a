package detection

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/deepscene/det3d/pkg/nn"
)

// Sensor tags by convention. Sensor() may return any string; these cover
// the modalities the model zoo ships.
const (
	SensorCamera = "camera"
	SensorLidar  = "lidar"
)

// Detector is the contract every 3D detection model variant fulfils.
// Inputs, Sensor and the three forward paths are supplied by the concrete
// model; the nn.Layer surface and Outputs come from the embedded BaseModel.
type Detector interface {
	nn.Layer

	// Inputs describes the model inputs. It is used to construct the
	// tracing specification for export.
	Inputs() []Spec

	// Outputs describes the fixed model outputs.
	Outputs() []Spec

	// Sensor returns the modality the model consumes, usually
	// SensorCamera or SensorLidar.
	Sensor() string

	// TrainForward computes the training path.
	TrainForward(samples Samples) (*Prediction, error)

	// TestForward computes the evaluation path.
	TestForward(samples Samples) (*Prediction, error)

	// ExportForward computes the path suitable for tracing and
	// serialization.
	ExportForward(samples Samples) (*Prediction, error)
}

// Tracer converts a detector into a fixed serializable graph given its
// input specification and persists it under path. Implementations own the
// on-disk format.
type Tracer interface {
	TraceAndSave(ctx context.Context, d Detector, spec []map[string]Spec, path string) error
}

// BaseModel is the embeddable base for detectors. BoxWithVelocity is fixed
// at construction and determines the output box dimensionality: 7 fields
// normally, 9 when the boxes carry velocity.
type BaseModel struct {
	nn.Module

	BoxWithVelocity bool
}

// NewBaseModel returns a base with the box dimensionality fixed.
func NewBaseModel(boxWithVelocity bool) BaseModel {
	return BaseModel{BoxWithVelocity: boxWithVelocity}
}

// BoxDim returns the number of fields per output box.
func (m *BaseModel) BoxDim() int64 {
	if m.BoxWithVelocity {
		return 9
	}
	return 7
}

// Outputs returns the three fixed output descriptors.
func (m *BaseModel) Outputs() []Spec {
	return []Spec{
		{Name: "box3d", DType: Float32, Shape: []int64{DynamicDim, m.BoxDim()}},
		{Name: "label", DType: Int32, Shape: []int64{DynamicDim}},
		{Name: "confidence", DType: Float32, Shape: []int64{DynamicDim}},
	}
}

// Forward routes samples to exactly one of the detector's computation
// paths: export when export mode is on, training when the tree is in
// training mode, testing otherwise.
func Forward(d Detector, samples Samples) (*Prediction, error) {
	if d.ExportMode() {
		return d.ExportForward(samples)
	}
	if d.Training() {
		return d.TrainForward(samples)
	}
	return d.TestForward(samples)
}

// InputSpec derives the tracing specification from the detector's declared
// inputs: each entry keyed by name, wrapped in the single-element sequence
// the tracer expects.
func InputSpec(d Detector) []map[string]Spec {
	inputs := d.Inputs()
	entries := make(map[string]Spec, len(inputs))
	for _, in := range inputs {
		entries[in.Name] = in
	}
	return []map[string]Spec{entries}
}

// Exporting runs fn with export mode enabled on the whole module tree and
// restores it on every exit path, error and panic exits included.
func Exporting(d Detector, fn func() error) error {
	nn.SetExportMode(d, true)
	defer nn.SetExportMode(d, false)
	return fn()
}

// SaveName derives the default export filename from the detector's
// concrete type name, lower-cased.
func SaveName(d Detector) string {
	t := reflect.TypeOf(d)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// Export resolves the filename (explicit name or SaveName), enters the
// exporting scope and asks the tracer to trace the detector against its
// input specification and serialize it under saveDir. Tracer failures
// propagate unchanged; there is no retry or recovery here.
func Export(ctx context.Context, d Detector, tracer Tracer, saveDir, name string) (string, error) {
	if name == "" {
		name = SaveName(d)
	}
	path := filepath.Join(saveDir, name)
	err := Exporting(d, func() error {
		return tracer.TraceAndSave(ctx, d, InputSpec(d), path)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
