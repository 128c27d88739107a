// Package export persists a traced detection model as a graph description
// plus its packed parameters. It owns the on-disk format; the detection
// contract only sees the Tracer interface.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/deepscene/det3d/pkg/detection"
	"github.com/deepscene/det3d/pkg/nn"
)

const (
	producerName    = "det3d"
	producerVersion = "1.0.0"

	graphSuffix  = ".json"
	paramsSuffix = ".params"
)

// ValueInfo describes one named graph input or output.
type ValueInfo struct {
	Name  string          `json:"name"`
	DType detection.DType `json:"dtype"`
	Shape []int64         `json:"shape"`
}

// Node is one layer of the traced module tree.
type Node struct {
	Name      string `json:"name"`
	Op        string `json:"op"`
	NumParams int    `json:"num_params"`
}

// Graph is the serialized model structure.
type Graph struct {
	Producer string      `json:"producer"`
	Version  string      `json:"version"`
	Sensor   string      `json:"sensor"`
	Inputs   []ValueInfo `json:"inputs"`
	Outputs  []ValueInfo `json:"outputs"`
	Nodes    []Node      `json:"nodes"`
}

// GraphExporter serializes model structure and parameters. It does not
// compile computation; the graph records the layer tree and the declared
// input/output specification.
type GraphExporter struct{}

// NewGraphExporter returns a ready exporter.
func NewGraphExporter() *GraphExporter {
	return &GraphExporter{}
}

// TraceAndSave traces the detector against spec and writes
// <path>.json and <path>.params. The parent directory is created when
// missing. I/O failures propagate to the caller.
func (e *GraphExporter) TraceAndSave(ctx context.Context, d detection.Detector, spec []map[string]detection.Spec, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.ExportMode() {
		return errors.New("model is not in export mode")
	}

	graph, err := e.trace(d, spec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create export directory")
	}

	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal graph")
	}
	if err := os.WriteFile(path+graphSuffix, data, 0644); err != nil {
		return errors.Wrap(err, "write graph")
	}

	if err := writeParams(path+paramsSuffix, nn.Parameters(d)); err != nil {
		return errors.Wrap(err, "write params")
	}

	return nil
}

func (e *GraphExporter) trace(d detection.Detector, spec []map[string]detection.Spec) (*Graph, error) {
	if len(spec) != 1 {
		return nil, fmt.Errorf("input spec must be a single-element sequence, got %d", len(spec))
	}
	if len(spec[0]) == 0 {
		return nil, errors.New("input spec declares no inputs")
	}

	graph := &Graph{
		Producer: producerName,
		Version:  producerVersion,
		Sensor:   d.Sensor(),
	}

	// The named entries come back in declaration order via Inputs; the
	// spec map is the exporter argument shape, Inputs keeps the order.
	for _, in := range d.Inputs() {
		entry, ok := spec[0][in.Name]
		if !ok {
			return nil, fmt.Errorf("input %q missing from spec", in.Name)
		}
		graph.Inputs = append(graph.Inputs, ValueInfo{Name: entry.Name, DType: entry.DType, Shape: entry.Shape})
	}
	for _, out := range d.Outputs() {
		graph.Outputs = append(graph.Outputs, ValueInfo{Name: out.Name, DType: out.DType, Shape: out.Shape})
	}

	for i, l := range nn.Sublayers(d, true) {
		op := opName(l)
		numParams := 0
		if p, ok := l.(nn.Parameterized); ok {
			numParams = len(p.Parameters())
		}
		graph.Nodes = append(graph.Nodes, Node{
			Name:      fmt.Sprintf("%s_%d", op, i),
			Op:        op,
			NumParams: numParams,
		})
	}

	return graph, nil
}

func opName(l nn.Layer) string {
	t := reflect.TypeOf(l)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}
