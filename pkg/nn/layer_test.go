package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLayer struct {
	Module
	name string
}

func buildTree() (*stubLayer, []*stubLayer) {
	root := &stubLayer{name: "root"}
	backbone := &stubLayer{name: "backbone"}
	neck := &stubLayer{name: "neck"}
	head := &stubLayer{name: "head"}
	backbone.Register(neck)
	root.Register(backbone, head)
	return root, []*stubLayer{root, backbone, neck, head}
}

func TestSublayers_DepthFirstOrder(t *testing.T) {
	root, all := buildTree()

	layers := Sublayers(root, true)
	assert.Equal(t, len(all), len(layers))
	assert.Equal(t, "root", layers[0].(*stubLayer).name)
	assert.Equal(t, "backbone", layers[1].(*stubLayer).name)
	assert.Equal(t, "neck", layers[2].(*stubLayer).name)
	assert.Equal(t, "head", layers[3].(*stubLayer).name)

	withoutSelf := Sublayers(root, false)
	assert.Equal(t, len(all)-1, len(withoutSelf))
	assert.Equal(t, "backbone", withoutSelf[0].(*stubLayer).name)
}

func TestSetExportMode_PropagatesToEveryNode(t *testing.T) {
	root, all := buildTree()

	SetExportMode(root, true)
	for _, l := range all {
		assert.True(t, l.ExportMode(), l.name)
	}

	SetExportMode(root, false)
	for _, l := range all {
		assert.False(t, l.ExportMode(), l.name)
	}
}

func TestTrainEval_PropagatesToEveryNode(t *testing.T) {
	root, all := buildTree()

	Train(root)
	for _, l := range all {
		assert.True(t, l.Training(), l.name)
	}

	Eval(root)
	for _, l := range all {
		assert.False(t, l.Training(), l.name)
	}
}

type weightedLayer struct {
	Module
	params []Parameter
}

func (l *weightedLayer) Parameters() []Parameter { return l.params }

func TestParameters_CollectsInTraversalOrder(t *testing.T) {
	root := &stubLayer{name: "root"}
	conv := &weightedLayer{params: []Parameter{{Name: "conv.weight", Shape: []int64{4, 4}, Data: make([]float32, 16)}}}
	fc := &weightedLayer{params: []Parameter{{Name: "fc.weight", Shape: []int64{2}, Data: []float32{0.5, -0.5}}}}
	root.Register(conv, fc)

	params := Parameters(root)
	assert.Len(t, params, 2)
	assert.Equal(t, "conv.weight", params[0].Name)
	assert.Equal(t, "fc.weight", params[1].Name)
}
