package nn

// Layer is a node in a module tree. A model owns its sublayers exclusively;
// the same Layer value must not be registered under two parents.
type Layer interface {
	// Children returns the direct sublayers of this node.
	Children() []Layer

	// Training reports whether this node is in training mode.
	Training() bool

	// SetTraining sets the training flag on this node only.
	SetTraining(mode bool)

	// ExportMode reports whether this node is in export mode.
	ExportMode() bool

	// SetExportMode sets the export flag on this node only. Tree-wide
	// propagation is done by the package-level SetExportMode.
	SetExportMode(mode bool)
}

// Parameter is a named weight tensor owned by a layer.
type Parameter struct {
	Name  string    `json:"name"`
	Shape []int64   `json:"shape"`
	Data  []float32 `json:"data"`
}

// Parameterized is implemented by layers that carry learnable weights.
type Parameterized interface {
	Parameters() []Parameter
}

// Module is the embeddable base for layers. The zero value is usable: not
// training, not exporting, no children.
type Module struct {
	children   []Layer
	training   bool
	exportMode bool
}

// Register appends sublayers to this module. Registration order is the
// traversal order reported by Sublayers.
func (m *Module) Register(children ...Layer) {
	m.children = append(m.children, children...)
}

func (m *Module) Children() []Layer { return m.children }

func (m *Module) Training() bool { return m.training }

func (m *Module) SetTraining(mode bool) { m.training = mode }

func (m *Module) ExportMode() bool { return m.exportMode }

func (m *Module) SetExportMode(mode bool) { m.exportMode = mode }

// Sublayers returns every layer under root in depth-first, registration
// order. When includeSelf is true, root itself is the first element.
func Sublayers(root Layer, includeSelf bool) []Layer {
	var layers []Layer
	if includeSelf {
		layers = append(layers, root)
	}
	for _, child := range root.Children() {
		layers = append(layers, Sublayers(child, true)...)
	}
	return layers
}

// SetExportMode sets the export flag on root and every descendant. The flag
// is shared mutable state across the tree; callers must not run this
// concurrently with a forward pass or another export on the same tree.
func SetExportMode(root Layer, mode bool) {
	for _, l := range Sublayers(root, true) {
		l.SetExportMode(mode)
	}
}

// Train puts root and every descendant into training mode.
func Train(root Layer) {
	for _, l := range Sublayers(root, true) {
		l.SetTraining(true)
	}
}

// Eval puts root and every descendant into evaluation mode.
func Eval(root Layer) {
	for _, l := range Sublayers(root, true) {
		l.SetTraining(false)
	}
}

// Parameters collects the parameters of root and every descendant in
// traversal order.
func Parameters(root Layer) []Parameter {
	var params []Parameter
	for _, l := range Sublayers(root, true) {
		if p, ok := l.(Parameterized); ok {
			params = append(params, p.Parameters()...)
		}
	}
	return params
}
