package tools

// Registry maps every tool kind to its state machine instance. The
// constructor is exhaustive over Kind: activating a kind can never
// miss.
type Registry struct {
	tools  map[Kind]Tool
	active Kind
}

// NewRegistry builds one instance of every tool. The stamp tool is
// created with the given template library.
func NewRegistry(stamps *StampLibrary) *Registry {
	return &Registry{
		active: KindSelect,
		tools: map[Kind]Tool{
			KindSelect:     NewSelectTool(),
			KindDraw:       NewDrawTool(),
			KindShape:      NewShapeTool(),
			KindHighlight:  NewHighlightTool(),
			KindRedact:     NewRedactTool(),
			KindTextBox:    NewTextBoxTool(),
			KindCallout:    NewCalloutTool(),
			KindFormField:  NewFormFieldTool(),
			KindStamp:      NewStampTool(stamps),
			KindTextSelect: NewTextSelectTool(),
		},
	}
}

// Activate switches the active tool, cancelling any gesture in flight
// on the previous one.
func (r *Registry) Activate(kind Kind) {
	if kind == r.active {
		return
	}
	r.tools[r.active].Cancel()
	r.active = kind
}

// ActiveKind returns the active tool's kind.
func (r *Registry) ActiveKind() Kind {
	return r.active
}

// Active returns the active tool.
func (r *Registry) Active() Tool {
	return r.tools[r.active]
}

// Get returns the tool for a kind.
func (r *Registry) Get(kind Kind) Tool {
	return r.tools[kind]
}
