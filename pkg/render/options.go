package render

// Mode selects between read-only presentation and an editor.
type Mode string

const (
	ModeDisplay Mode = "display"
	ModeEdit    Mode = "edit"
)

// RenderOptions carry per-request data renderers use without mutating the
// form model.
type RenderOptions struct {
	// Mode defaults to ModeDisplay.
	Mode Mode
	// Title overrides the heading derived from the model name.
	Title string
	// Action and Method describe where an editor submits. Method defaults
	// to POST.
	Action string
	Method string
	// Values holds current values keyed by field name; nested values use
	// map[string]any.
	Values map[string]any
	// Errors holds validation messages keyed by field path. Keys that match
	// no field are shown as form-level messages.
	Errors map[string][]string
	// Links carries named URLs renderers may expose, e.g. "edit" or "back".
	Links map[string]string
}

// EffectiveMode returns the mode, defaulting to display.
func (o RenderOptions) EffectiveMode() Mode {
	if o.Mode == ModeEdit {
		return ModeEdit
	}
	return ModeDisplay
}

// EffectiveMethod returns the submit method, defaulting to POST.
func (o RenderOptions) EffectiveMethod() string {
	if o.Method == "" {
		return "POST"
	}
	return o.Method
}
