package components

// Field is the template-facing view of a model field. Values are already
// formatted for the current mode and Description is sanitised HTML.
type Field struct {
	Name        string
	Path        string
	ID          string
	Label       string
	Description string
	Value       string
	Href        string
	InputType   string
	Placeholder string
	HelpText    string
	CSSClass    string
	Rows        int

	Checked   bool
	Required  bool
	Hidden    bool
	HideLabel bool
	IsObject  bool

	Errors   []string
	Children []string
	UIHints  map[string]string
}
