package domain

// VarType enumerates the value types a state variable can hold.
type VarType string

const (
	VarString VarType = "string"
	VarNumber VarType = "number"
	VarBool   VarType = "boolean"
	VarList   VarType = "list"
	VarObject VarType = "object"
)

// Variable is one reactive state variable inside a render session.
//
// Variables are created on first declaration, mutated only through
// action application, and scoped to one render session unless Persisted,
// in which case the host's state store carries the value across sessions
// keyed by the variable name.
type Variable struct {
	Name      string  `json:"name"`
	Type      VarType `json:"type"`
	Value     any     `json:"value"`
	Persisted bool    `json:"persisted,omitempty"`

	// Min and Max clamp numeric mutations when non-nil.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SideEffect is one member of the closed set of permitted action side
// channels. Anything an action does beyond mutating its target variable
// is expressed as one of these and handed to the host; the engine never
// executes injected code.
type SideEffect struct {
	Kind    SideEffectKind    `json:"kind"`
	Target  string            `json:"target,omitempty"`
	Payload map[string]string `json:"payload,omitempty"`
}

// SideEffectKind enumerates the permitted side channels.
type SideEffectKind string

const (
	EffectToggleClass SideEffectKind = "toggle-class"
	EffectCSSProperty SideEffectKind = "css-property"
	EffectURLParam    SideEffectKind = "url-param"
	EffectURLHash     SideEffectKind = "url-hash"
	EffectClipboard   SideEffectKind = "clipboard"
	EffectToast       SideEffectKind = "toast"
)
