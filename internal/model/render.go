package model

// ErrorKind classifies a rejected action. All kinds are recoverable and
// travel inside a RenderRequest rather than as Go errors.
type ErrorKind string

const (
	ErrNone         ErrorKind = ""
	ErrUnauthorized ErrorKind = "unauthorized"
	// ErrForbidden marks an admin-only action from a regular operator;
	// the render carries no text and the transport should stay silent.
	ErrForbidden  ErrorKind = "forbidden"
	ErrValidation ErrorKind = "validation"
	ErrEmptyCart  ErrorKind = "empty_cart"
)

// Choice is one selectable next action offered to the operator.
type Choice struct {
	Signal Signal `json:"signal"`
	Item   string `json:"item,omitempty"`
	Label  string `json:"label"`
}

// RenderRequest describes what the presentation layer should show next.
// Text is plain content; markup and keyboard layout belong to the transport.
type RenderRequest struct {
	View    View      `json:"view"`
	Text    string    `json:"text"`
	Choices []Choice  `json:"choices,omitempty"`
	Notice  string    `json:"notice,omitempty"`
	Error   ErrorKind `json:"error,omitempty"`
}

// Silent reports whether nothing should be displayed at all.
func (r RenderRequest) Silent() bool {
	return r.Text == "" && r.Notice == ""
}
