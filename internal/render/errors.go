package render

import "errors"

// Kind classifies a rendering failure
type Kind string

// Failure kinds surfaced by the renderer
const (
	KindFontLoad          Kind = "FONT_LOAD"
	KindDirectoryCreation Kind = "DIRECTORY_CREATION"
	KindIO                Kind = "IO"
)

// Error represents a failure while producing an invoice file
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error
func NewError(kind Kind, message, path string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

// IsKind reports whether err is a render Error of the given kind
func IsKind(err error, kind Kind) bool {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind == kind
	}
	return false
}
