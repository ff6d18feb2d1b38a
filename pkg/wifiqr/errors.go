package wifiqr

import "fmt"

// ErrorKind tells which validation rule rejected a payload.
type ErrorKind int

const (
	BadPrefix ErrorKind = iota + 1
	MissingSSID
	BlankSSID
	UnsupportedSecurity
	PasswordRequired
)

func (k ErrorKind) String() string {
	switch k {
	case BadPrefix:
		return "BadPrefix"
	case MissingSSID:
		return "MissingSSID"
	case BlankSSID:
		return "BlankSSID"
	case UnsupportedSecurity:
		return "UnsupportedSecurity"
	case PasswordRequired:
		return "PasswordRequired"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// FormatError is returned by Parse when a payload is not a valid WiFi QR code.
// Value carries the offending security type for UnsupportedSecurity (as
// written) and PasswordRequired (upper-cased).
type FormatError struct {
	Kind  ErrorKind
	Value string
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case BadPrefix:
		return "Invalid WiFi QR code format"
	case MissingSSID:
		return "No SSID found in QR code"
	case BlankSSID:
		return "SSID cannot be empty or whitespace only"
	case UnsupportedSecurity:
		return "Unsupported security type: " + e.Value
	case PasswordRequired:
		return "Password is required for security type " + e.Value
	default:
		return "Invalid WiFi QR code: " + e.Kind.String()
	}
}

// Is matches any *FormatError of the same kind, so that
// errors.Is(err, ErrPasswordRequired) works whatever the security type.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Value == "" || t.Value == e.Value)
}

var (
	ErrBadPrefix           = &FormatError{Kind: BadPrefix}
	ErrMissingSSID         = &FormatError{Kind: MissingSSID}
	ErrBlankSSID           = &FormatError{Kind: BlankSSID}
	ErrUnsupportedSecurity = &FormatError{Kind: UnsupportedSecurity}
	ErrPasswordRequired    = &FormatError{Kind: PasswordRequired}
)
