package wifiqr

import "strings"

// Security is the authentication scheme announced by the T field of a WiFi QR code.
type Security string

const (
	WPA    Security = "WPA"
	WEP    Security = "WEP"
	NoPass Security = "NOPASS"
	Open   Security = "OPEN"
)

// DefaultSecurityType is used when the payload carries no T field.
const DefaultSecurityType = "nopass"

var securities = map[Security]struct{}{
	WPA:    {},
	WEP:    {},
	NoPass: {},
	Open:   {},
}

// ParseSecurity normalises s and reports whether it is a supported security type.
func ParseSecurity(s string) (Security, bool) {
	sec := Security(strings.ToUpper(s))
	_, ok := securities[sec]
	return sec, ok
}

func (s Security) RequiresPassword() bool {
	return s == WPA || s == WEP
}

func (s Security) String() string {
	return string(s)
}

// Credential is the content of a WiFi QR code: everything needed to join the
// network. It is a value type: callers get their own copy.
type Credential struct {
	SSID         string `json:"ssid" yaml:"ssid"`
	SecurityType string `json:"security_type" yaml:"security_type"` // as written in the payload
	Password     string `json:"password" yaml:"password"`
	Hidden       bool   `json:"hidden" yaml:"hidden"`
}

// Security returns the normalised security type. Only meaningful for a
// Credential returned by Parse.
func (c Credential) Security() Security {
	sec, _ := ParseSecurity(c.SecurityType)
	return sec
}

// Redacted returns a copy of c with the password masked, for display and logs.
func (c Credential) Redacted() Credential {
	if c.Password != "" {
		c.Password = "***"
	}
	return c
}
