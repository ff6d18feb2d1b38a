// Package wifiqr reads and writes the "WIFI:" payload found in WiFi QR codes:
//
//	WIFI:T:WPA;S:MyNetwork;P:MyPassword;H:false;;
//
// Keys are case-insensitive, values are taken verbatim except that a backslash
// escapes the character following it (\; \, \: \\).
package wifiqr

import (
	"regexp"
	"strings"
)

const prefix = "WIFI:"

// One KEY:VALUE; segment. The value stops at the first unescaped ';'.
var segment = regexp.MustCompile(`([A-Za-z]+):((?:[^;\\]|\\.)*);`)

var escaped = regexp.MustCompile(`\\(.)`)

type fields struct {
	ssid, security, password *string
	hidden                   bool
}

// Parse decodes the text of a WiFi QR code. It returns a *FormatError if the
// text does not start with "WIFI:" or fails validation. Parse has no side
// effects and is safe for concurrent use.
func Parse(text string) (Credential, error) {
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return Credential{}, &FormatError{Kind: BadPrefix}
	}

	f := scan(text[len(prefix):])

	if f.ssid == nil {
		return Credential{}, &FormatError{Kind: MissingSSID}
	}
	if strings.TrimSpace(*f.ssid) == "" {
		return Credential{}, &FormatError{Kind: BlankSSID}
	}

	securityType := DefaultSecurityType
	if f.security != nil {
		securityType = *f.security
	}
	sec, ok := ParseSecurity(securityType)
	if !ok {
		return Credential{}, &FormatError{Kind: UnsupportedSecurity, Value: securityType}
	}

	var password string
	if f.password != nil {
		password = *f.password
	}
	// Only the empty string is rejected: whitespace-only passwords are valid.
	if sec.RequiresPassword() && password == "" {
		return Credential{}, &FormatError{Kind: PasswordRequired, Value: string(sec)}
	}

	return Credential{
		SSID:         *f.ssid,
		SecurityType: securityType,
		Password:     password,
		Hidden:       f.hidden,
	}, nil
}

// scan collects the recognised segments left to right; the last occurrence of
// a key wins and unknown keys are skipped.
func scan(content string) fields {
	var f fields
	for _, m := range segment.FindAllStringSubmatch(content, -1) {
		value := unescape(m[2])
		switch strings.ToUpper(m[1]) {
		case "S":
			f.ssid = &value
		case "T":
			f.security = &value
		case "P":
			f.password = &value
		case "H":
			f.hidden = strings.ToLower(value) == "true"
		}
	}
	return f
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return escaped.ReplaceAllString(s, "$1")
}
