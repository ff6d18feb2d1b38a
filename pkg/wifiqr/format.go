package wifiqr

import "strings"

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

// Format encodes c as a WiFi QR code payload. The password segment is left out
// when empty and the hidden flag is only written when set. For any Credential
// returned by Parse, Parse(Format(c)) returns c.
func Format(c Credential) string {
	securityType := c.SecurityType
	if securityType == "" {
		securityType = DefaultSecurityType
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("T:")
	b.WriteString(escaper.Replace(securityType))
	b.WriteString(";S:")
	b.WriteString(escaper.Replace(c.SSID))
	b.WriteString(";")
	if c.Password != "" {
		b.WriteString("P:")
		b.WriteString(escaper.Replace(c.Password))
		b.WriteString(";")
	}
	if c.Hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}
