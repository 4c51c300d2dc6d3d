// Package device summarizes the requesting client for audit trails, so a
// "reset requested" event reads as "Chrome 120 on Linux" instead of a raw
// User-Agent string.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknown = "unknown device"

// Summarize condenses a User-Agent header into "<browser> <major> on <os>".
func Summarize(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return unknown
	}

	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	if name == "" {
		return unknown
	}

	if major, _, ok := strings.Cut(version, "."); ok {
		version = major
	}

	var b strings.Builder
	b.WriteString(name)
	if version != "" {
		b.WriteString(" " + version)
	}
	if os := ua.OS(); os != "" {
		b.WriteString(" on " + os)
	}
	return b.String()
}
