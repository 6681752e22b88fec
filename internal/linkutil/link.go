// Package linkutil formats short links for display.
package linkutil

import (
	"strings"

	"golang.org/x/net/idna"
)

// RootKey is the key of a domain's root link; it is never shown in the path.
const RootKey = "_root"

const ellipsis = "..."

// ConstructLink builds the URL of the short link identified by domain and key.
// With pretty set the scheme is omitted. Punycode domains are shown in their
// Unicode form and keys are kept as given.
func ConstructLink(domain, key string, pretty bool) string {
	if domain == "" {
		return ""
	}

	var b strings.Builder
	if !pretty {
		if isLocalhost(domain) {
			b.WriteString("http://")
		} else {
			b.WriteString("https://")
		}
	}

	b.WriteString(displayDomain(domain))
	if key != "" && key != RootKey {
		b.WriteByte('/')
		b.WriteString(key)
	}

	return b.String()
}

// Truncate shortens s to at most n characters, ending with "..." when cut.
// The marker counts toward n.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= len(ellipsis) {
		return string(r[:n])
	}
	return string(r[:n-len(ellipsis)]) + ellipsis
}

func isLocalhost(domain string) bool {
	host := domain
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host == "localhost" || strings.HasSuffix(host, ".localhost")
}

// displayDomain decodes punycode labels so the domain reads as typed.
func displayDomain(domain string) string {
	host, port := domain, ""
	if i := strings.IndexByte(domain, ':'); i >= 0 {
		host, port = domain[:i], domain[i:]
	}
	unicode, err := idna.ToUnicode(host)
	if err != nil {
		return domain
	}
	return unicode + port
}
