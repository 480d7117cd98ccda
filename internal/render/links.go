package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// href turns a bare link such as "github.com/me" into an absolute https URL.
func href(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return "https://" + s
}

// linkLabel shortens a link to its registrable domain for display.
func linkLabel(raw string) string {
	u, err := url.Parse(href(raw))
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return host
}
