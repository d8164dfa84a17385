package config

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeBaseURL parses the download server address. A bare host such as
// "localhost:5000" gets an http scheme. The result has no trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("http://" + raw); e2 == nil {
			u, err = u2, nil
		}
	}
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q", raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("unsupported base URL %q: only http and https are supported", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("invalid base URL %q: query and fragment are not allowed", raw)
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}
