package catalog

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"path"
	"sort"
	"strings"
)

var errNotWebURL = errors.New("resource url must be an absolute http or https url")

// NormalizeResourceURL returns the canonical form stored for a catalog
// resource link:
//   - only absolute http and https URLs with a host are accepted
//   - scheme and host are lower-cased and default ports dropped
//   - the path is cleaned and loses its trailing slash, except for "/"
//   - query parameters are sorted and the fragment is removed
func NormalizeResourceURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errNotWebURL
	}

	if u.Path == "" {
		u.Path = "/"
	}
	cleaned := path.Clean(u.Path)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	u.Path = cleaned
	u.RawPath = ""

	host := strings.ToLower(u.Host)
	if h, port, err := net.SplitHostPort(host); err == nil {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			host = h
		}
	}
	u.Host = host

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			sort.Strings(q[k])
		}
		u.RawQuery = q.Encode()
	}
	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}
