package audit

import (
	"net/url"

	"github.com/mkowalczyk/siteaudit"
)

// urlParse parses an already-normalized URL, mapping failures to EINVALID.
func urlParse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "invalid URL %q", raw)
	}
	return u, nil
}

// originOf returns the scheme://host[:port] origin of a URL.
func originOf(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
