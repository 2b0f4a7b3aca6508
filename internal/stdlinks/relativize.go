package stdlinks

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
)

// DefaultDocURL is the root of the hosted standard library documentation.
const DefaultDocURL = "https://doc.rust-lang.org/"

// channelPattern matches the release channel or version segment that follows
// the documentation root.
const channelPattern = `(?:nightly|beta|stable|dev|1\.[0-9]+\.[0-9]+)`

// Relativizer turns absolute documentation URLs into paths relative to a
// chapter so that links work offline and under local link checking.
type Relativizer struct {
	enabled bool
	prefix  *regexp.Regexp
}

// NewRelativizer builds a Relativizer for the documentation site rooted at
// docURL. When enabled is false URLs are returned unchanged.
func NewRelativizer(enabled bool, docURL string) *Relativizer {
	if docURL == "" {
		docURL = DefaultDocURL
	}
	if !strings.HasSuffix(docURL, "/") {
		docURL += "/"
	}
	return &Relativizer{
		enabled: enabled,
		prefix:  regexp.MustCompile(`^` + regexp.QuoteMeta(docURL) + channelPattern),
	}
}

// Enabled reports whether URLs are rewritten.
func (r *Relativizer) Enabled() bool {
	return r.enabled
}

// Relativize strips the site and channel prefix from url and replaces it with
// one ".." segment per level of doc's depth.
func (r *Relativizer) Relativize(url string, doc Document) (string, error) {
	if !r.enabled {
		return url, nil
	}

	loc := r.prefix.FindStringIndex(url)
	if loc == nil {
		return "", errors.ConfigError("unrecognized documentation URL").
			WithContext("expected", r.prefix.String()).
			WithContext("url", url).
			WithContext("chapter", doc.Name).
			Build()
	}

	dots := make([]string, doc.Depth())
	for i := range dots {
		dots[i] = ".."
	}
	return strings.Join(dots, "/") + url[loc[1]:], nil
}
