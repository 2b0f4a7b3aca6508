package rustdoc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
)

// ExtractLinksFile extracts the resolved links from a generated index page.
func ExtractLinksFile(path, prefix string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open rustdoc output").
			Fatal().
			WithContext("html_path", path).
			Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinks(file, prefix)
}

// ExtractLinks returns, in document order, the href of every <a> that opens
// directly inside an <li> and points into the documentation site at prefix.
// These are the bullets of the crate doc comment; navigation links rustdoc
// adds elsewhere on the page are relative and never match.
func ExtractLinks(r io.Reader, prefix string) ([]string, error) {
	z := html.NewTokenizer(r)

	var urls []string
	afterLI := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.WrapError(err, errors.CategoryResolve, "failed to parse rustdoc output").
					Fatal().
					Build()
			}
			return urls, nil
		case html.StartTagToken:
			tok := z.Token()
			if afterLI && tok.DataAtom == atom.A {
				if href := getAttr(tok, "href"); strings.HasPrefix(href, prefix) {
					urls = append(urls, href)
				}
			}
			afterLI = tok.DataAtom == atom.Li
		default:
			afterLI = false
		}
	}
}

// getAttr retrieves an attribute value from a start tag token.
func getAttr(tok html.Token, key string) string {
	for _, attr := range tok.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
