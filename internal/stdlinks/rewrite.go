package stdlinks

import "strings"

// Rewrite compacts every disambiguated reference in content and appends one
// link definition per resolved link, in the order given. relativize maps each
// absolute URL to the form written into the definition.
func Rewrite(extractor Extractor, content string, links []ResolvedLink, relativize func(string) (string, error)) (string, error) {
	var b strings.Builder
	b.WriteString(extractor.Compact(content))
	b.WriteByte('\n')

	for _, link := range links {
		url := link.URL
		if relativize != nil {
			var err error
			if url, err = relativize(url); err != nil {
				return "", err
			}
		}
		b.WriteString(link.Label())
		b.WriteString(": ")
		b.WriteString(url)
		b.WriteByte('\n')
	}

	return b.String(), nil
}
