package stdlinks

import (
	"regexp"
	"sort"
	"strings"
)

// stdPath matches a link destination that may be a rustdoc intra-doc path
// into the standard library crates, e.g. "std::option::Option" or
// "mod@std::fmt".
const stdPath = `(?:[a-z]+@)?` +
	`(?:std|core|alloc|proc_macro|test)` +
	`(?:::[A-Za-z0-9_!:<>{}()\[\]]+)?`

// Extractor isolates the grammar used to find references so that a real
// markdown parser could replace it without touching the rest of the pipeline.
type Extractor interface {
	// Candidates returns every reference occurrence in document order.
	Candidates(content string) []Reference
	// Compact replaces each disambiguated occurrence Text(Target) with
	// Text[Target] and leaves everything else untouched.
	Compact(content string) string
}

// RegexExtractor recognizes two forms:
//
//	[`Option`](std::option::Option)   code span text with a std path destination
//	[`std::fmt`]                      code span that is itself a std path
type RegexExtractor struct {
	link *regexp.Regexp
}

// NewRegexExtractor compiles the std link grammar.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{
		link: regexp.MustCompile(
			`(\[` + "`[^`]+`" + `\])\((` + stdPath + `)\)` +
				`|(\[` + "`" + stdPath + "`" + `\])`),
	}
}

// Candidates implements Extractor.
func (e *RegexExtractor) Candidates(content string) []Reference {
	matches := e.link.FindAllStringSubmatch(content, -1)
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		if m[3] != "" {
			refs = append(refs, Reference{Text: m[3]})
			continue
		}
		refs = append(refs, Reference{Text: m[1], Target: m[2]})
	}
	return refs
}

// Compact implements Extractor.
func (e *RegexExtractor) Compact(content string) string {
	idx := e.link.FindAllStringSubmatchIndex(content, -1)
	if len(idx) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range idx {
		// m[4] < 0 means the bare form matched; it stays as written.
		if m[4] < 0 {
			continue
		}
		b.WriteString(content[last:m[0]])
		b.WriteString(content[m[2]:m[3]])
		b.WriteByte('[')
		b.WriteString(content[m[4]:m[5]])
		b.WriteByte(']')
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String()
}

// Scanner produces the references of a document that still need resolving.
type Scanner struct {
	extractor Extractor
	linkDef   *regexp.Regexp
}

// NewScanner returns a Scanner using the given extractor, or the regex
// grammar when extractor is nil.
func NewScanner(extractor Extractor) *Scanner {
	if extractor == nil {
		extractor = NewRegexExtractor()
	}
	return &Scanner{
		extractor: extractor,
		// Matches "[label]: dest" at the start of any line. Definitions inside
		// fenced code or block quotes are matched too.
		linkDef: regexp.MustCompile(`(?m)^(\[[^\]]+\]): *(.*)`),
	}
}

// Extractor returns the grammar the scanner matches with.
func (s *Scanner) Extractor() Extractor {
	return s.extractor
}

// Scan returns the distinct references of content in canonical order,
// excluding any whose label the author already defined.
func (s *Scanner) Scan(content string) []Reference {
	refs := s.extractor.Candidates(content)
	if len(refs) == 0 {
		return nil
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	refs = dedup(refs)

	defined := s.DefinedLabels(content)
	out := refs[:0]
	for _, ref := range refs {
		if _, ok := defined[ref.Label()]; ok {
			continue
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DefinedLabels returns the labels of every link definition line, brackets included.
func (s *Scanner) DefinedLabels(content string) map[string]string {
	defs := make(map[string]string)
	for _, m := range s.linkDef.FindAllStringSubmatch(content, -1) {
		if _, ok := defs[m[1]]; !ok {
			defs[m[1]] = m[2]
		}
	}
	return defs
}

// dedup removes adjacent duplicates from a sorted slice.
func dedup(refs []Reference) []Reference {
	out := refs[:1]
	for _, ref := range refs[1:] {
		if ref != out[len(out)-1] {
			out = append(out, ref)
		}
	}
	return out
}
