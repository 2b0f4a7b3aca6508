package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

func newMarkdown(opts Options) goldmark.Markdown {
	if !opts.Mdbook {
		return goldmark.New()
	}
	return goldmark.New(goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote,
	))
}

// ParseBody parses a Markdown body into a Goldmark AST.
func ParseBody(body []byte, opts Options) gmast.Node {
	return newMarkdown(opts).Parser().Parse(text.NewReader(body))
}

// Definitions returns the reference definitions CommonMark recognizes in
// body, sorted by label. When a label is defined twice the first one wins.
func Definitions(body []byte, opts Options) []Definition {
	ctx := parser.NewContext()
	newMarkdown(opts).Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	// Reference definitions are stored in the parse context, not the AST.
	refs := ctx.References()
	defs := make([]Definition, 0, len(refs))
	for _, ref := range refs {
		defs = append(defs, Definition{
			Label:       util.ToLinkReference(ref.Label()),
			Destination: string(ref.Destination()),
			Title:       string(ref.Title()),
		})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Label < defs[j].Label })
	return defs
}

// NormalizeLabel turns a label as written, with or without its brackets,
// into the form used for matching.
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if strings.HasPrefix(label, "[") && strings.HasSuffix(label, "]") {
		label = label[1 : len(label)-1]
	}
	return util.ToLinkReference([]byte(label))
}

// Shadowed returns the labels of lines that look like definitions but that
// the parser does not treat as such, e.g. inside fenced code. Footnote
// definitions ([^note]: ...) are ignored. The result is sorted.
func Shadowed(body []byte, labels []string, opts Options) []string {
	known := make(map[string]struct{})
	for _, def := range Definitions(body, opts) {
		known[def.Label] = struct{}{}
	}

	var out []string
	for _, label := range labels {
		norm := NormalizeLabel(label)
		if strings.HasPrefix(norm, "^") {
			continue
		}
		if _, ok := known[norm]; !ok {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
