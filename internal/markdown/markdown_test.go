package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmast "github.com/yuin/goldmark/ast"
)

func TestDefinitions(t *testing.T) {
	src := []byte("" +
		"See [`Option`][opt] and [`std::fmt`].\n" +
		"\n" +
		"[`std::fmt`]: https://doc.rust-lang.org/stable/std/fmt/index.html\n" +
		"[OPT]: ../std/option/enum.Option.html \"Option\"\n" +
		"[opt]: ignored.html\n")

	defs := Definitions(src, Options{})
	require.Len(t, defs, 2)

	assert.Equal(t, "`std::fmt`", defs[0].Label)
	assert.Equal(t, "https://doc.rust-lang.org/stable/std/fmt/index.html", defs[0].Destination)

	assert.Equal(t, "opt", defs[1].Label)
	assert.Equal(t, "../std/option/enum.Option.html", defs[1].Destination)
	assert.Equal(t, "Option", defs[1].Title)
}

func TestDefinitions_SkipsCodeBlocks(t *testing.T) {
	src := []byte("" +
		"```text\n" +
		"[`std::fmt`]: not-a-definition.html\n" +
		"```\n" +
		"\n" +
		"    [indented]: also-code.html\n")

	assert.Empty(t, Definitions(src, Options{}))
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[`std::fmt`]", "`std::fmt`"},
		{"`std::fmt`", "`std::fmt`"},
		{"[Foo  Bar]", "foo bar"},
		{" [x] ", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.in))
		})
	}
}

func TestShadowed(t *testing.T) {
	src := []byte("" +
		"Text with [`std::fmt`] and [`Option`].\n" +
		"\n" +
		"```\n" +
		"[`std::fmt`]: https://example.com/inside-fence\n" +
		"```\n" +
		"\n" +
		"[`Option`]: https://example.com/option\n" +
		"\n" +
		"A footnote.[^note]\n" +
		"\n" +
		"[^note]: Footnote text.\n")

	labels := []string{"[`std::fmt`]", "[`Option`]", "[^note]"}

	assert.Equal(t, []string{"[`std::fmt`]"}, Shadowed(src, labels, Options{Mdbook: true}))
	assert.Empty(t, Shadowed(src, []string{"[`Option`]"}, Options{}))
}

func TestParseBody_MdbookExtensions(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	plain := ParseBody(src, Options{})
	require.NotNil(t, plain.FirstChild())
	assert.Equal(t, gmast.KindParagraph, plain.FirstChild().Kind())

	withTables := ParseBody(src, Options{Mdbook: true})
	require.NotNil(t, withTables.FirstChild())
	assert.NotEqual(t, gmast.KindParagraph, withTables.FirstChild().Kind())
}
