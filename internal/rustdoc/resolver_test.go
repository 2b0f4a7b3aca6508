package rustdoc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// fakeRustdoc emits one crate doc bullet link per "//! - " line of the source,
// mimicking the layout rustdoc produces, and logs its arguments.
const fakeRustdoc = `#!/bin/sh
echo "$@" > "$FAKE_RUSTDOC_LOG"
src="$2"
mkdir -p doc/a
awk '/^\/\/! - /{i++; printf "<li><a href=\"https://doc.rust-lang.org/nightly/std/item%d.html\"><code>x</code></a></li>\n", i}' "$src" > doc/a/index.html
`

const failingRustdoc = `#!/bin/sh
echo 'error: unresolved link to ` + "`std::nope`" + `' >&2
exit 1
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "rustdoc")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o700))
	return path
}

func TestResolver_Resolve(t *testing.T) {
	bin := writeScript(t, fakeRustdoc)
	logPath := filepath.Join(t.TempDir(), "args.log")
	t.Setenv("FAKE_RUSTDOC_LOG", logPath)
	scratch := t.TempDir()

	r := NewResolver(Options{Binary: bin, Edition: "2024", ScratchDir: scratch})
	refs := []stdlinks.Reference{
		{Text: "[`Option`]", Target: "std::option::Option"},
		{Text: "[`std::fmt`]"},
	}

	urls, err := r.Resolve(context.Background(), stdlinks.Document{Name: "Intro", Path: "intro.md"}, refs)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://doc.rust-lang.org/nightly/std/item1.html",
		"https://doc.rust-lang.org/nightly/std/item2.html",
	}, urls)

	args, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(args), "--edition=2024 "))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(args)), SourceFile))

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directory must be removed")
}

func TestResolver_KeepScratch(t *testing.T) {
	bin := writeScript(t, fakeRustdoc)
	t.Setenv("FAKE_RUSTDOC_LOG", filepath.Join(t.TempDir(), "args.log"))
	scratch := t.TempDir()

	r := NewResolver(Options{Binary: bin, ScratchDir: scratch, KeepScratch: true})
	_, err := r.Resolve(context.Background(), stdlinks.Document{Path: "a.md"}, []stdlinks.Reference{{Text: "[`std`]"}})
	require.NoError(t, err)

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	src, err := os.ReadFile(filepath.Join(scratch, entries[0].Name(), SourceFile))
	require.NoError(t, err)
	assert.Contains(t, string(src), "//! - [`std`]\n")
}

func TestResolver_FailureForwardsDiagnostics(t *testing.T) {
	bin := writeScript(t, failingRustdoc)
	scratch := t.TempDir()
	var stderr bytes.Buffer

	r := NewResolver(Options{Binary: bin, ScratchDir: scratch, Stderr: &stderr})
	doc := stdlinks.Document{Name: "Closures", SourcePath: "src/expressions/closure.md", Path: "expressions/closure.md"}

	urls, err := r.Resolve(context.Background(), doc, []stdlinks.Reference{{Text: "[`std::nope`]"}})
	require.Error(t, err)
	assert.Nil(t, urls)
	assert.True(t, errors.HasCategory(err, errors.CategoryResolve))
	assert.Contains(t, err.Error(), "chapter=Closures")
	assert.Contains(t, err.Error(), "source_path=src/expressions/closure.md")
	assert.Equal(t, "error: unresolved link to `std::nope`\n", stderr.String())

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directory must be removed on failure")
}

func TestResolver_MissingBinary(t *testing.T) {
	r := NewResolver(Options{Binary: filepath.Join(t.TempDir(), "no-such-rustdoc"), ScratchDir: t.TempDir()})
	_, err := r.Resolve(context.Background(), stdlinks.Document{Path: "a.md"}, []stdlinks.Reference{{Text: "[`std`]"}})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryResolve))
	assert.Contains(t, err.Error(), "failed to run rustdoc")
}
