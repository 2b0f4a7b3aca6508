package stdlinks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
)

func TestRelativizer_Relativize(t *testing.T) {
	r := NewRelativizer(true, DefaultDocURL)

	tests := []struct {
		name string
		url  string
		path string
		want string
	}{
		{
			name: "stable channel at depth one",
			url:  "https://doc.rust-lang.org/stable/std/option/enum.Option.html",
			path: "option.md",
			want: "../std/option/enum.Option.html",
		},
		{
			name: "nightly channel at depth two",
			url:  "https://doc.rust-lang.org/nightly/core/fmt/trait.Display.html",
			path: "expressions/closure.md",
			want: "../../core/fmt/trait.Display.html",
		},
		{
			name: "numbered release",
			url:  "https://doc.rust-lang.org/1.80.10/alloc/vec/struct.Vec.html",
			path: "a/b/c.md",
			want: "../../../alloc/vec/struct.Vec.html",
		},
		{
			name: "fragment is kept",
			url:  "https://doc.rust-lang.org/beta/std/primitive.u8.html#method.is_ascii",
			path: "types.md",
			want: "../std/primitive.u8.html#method.is_ascii",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Relativize(tt.url, Document{Path: tt.path})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativizer_DepthRoundTrip(t *testing.T) {
	r := NewRelativizer(true, DefaultDocURL)
	for depth := 1; depth <= 4; depth++ {
		segs := make([]string, depth)
		for i := range segs {
			segs[i] = "d"
		}
		doc := Document{Path: strings.Join(segs, "/") + ".md"}

		got, err := r.Relativize("https://doc.rust-lang.org/dev/std/index.html", doc)
		require.NoError(t, err)

		want := strings.TrimSuffix(strings.Repeat("../", depth), "/") + "/std/index.html"
		assert.Equal(t, want, got)
	}
}

func TestRelativizer_Disabled(t *testing.T) {
	r := NewRelativizer(false, DefaultDocURL)
	url := "https://doc.rust-lang.org/stable/std/fmt/index.html"

	got, err := r.Relativize(url, Document{Path: "a/b.md"})
	require.NoError(t, err)
	assert.Equal(t, url, got)
	assert.False(t, r.Enabled())

	// Unknown hosts are not validated when disabled.
	got, err = r.Relativize("https://example.com/x", Document{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", got)
}

func TestRelativizer_UnrecognizedPrefix(t *testing.T) {
	r := NewRelativizer(true, DefaultDocURL)

	for _, url := range []string{
		"https://docs.rs/serde/latest/serde/",
		"https://doc.rust-lang.org/std/index.html",
		"http://doc.rust-lang.org/stable/std/index.html",
	} {
		t.Run(url, func(t *testing.T) {
			_, err := r.Relativize(url, Document{Name: "Intro", Path: "intro.md"})
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
			assert.Contains(t, err.Error(), url)
			assert.Contains(t, err.Error(), "doc\\.rust-lang\\.org")
		})
	}
}

func TestNewRelativizer_CustomSite(t *testing.T) {
	r := NewRelativizer(true, "https://docs.example.org/rust")
	got, err := r.Relativize("https://docs.example.org/rust/stable/std/index.html", Document{Path: "x.md"})
	require.NoError(t, err)
	assert.Equal(t, "../std/index.html", got)
}
