package mdbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// Context is the first element of the preprocessor input.
type Context struct {
	Root          string         `json:"root"`
	Config        map[string]any `json:"config"`
	Renderer      string         `json:"renderer"`
	MdbookVersion string         `json:"mdbook_version"`
}

// PreprocessorTable returns the [preprocessor.<name>] table of book.toml.
func (c *Context) PreprocessorTable(name string) map[string]any {
	pre, _ := c.Config["preprocessor"].(map[string]any)
	table, _ := pre[name].(map[string]any)
	return table
}

// SourceDir returns the absolute book source directory (book.src, default "src").
func (c *Context) SourceDir() string {
	src := "src"
	if book, ok := c.Config["book"].(map[string]any); ok {
		if s, ok := book["src"].(string); ok && s != "" {
			src = s
		}
	}
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(c.Root, src)
}

// Book is the second element of the preprocessor input and the whole output.
type Book struct {
	Sections []BookItem `json:"sections"`
	// NonExhaustive is a private marker field mdbook requires on input.
	NonExhaustive json.RawMessage `json:"__non_exhaustive"`
}

// MarshalJSON keeps sections an array even when empty.
func (b Book) MarshalJSON() ([]byte, error) {
	type plain Book
	if b.Sections == nil {
		b.Sections = []BookItem{}
	}
	return json.Marshal(plain(b))
}

// ForEachChapter calls fn for every chapter in reading order, parents before
// their sub chapters. It stops at the first error.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	return forEach(b.Sections, fn)
}

func forEach(items []BookItem, fn func(*Chapter) error) error {
	for i := range items {
		ch := items[i].Chapter
		if ch == nil {
			continue
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := forEach(ch.SubItems, fn); err != nil {
			return err
		}
	}
	return nil
}

// Chapter is a single page of the book.
type Chapter struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Number  []int  `json:"number"`
	// SubItems are the nested entries of the summary.
	SubItems []BookItem `json:"sub_items"`
	// Path is the chapter location relative to the source directory. It is
	// nil for draft chapters, which have no file.
	Path *string `json:"path"`
	// SourcePath is the file the chapter was read from.
	SourcePath  *string  `json:"source_path"`
	ParentNames []string `json:"parent_names"`
}

// MarshalJSON writes empty lists as [] since mdbook rejects null there.
func (c Chapter) MarshalJSON() ([]byte, error) {
	type plain Chapter
	if c.SubItems == nil {
		c.SubItems = []BookItem{}
	}
	if c.ParentNames == nil {
		c.ParentNames = []string{}
	}
	return json.Marshal(plain(c))
}

// IsDraft reports whether the chapter has no backing file.
func (c *Chapter) IsDraft() bool {
	return c.Path == nil
}

// BookItem is one entry of the summary. Exactly one of the fields is set.
type BookItem struct {
	Chapter   *Chapter
	Separator bool
	PartTitle *string
}

const separator = "Separator"

// UnmarshalJSON decodes mdbook's externally tagged representation:
// {"Chapter": {...}}, "Separator" or {"PartTitle": "..."}.
func (it *BookItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return err
		}
		if tag != separator {
			return fmt.Errorf("unknown book item %q", tag)
		}
		*it = BookItem{Separator: true}
		return nil
	}

	var tagged struct {
		Chapter   *Chapter `json:"Chapter"`
		PartTitle *string  `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if tagged.Chapter == nil && tagged.PartTitle == nil {
		return fmt.Errorf("unknown book item %s", data)
	}
	*it = BookItem{Chapter: tagged.Chapter, PartTitle: tagged.PartTitle}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (it BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case it.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": it.Chapter})
	case it.PartTitle != nil:
		return json.Marshal(map[string]string{"PartTitle": *it.PartTitle})
	case it.Separator:
		return json.Marshal(separator)
	default:
		return nil, fmt.Errorf("empty book item")
	}
}
