package errors

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name:     "validation error",
			err:      ValidationError("invalid input").Build(),
			expected: 2,
		},
		{
			name:     "config error",
			err:      ConfigError("unrecognized documentation URL").Build(),
			expected: 7,
		},
		{
			name:     "resolve error",
			err:      ResolveError("failed to extract std links").Build(),
			expected: 11,
		},
		{
			name:     "internal error",
			err:      InternalError("link count mismatch").Build(),
			expected: 10,
		},
		{
			name:     "wrapped classified error",
			err:      fmt.Errorf("chapter: %w", ResolveError("rustdoc failed").Build()),
			expected: 11,
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "unknown error"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name: "resolve error shows context without verbose",
			err: ResolveError("failed to extract std links").
				WithContext("chapter", "Closures").
				Build(),
			contains: "chapter=Closures",
		},
		{
			name:     "internal error is summarized",
			err:      InternalError("internal issue").Build(),
			contains: "internal issue (use -v for details)",
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "unknown error"},
			contains: "error: unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.FormatError(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want to contain %q", got, tt.contains)
			}
		})
	}

	if got := adapter.FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q, want empty string", got)
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	adapter.out = &out

	code := adapter.Report(InternalError("expected 2 links, found 1").Build())
	if code != 10 {
		t.Errorf("Report() = %d, want 10", code)
	}
	if !strings.Contains(out.String(), "expected 2 links, found 1") {
		t.Errorf("unexpected output %q", out.String())
	}
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
