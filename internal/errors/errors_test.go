package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocVersionsError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DocVersionsError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
		{
			name:     "builder defaults to error severity",
			err:      NewError(CategoryMarkup, "bad markup").Build(),
			expected: "markup (error): bad markup",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestDocVersionsError_Builder(t *testing.T) {
	err := WrapError(fmt.Errorf("boom"), CategoryFileSystem, "read failed").
		WithSeverity(SeverityWarning).
		WithContext("path", "/tmp/index.html").
		Build()

	require.Equal(t, SeverityWarning, err.Severity)
	require.Equal(t, "/tmp/index.html", err.Context["path"])
}

func TestIsCategory_FollowsWrapChain(t *testing.T) {
	inner := RootUnreadable("/site", fmt.Errorf("permission denied"))
	outer := fmt.Errorf("resolve versions: %w", inner)

	require.True(t, IsCategory(outer, CategoryFileSystem))
	require.False(t, IsCategory(outer, CategoryConfig))
	require.True(t, IsFatal(outer))
	require.False(t, IsCategory(fmt.Errorf("plain"), CategoryFileSystem))
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("pattern", "missing")
		require.Equal(t, CategoryValidation, err.Category)
		require.Equal(t, SeverityFatal, err.Severity)
		require.Equal(t, "pattern", err.Context["field"])
		require.Equal(t, "missing", err.Context["reason"])
	})

	t.Run("FileWriteFailed", func(t *testing.T) {
		cause := fmt.Errorf("read-only file system")
		err := FileWriteFailed("/site/index.html", cause)
		require.Equal(t, SeverityError, err.Severity)
		require.True(t, stdErrors.Is(err, cause))
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	require.Equal(t, 0, adapter.ExitCodeFor(nil))
	require.Equal(t, 2, adapter.ExitCodeFor(ConfigRequired("base_url")))
	require.Equal(t, 3, adapter.ExitCodeFor(RootUnreadable("/x", fmt.Errorf("nope"))))
	require.Equal(t, 1, adapter.ExitCodeFor(fmt.Errorf("plain")))

	var buf bytes.Buffer
	code := adapter.Report(&buf, RootUnreadable("/x", fmt.Errorf("nope")))
	require.Equal(t, 3, code)
	require.Equal(t, "filesystem: root directory unreadable: nope\n", buf.String())

	require.Equal(t, "required configuration missing: base_url", adapter.FormatError(ConfigRequired("base_url")))
	require.Equal(t, "validation failed: workers: must not be negative",
		adapter.FormatError(ValidationFailed("workers", "must not be negative")))
}
