package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_WithCause_IncludesCauseInMessage(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CategoryLayout, SeverityFatal, "layout execution failed")

	require.Contains(t, err.Error(), "layout")
	require.Contains(t, err.Error(), "fatal")
	require.Contains(t, err.Error(), "boom")
}

func TestError_Unwrap_ReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CategoryAsset, SeverityFatal, "asset bundling failed")

	require.True(t, errors.Is(err, cause))
}

func TestWithContext_AccumulatesFields(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", "blog.yaml").
		WithContext("attempt", 1)

	require.Equal(t, "blog.yaml", err.Context["path"])
	require.Equal(t, 1, err.Context["attempt"])
}

func TestIsFatal(t *testing.T) {
	require.True(t, IsFatal(New(CategoryLayout, SeverityFatal, "unknown layout")))
	require.False(t, IsFatal(New(CategoryMarkdown, SeverityWarning, "degraded")))
	require.True(t, IsFatal(fmt.Errorf("plain error")))
}

func TestGetCategory_PlainError_IsInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	require.Equal(t, CategoryContent, GetCategory(FrontMatterError("a.md", errors.New("bad yaml"))))
}

func TestMarkdownError_IsWarningNotFatal(t *testing.T) {
	err := MarkdownError("posts/a.md", errors.New("bad fence"))

	require.True(t, IsCategory(err, CategoryMarkdown))
	require.False(t, IsFatal(err))
	require.Equal(t, "posts/a.md", err.Context["path"])
}

func TestUnknownLayout_CarriesLayoutAndPath(t *testing.T) {
	err := UnknownLayout("gallery", "posts/a.md")

	require.True(t, IsCategory(err, CategoryLayout))
	require.Equal(t, "gallery", err.Context["layout"])
	require.Equal(t, "posts/a.md", err.Context["path"])
}
