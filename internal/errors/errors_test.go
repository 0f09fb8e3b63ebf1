package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocRenderError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DocRenderError
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
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestDocRenderError_WithContext(t *testing.T) {
	err := New(CategoryLookup, SeverityFatal, "missing").
		WithContext("template", "class").
		WithContext("category", "Class")

	require.NotNil(t, err.Context)
	require.Equal(t, "class", err.Context["template"])
	require.Equal(t, "Class", err.Context["category"])
}

func TestIsCategory(t *testing.T) {
	compileErr := TemplateCompile("class", "templates/class.tmpl", fmt.Errorf("unexpected EOF"))
	wrapped := fmt.Errorf("setup: %w", TemplateNotFound("namespace"))
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"compile error matches compile category", compileErr, CategoryCompile, true},
		{"compile error doesn't match lookup category", compileErr, CategoryLookup, false},
		{"wrapped lookup error matches through fmt wrapping", wrapped, CategoryLookup, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, IsCategory(test.err, test.category))
		})
	}
}

func TestGetCategory(t *testing.T) {
	require.Equal(t, CategoryContract, GetCategory(UnsupportedValue("int")))
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("TemplateCompile names template and path", func(t *testing.T) {
		cause := fmt.Errorf("template: class:1: unexpected \"}\" in operand")
		err := TemplateCompile("class", "templates/class.tmpl", cause)
		require.Equal(t, CategoryCompile, err.Category)
		require.Contains(t, err.Error(), "templates/class.tmpl")
		require.Contains(t, err.Error(), "unexpected")
		require.True(t, stdErrors.Is(err, cause))
	})

	t.Run("TemplateExecution names template", func(t *testing.T) {
		cause := fmt.Errorf("boom")
		err := TemplateExecution("method", cause)
		require.Equal(t, CategoryExecution, err.Category)
		require.Equal(t, SeverityError, err.Severity)
		require.Contains(t, err.Error(), `"method"`)
		require.True(t, stdErrors.Is(err, cause))
	})

	t.Run("ConfigNotFound", func(t *testing.T) {
		err := ConfigNotFound("/path/to/docrender.yaml")
		require.Equal(t, CategoryConfig, err.Category)
		require.Equal(t, SeverityFatal, err.Severity)
		require.Equal(t, "/path/to/docrender.yaml", err.Context["path"])
	})

	t.Run("UnsupportedValue", func(t *testing.T) {
		err := UnsupportedValue("int")
		require.Equal(t, CategoryContract, err.Category)
		require.Contains(t, err.Error(), "int")
	})
}
