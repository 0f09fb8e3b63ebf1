package errors

import "fmt"

// Convenience functions for common error patterns

// Contract violations

func InvalidArgument(name, reason string) *DocRenderError {
	return New(CategoryContract, SeverityFatal, "invalid argument "+name).
		WithContext("argument", name).
		WithContext("reason", reason)
}

func UnsupportedValue(kind string) *DocRenderError {
	return New(CategoryContract, SeverityFatal, "unsupported value kind "+kind).
		WithContext("kind", kind)
}

func UnknownCategory(category string) *DocRenderError {
	return New(CategoryContract, SeverityFatal, "unknown page category "+category).
		WithContext("category", category)
}

// Template errors

func TemplateCompile(name, path string, cause error) *DocRenderError {
	msg := fmt.Sprintf("compile template %q", name)
	if path != "" {
		msg = fmt.Sprintf("compile template %q from %s", name, path)
	}
	e := Wrap(cause, CategoryCompile, SeverityFatal, msg).
		WithContext("template", name)
	if path != "" {
		e.WithContext("path", path)
	}
	return e
}

func TemplateNotFound(name string) *DocRenderError {
	return New(CategoryLookup, SeverityFatal, fmt.Sprintf("template %q not found", name)).
		WithContext("template", name)
}

func TemplateExecution(name string, cause error) *DocRenderError {
	return Wrap(cause, CategoryExecution, SeverityError, fmt.Sprintf("execute template %q", name)).
		WithContext("template", name)
}

// Config errors

func ConfigNotFound(path string) *DocRenderError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *DocRenderError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ConfigInvalid(field, reason string) *DocRenderError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func OutputError(operation string, cause error) *DocRenderError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *DocRenderError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
