package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

func FrontMatterError(path string, cause error) *BuildError {
	return Wrap(cause, CategoryContent, SeverityFatal, "front matter parse failed").
		WithContext("path", path)
}

func MarkdownError(path string, cause error) *BuildError {
	return Wrap(cause, CategoryMarkdown, SeverityWarning, "markdown rendering degraded").
		WithContext("path", path)
}

// Layout errors

func UnknownLayout(layout, path string) *BuildError {
	return New(CategoryLayout, SeverityFatal, "unknown layout").
		WithContext("layout", layout).
		WithContext("path", path)
}

func LayoutExecError(layout string, cause error) *BuildError {
	return Wrap(cause, CategoryLayout, SeverityFatal, "layout execution failed").
		WithContext("layout", layout)
}

// Asset errors

func AssetEntryMissing(path string) *BuildError {
	return New(CategoryAsset, SeverityFatal, "asset entry point not found").
		WithContext("path", path)
}

func AssetBundleError(kind string, cause error) *BuildError {
	return Wrap(cause, CategoryAsset, SeverityFatal, "asset bundling failed").
		WithContext("kind", kind)
}

// Filesystem errors

func OutputError(operation string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
