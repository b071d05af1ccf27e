package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocVersionsError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *DocVersionsError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *DocVersionsError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Run errors

func RootUnreadable(root string, cause error) *DocVersionsError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "root directory unreadable").
		WithContext("root", root)
}

// Per-file errors

func FileReadFailed(path string, cause error) *DocVersionsError {
	return WrapError(cause, CategoryFileSystem, "failed to read file").
		WithContext("path", path)
}

func FileWriteFailed(path string, cause error) *DocVersionsError {
	return WrapError(cause, CategoryFileSystem, "failed to write file").
		WithContext("path", path)
}

func MarkupParseFailed(path string, cause error) *DocVersionsError {
	return WrapError(cause, CategoryMarkup, "failed to parse HTML").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *DocVersionsError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
