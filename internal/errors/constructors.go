package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PrepError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *PrepError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Discovery and file lookup errors

func ScanFailed(root string, cause error) *PrepError {
	return Wrap(cause, CategoryDiscovery, SeverityFatal, "directory scan failed").
		WithContext("root", root)
}

func TopologyNotFound(dir string) *PrepError {
	return New(CategoryDiscovery, SeverityError, "topology file not found").
		WithContext("dir", dir)
}

func TrajectoryNotFound(dir string) *PrepError {
	return New(CategoryDiscovery, SeverityError, "trajectory file not found").
		WithContext("dir", dir)
}

// Filesystem write errors abort the run.

func WriteFailed(path string, cause error) *PrepError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "file write failed").
		WithContext("path", path)
}

// External tool errors

func SubmitFailed(script string, cause error) *PrepError {
	return Wrap(cause, CategoryScheduler, SeverityError, "job submission failed").
		WithContext("script", script)
}

func FrameCountFailed(trajectory string, cause error) *PrepError {
	return Wrap(cause, CategoryCpptraj, SeverityError, "frame count failed").
		WithContext("trajectory", trajectory)
}

// Internal errors

func InternalError(message string, cause error) *PrepError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
