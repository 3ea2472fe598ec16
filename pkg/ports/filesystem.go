package ports

// FileSystem abstracts the file operations used by file-backed sinks.
type FileSystem interface {
	// WriteFile writes data to a file, creating parent directories if needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)
}
