package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer is the interface for manifest output destinations.
type Writer interface {
	// Write sends serialized bytes to the output destination.
	Write(data []byte) error
}

// StdoutWriter writes serialized output to a stream, os.Stdout by default.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a writer that sends output to w.
// If w is nil, os.Stdout is used.
func NewStdoutWriter(w io.Writer) *StdoutWriter {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutWriter{out: w}
}

// Write sends data to the stream.
func (sw *StdoutWriter) Write(data []byte) error {
	if _, err := sw.out.Write(data); err != nil {
		return fmt.Errorf("writing to stdout: %w", err)
	}

	return nil
}

// FileWriter replaces a file atomically: data goes to a temporary file in the
// target directory which is then renamed over the target, so the build
// pipeline never observes a half-written manifest.
type FileWriter struct {
	path   string
	perm   os.FileMode
	logger *slog.Logger
}

// FileWriterOption configures a FileWriter.
type FileWriterOption func(*FileWriter)

// WithPermissions overrides the default file permissions (0644).
func WithPermissions(perm os.FileMode) FileWriterOption {
	return func(fw *FileWriter) {
		fw.perm = perm
	}
}

// WithLogger sets a logger for the FileWriter.
func WithLogger(logger *slog.Logger) FileWriterOption {
	return func(fw *FileWriter) {
		fw.logger = logger
	}
}

// NewFileWriter creates a writer for the given file path.
func NewFileWriter(path string, opts ...FileWriterOption) *FileWriter {
	fw := &FileWriter{
		path:   path,
		perm:   0o644,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(fw)
	}

	return fw
}

// Write creates parent directories and atomically replaces the file.
func (fw *FileWriter) Write(data []byte) error {
	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(fw.path); err == nil {
		fw.logger.Debug("replacing existing file", slog.String("path", fw.path))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fw.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing file %s: %w", fw.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing file %s: %w", fw.path, err)
	}

	if err := os.Chmod(tmpName, fw.perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", fw.path, err)
	}

	if err := os.Rename(tmpName, fw.path); err != nil {
		return fmt.Errorf("replacing file %s: %w", fw.path, err)
	}

	return nil
}

// Path returns the output file path.
func (fw *FileWriter) Path() string {
	return fw.path
}
