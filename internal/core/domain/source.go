package domain

import (
	"path/filepath"
	"strings"
)

// SourceFile is a tender document already downloaded to local storage.
// It is owned by the caller and read-only to the pipeline.
type SourceFile struct {
	// Path is the location of the file on disk.
	Path string

	// DisplayName is the original file name shown to users.
	DisplayName string

	// Ext is the detected lowercase extension including the dot (".pdf").
	Ext string
}

// NewSourceFile builds a SourceFile, deriving the extension from the display
// name first and the path second. An empty display name falls back to the
// base name of the path.
func NewSourceFile(path, displayName string) SourceFile {
	if displayName == "" {
		displayName = filepath.Base(path)
	}
	ext := strings.ToLower(filepath.Ext(displayName))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(path))
	}
	return SourceFile{
		Path:        path,
		DisplayName: displayName,
		Ext:         ext,
	}
}

// Name returns the label used for the file in logs and corpus headers.
func (f SourceFile) Name() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return filepath.Base(f.Path)
}
