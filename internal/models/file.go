// Package models defines the file-level types shared by storage and the
// catalogue.
package models

import "time"

// FileMetadata describes one file under a storage root.
type FileMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Diagram is a rendered diagram document.
type Diagram struct {
	Kind        string `json:"kind"` // "chord" or "scale"
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
	Checksum    string `json:"checksum"`
}

// ExportResult reports the files written by an export run.
type ExportResult struct {
	Written   []string `json:"written"`
	Unchanged []string `json:"unchanged"`
}
