// Package media serves the bundled profile images as base64 data URIs for
// the simulated identity backend.
package media

import (
	"embed"
	"encoding/base64"
	"fmt"
	"io/fs"
)

//go:embed images/*.png
var images embed.FS

// The legacy frontend expects the jpeg prefix even for PNG assets.
const dataURIPrefix = "data:image/jpeg;base64,"

// Encoder turns a bundled image reference into an inline data URI.
type Encoder interface {
	DataURI(name string) (string, error)
}

// FSEncoder reads images from a file system, the embedded assets by default.
type FSEncoder struct {
	fsys fs.FS
}

// NewEncoder returns an FSEncoder over the embedded image assets.
func NewEncoder() *FSEncoder {
	return &FSEncoder{fsys: images}
}

// NewEncoderFS returns an FSEncoder over an arbitrary file system.
func NewEncoderFS(fsys fs.FS) *FSEncoder {
	return &FSEncoder{fsys: fsys}
}

// DataURI encodes the named image as a base64 data URI.
func (e *FSEncoder) DataURI(name string) (string, error) {
	b, err := fs.ReadFile(e.fsys, name)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", name, err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(b), nil
}
