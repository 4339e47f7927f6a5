// Package media loads the image files that picture nodes reference and
// reports their natural size.
package media

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	// Decoders for the formats a picture may reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"
)

// Asset is a decoded image header plus the raw file bytes.
type Asset struct {
	Path   string
	Data   []byte
	Format string
	Width  int
	Height int
}

// Ext returns the extension used for the media part, without the dot.
func (a *Asset) Ext() string {
	if a.Format == "jpeg" {
		return "jpg"
	}
	return a.Format
}

// ContentType returns the MIME type of the image.
func (a *Asset) ContentType() string {
	return "image/" + a.Format
}

// AssetError reports an image that could not be used.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether err is an AssetError for a missing file.
func IsNotExist(err error) bool {
	var ae *AssetError
	return errors.As(err, &ae) && os.IsNotExist(errors.Cause(ae.Err))
}

// Load reads and probes an image file.
func Load(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	a, err := Decode(data)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	a.Path = path
	return a, nil
}

// Decode probes image bytes without decoding the pixels.
func Decode(data []byte) (*Asset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "unsupported image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Errorf("image has no area (%dx%d)", cfg.Width, cfg.Height)
	}
	return &Asset{
		Data:   data,
		Format: strings.ToLower(format),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
