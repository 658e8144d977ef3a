// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload validates candidate word-processing documents before any
// extraction work begins.
package upload

import (
	"errors"
	"fmt"
	"strings"
)

// MaxFileSize is the upload size ceiling.
const MaxFileSize = 10 << 20 // 10 MiB

var (
	// ErrUnsupportedFormat is returned for filename extensions outside {doc, docx}.
	ErrUnsupportedFormat = errors.New("upload: unsupported file type")

	// ErrPayloadTooLarge is returned when the payload exceeds MaxFileSize.
	ErrPayloadTooLarge = errors.New("upload: file too large")
)

// Format identifies the word-processing container of an upload.
type Format string

const (
	// FormatDoc is the legacy binary format; it needs conversion before extraction.
	FormatDoc Format = "doc"
	// FormatDocx is the zipped-XML container format; it can be extracted directly.
	FormatDocx Format = "docx"
)

// Classify inspects the filename extension and payload size and reports the
// document format, or rejects the upload. The extension is the lowercased
// substring after the last dot; a filename without a dot has an empty
// extension. The format check runs before the size check, so an oversized
// file of an unknown type reports ErrUnsupportedFormat.
func Classify(filename string, size int) (Format, error) {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}

	format := Format(ext)
	if format != FormatDoc && format != FormatDocx {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if size > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, size, MaxFileSize)
	}

	return format, nil
}
