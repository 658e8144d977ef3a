// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline coordinates the document-to-text flow: upload validation,
// legacy conversion when needed, and container text extraction.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/pdiddy/resume-server/internal/docx"
	"github.com/pdiddy/resume-server/internal/upload"
)

// Converter transcodes a legacy binary document into the zipped-XML container.
// The production implementation drives LibreOffice; tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, doc []byte) ([]byte, error)
}

// Pipeline turns uploaded word-processing documents into plain text. It holds
// no state shared across requests.
type Pipeline struct {
	converter Converter
	logger    *slog.Logger
}

// New creates a Pipeline with the given legacy-format converter.
func New(converter Converter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{converter: converter, logger: logger}
}

// ExtractText validates the upload, converts legacy input to the container
// format, and returns the extracted plain text. It yields either the complete
// text or a single typed failure; it never returns partial output, and an
// error is never downgraded to an empty success.
func (p *Pipeline) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	format, err := upload.Classify(filename, len(data))
	if err != nil {
		return "", err
	}

	buf := data
	if format == upload.FormatDoc {
		p.logger.Debug("converting legacy document", "filename", filename, "size", len(data))
		buf, err = p.converter.Convert(ctx, data)
		if err != nil {
			return "", err
		}
	}

	return docx.ExtractText(buf)
}
