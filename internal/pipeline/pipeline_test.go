// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/resume-server/internal/docx"
	"github.com/pdiddy/resume-server/internal/soffice"
	"github.com/pdiddy/resume-server/internal/upload"
)

// fakeConverter implements Converter for testing. It records calls and
// returns canned output or an error.
type fakeConverter struct {
	output []byte
	err    error
	calls  int
	input  []byte
}

func (f *fakeConverter) Convert(ctx context.Context, doc []byte) ([]byte, error) {
	f.calls++
	f.input = doc
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

// containerWith builds a minimal .docx buffer holding the given paragraphs.
func containerWith(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	documentXML := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte(documentXML))
	zw.Close()
	return buf.Bytes()
}

func TestExtractTextModernPath(t *testing.T) {
	conv := &fakeConverter{}
	p := New(conv, nil)

	text, err := p.ExtractText(context.Background(), "resume.docx", containerWith(t, "Hello", "World"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello\nWorld" {
		t.Errorf("text = %q, want %q", text, "Hello\nWorld")
	}
	if conv.calls != 0 {
		t.Errorf("converter invoked %d times on the modern path, want 0", conv.calls)
	}
}

func TestExtractTextLegacyPath(t *testing.T) {
	legacy := []byte("legacy binary bytes")
	conv := &fakeConverter{output: containerWith(t, "From legacy")}
	p := New(conv, nil)

	text, err := p.ExtractText(context.Background(), "resume.doc", legacy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "From legacy" {
		t.Errorf("text = %q, want %q", text, "From legacy")
	}
	if conv.calls != 1 {
		t.Errorf("converter invoked %d times, want 1", conv.calls)
	}
	if !bytes.Equal(conv.input, legacy) {
		t.Error("converter did not receive the raw upload bytes")
	}
}

func TestExtractTextRejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{
			name:     "unsupported extension",
			filename: "resume.pdf",
			data:     []byte("pdf"),
			wantErr:  upload.ErrUnsupportedFormat,
		},
		{
			name:     "no extension",
			filename: "resume",
			data:     []byte("bytes"),
			wantErr:  upload.ErrUnsupportedFormat,
		},
		{
			name:     "oversized payload",
			filename: "resume.docx",
			data:     make([]byte, upload.MaxFileSize+1),
			wantErr:  upload.ErrPayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &fakeConverter{}
			p := New(conv, nil)

			_, err := p.ExtractText(context.Background(), tt.filename, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if conv.calls != 0 {
				t.Errorf("rejected upload must not reach the converter (called %d times)", conv.calls)
			}
		})
	}
}

func TestExtractTextConverterFailurePassthrough(t *testing.T) {
	for _, sentinel := range []error{
		soffice.ErrConverterUnavailable,
		soffice.ErrConversionTimeout,
		soffice.ErrConversionFailed,
	} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			conv := &fakeConverter{err: fmt.Errorf("%w: details", sentinel)}
			p := New(conv, nil)

			_, err := p.ExtractText(context.Background(), "resume.doc", []byte("legacy"))
			if !errors.Is(err, sentinel) {
				t.Fatalf("error = %v, want %v preserved", err, sentinel)
			}
		})
	}
}

func TestExtractTextMalformedAfterConversion(t *testing.T) {
	// Converter succeeds but hands back garbage.
	conv := &fakeConverter{output: []byte("not a zip")}
	p := New(conv, nil)

	_, err := p.ExtractText(context.Background(), "resume.doc", []byte("legacy"))
	if !errors.Is(err, docx.ErrMalformedDocument) {
		t.Fatalf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestExtractTextMalformedModern(t *testing.T) {
	p := New(&fakeConverter{}, nil)

	_, err := p.ExtractText(context.Background(), "resume.docx", []byte("not a zip"))
	if !errors.Is(err, docx.ErrMalformedDocument) {
		t.Fatalf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestExtractTextEmptyParagraphDocument(t *testing.T) {
	p := New(&fakeConverter{}, nil)

	text, err := p.ExtractText(context.Background(), "resume.docx", containerWith(t, "Hello", "", "World"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "Hello\n\nWorld" {
		t.Errorf("text = %q, want %q", text, "Hello\n\nWorld")
	}
}
