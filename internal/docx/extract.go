// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx extracts plain text from zipped-XML word-processing documents
// (the OOXML .docx container: archive/zip → word/document.xml).
//
// Only top-level body paragraphs are read. Text inside tables, headers and
// footers is not traversed; this matches the extraction behavior of the
// service this replaces, and changing it would alter output for existing
// inputs. Known limitation.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedDocument is returned when the archive cannot be opened or the
// main document part is absent or unparseable.
var ErrMalformedDocument = errors.New("docx: malformed document")

// documentPart is the main document XML part inside the container.
const documentPart = "word/document.xml"

// Simplified WordprocessingML structures. Matching by local element name only
// keeps this independent of the namespace prefix the producer chose. Because
// the paragraph field binds direct children of <body>, paragraphs nested in
// tables are not collected.
type document struct {
	XMLName xml.Name `xml:"document"`
	Body    body     `xml:"body"`
}

type body struct {
	Paragraphs []paragraph `xml:"p"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []runText `xml:"t"`
}

type runText struct {
	Content string `xml:",chardata"`
}

// ExtractText returns the document's paragraph texts joined by single
// newlines, in document order. Runs within a paragraph are concatenated with
// no separator. An empty paragraph contributes an empty string (a blank line
// in the joined output); a document with no paragraphs yields "".
//
// ExtractText is a pure function of the byte buffer.
func ExtractText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: opening archive: %v", ErrMalformedDocument, err)
	}

	var part *zip.File
	for _, f := range archive.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("%w: %s not found", ErrMalformedDocument, documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrMalformedDocument, documentPart, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrMalformedDocument, documentPart, err)
	}

	var doc document
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", ErrMalformedDocument, documentPart, err)
	}

	lines := make([]string, len(doc.Body.Paragraphs))
	for i, p := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		lines[i] = b.String()
	}

	return strings.Join(lines, "\n"), nil
}
