// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/resume-server/internal/docx"
	"github.com/pdiddy/resume-server/internal/httputil"
	"github.com/pdiddy/resume-server/internal/soffice"
	"github.com/pdiddy/resume-server/internal/upload"
)

type convertResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("read upload", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	text, err := s.extractor.ExtractText(r.Context(), header.Filename, data)
	if err != nil {
		s.writeConvertError(w, header.Filename, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, convertResponse{Text: text})
}

// writeConvertError maps pipeline failures onto the statuses and messages the
// client surfaces to the user.
func (s *Server) writeConvertError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, upload.ErrUnsupportedFormat):
		httputil.WriteMessage(w, http.StatusBadRequest, "Unsupported file type. Please upload a .doc or .docx file")
	case errors.Is(err, upload.ErrPayloadTooLarge):
		httputil.WriteMessage(w, http.StatusRequestEntityTooLarge, "File too large (max 10 MB)")
	case errors.Is(err, soffice.ErrConverterUnavailable):
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server cannot convert .doc files (libreoffice not found)")
	case errors.Is(err, soffice.ErrConversionTimeout):
		httputil.WriteMessage(w, http.StatusInternalServerError, "LibreOffice conversion timed out")
	case errors.Is(err, soffice.ErrConversionFailed):
		s.logger.Error("convert document", "file", filename, "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, fmt.Sprintf("Conversion failed: %v", err))
	case errors.Is(err, docx.ErrMalformedDocument):
		httputil.WriteMessage(w, http.StatusInternalServerError, fmt.Sprintf("Failed to extract text from document: %v", err))
	default:
		s.logger.Error("extract text", "file", filename, "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
	}
}
