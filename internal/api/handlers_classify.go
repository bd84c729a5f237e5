package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tmarler/formsight/internal/parser"
)

// classifyResponse is the success body for POST /api/classify.
type classifyResponse struct {
	Success        bool   `json:"success"`
	DocumentID     string `json:"documentId"`
	RawText        string `json:"rawText"`
	DisabilityType string `json:"disabilityType"`
}

// handleClassify extracts text locally from documents that carry a text
// layer and classifies it without a cloud round-trip.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	text, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		s.log.Error("extract text", "filename", filename, "error", err)
		jsonError(w, "failed to extract text from document", http.StatusUnprocessableEntity)
		return
	}

	dtype := s.classifier.Classify(text)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(classifyResponse{
		Success:        true,
		DocumentID:     uuid.NewString(),
		RawText:        text,
		DisabilityType: string(dtype),
	})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
