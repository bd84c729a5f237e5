package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/tmarler/formsight/internal/analysis"
	"github.com/tmarler/formsight/internal/interpret"
)

// analyzeResponse is the success body for POST /api/analyze.
type analyzeResponse struct {
	Success          bool                      `json:"success"`
	DocumentID       string                    `json:"documentId"`
	KeyValuePairs    map[string]string         `json:"keyValuePairs"`
	RawText          string                    `json:"rawText"`
	DisabilityType   string                    `json:"disabilityType"`
	DocumentMetadata analysis.DocumentMetadata `json:"documentMetadata"`
	BlockCount       int                       `json:"blockCount"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	out, err := s.analyzer.AnalyzeDocument(r.Context(), data, []analysis.Feature{
		analysis.FeatureForms,
		analysis.FeatureTables,
	})
	if err != nil {
		s.analysisError(w, err)
		return
	}

	result := interpret.Interpret(out.Blocks)
	dtype := s.classifier.Classify(result.RawText)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyzeResponse{
		Success:          true,
		DocumentID:       uuid.NewString(),
		KeyValuePairs:    result.Pairs,
		RawText:          result.RawText,
		DisabilityType:   string(dtype),
		DocumentMetadata: out.DocumentMetadata,
		BlockCount:       result.BlockCount,
	})
}

// readUpload extracts the multipart "document" field and enforces the
// presence and size bounds. It writes the rejection itself and returns
// ok=false when the upload is unusable.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	// Limit total request size, with slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("document")
	if err != nil {
		jsonError(w, "document is required", http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read document", http.StatusInternalServerError)
		return nil, "", false
	}
	if len(data) == 0 {
		jsonError(w, "document is empty", http.StatusBadRequest)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}
	return data, sanitizeFilename(header.Filename), true
}

// analysisError maps an AnalyzeDocument failure to a client-safe response:
// service-reported failures keep their status and error kind, everything
// else collapses to a generic 500.
func (s *Server) analysisError(w http.ResponseWriter, err error) {
	var svcErr *analysis.ServiceError
	if errors.As(err, &svcErr) {
		status := svcErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		s.log.Error("analysis service error", "kind", svcErr.Kind, "status", svcErr.StatusCode)
		jsonError(w, "document analysis failed: "+svcErr.Kind, status)
		return
	}
	s.log.Error("analyze document", "error", err)
	jsonError(w, "internal server error", http.StatusInternalServerError)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
