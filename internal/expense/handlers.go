package expense

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/RNRequiem/Contabilidad/internal/extraction"
)

// maxUploadSize bounds a multipart batch upload (high-resolution phone
// photos run large).
const maxUploadSize = int64(50 << 20) // 50MB

// setCORSHeaders sets CORS headers on a response.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, code int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// contentTypeForUpload determines a file's MIME type, falling back to the
// extension when the multipart part carries none. MIME dispatch in the
// extraction package stays the authoritative gate.
func contentTypeForUpload(header string, filename string) string {
	contentType := strings.ToLower(strings.TrimSpace(header))
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".xml":
		return "application/xml"
	default:
		if contentType == "" {
			return "application/octet-stream"
		}
		return contentType
	}
}

type extractionFailure struct {
	File    string            `json:"file"`
	Reason  extraction.Reason `json:"reason"`
	Message string            `json:"message"`
}

type extractionResponse struct {
	Extractions []extraction.Result `json:"extractions"`
	Failures    []extractionFailure `json:"failures"`
	FailedCount int                 `json:"failed_count"`
	Summary     string              `json:"summary,omitempty"`
}

// handleExtractReceipts runs batch extraction over the uploaded files.
func (s *Server) handleExtractReceipts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Error parsing upload form")
		return
	}

	var files []extraction.File
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				slog.Error("Error opening uploaded file", "filename", header.Filename, "error", err)
				writeError(w, http.StatusBadRequest, "Error reading uploaded file")
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				slog.Error("Error reading uploaded file", "filename", header.Filename, "error", err)
				writeError(w, http.StatusBadRequest, "Error reading uploaded file")
				return
			}
			files = append(files, extraction.File{
				Name:     header.Filename,
				MIMEType: contentTypeForUpload(header.Header.Get("Content-Type"), header.Filename),
				Data:     data,
			})
		}
	}

	result, err := s.service.ExtractReceipts(files)
	if err != nil {
		if errors.Is(err, extraction.ErrNoFiles) {
			writeError(w, http.StatusBadRequest, "Please select at least one receipt file.")
			return
		}
		slog.Error("Error extracting receipts", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := extractionResponse{
		Extractions: result.Extractions,
		Failures:    make([]extractionFailure, 0, len(result.Failures)),
		FailedCount: result.FailedCount(),
		Summary:     result.Summary(),
	}
	if resp.Extractions == nil {
		resp.Extractions = []extraction.Result{}
	}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, extractionFailure{
			File:    failure.File,
			Reason:  failure.Reason,
			Message: failure.Reason.Message(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSubmitExpenses assembles the held extractions into Pending records.
func (s *Server) handleSubmitExpenses(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batch, err := s.service.SubmitExpenses(sub)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Error submitting expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"expenses": batch})
}

// handleListExpenses returns the filtered records and their total. The
// status filter defaults to pending; status=all clears it.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := Filter{
		Employee:  q.Get("employee"),
		Trip:      q.Get("trip"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	switch status := q.Get("status"); status {
	case "":
		f.Status = StatusPending
	case "all":
		f.Status = ""
	default:
		if !Status(status).Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		f.Status = Status(status)
	}

	records, err := s.service.ListExpenses(f)
	if err != nil {
		slog.Error("Error listing expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": records,
		"total":    Total(records).String(),
	})
}

// handleGetExpense returns a single record.
func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.service.GetExpense(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Expense record not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleSetStatus applies an approve/reject decision to one record.
func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	e, err := s.service.SetStatus(r.PathValue("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Status must be approved or rejected")
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "Expense record not found")
		case errors.Is(err, ErrNotPending):
			writeError(w, http.StatusConflict, "Only pending expenses can be approved or rejected")
		default:
			slog.Error("Error updating expense status", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, e)
}

// handleFilterOptions returns the distinct employee and trip names.
func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	employees, trips, err := s.service.FilterOptions()
	if err != nil {
		slog.Error("Error deriving filter options", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"employees": employees,
		"trips":     trips,
	})
}

// handleGetReceipt returns the raw receipt bytes for a record.
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	e, err := s.service.GetExpense(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Expense record not found")
		return
	}
	data, err := e.ReceiptFile.Bytes()
	if err != nil {
		slog.Error("Error decoding receipt content", "id", e.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", e.ReceiptFile.MIMEType)
	w.Write(data)
}

// handleReceiptPreview returns an inline-displayable rendering of a receipt.
func (s *Server) handleReceiptPreview(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.ReceiptPreview(r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "Expense record not found")
		case errors.Is(err, ErrNoPreview):
			writeError(w, http.StatusUnsupportedMediaType, "This receipt type cannot be previewed")
		default:
			slog.Error("Error rendering receipt preview", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
