package handlers

import (
	"context"
	"errors"
	"net/http"

	"groupscope/internal/contextutil"
	"groupscope/internal/indexer"
)

// ScanHandler triggers rescans and file removals against the pipeline.
type ScanHandler struct {
	pipeline *indexer.Pipeline
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(pipeline *indexer.Pipeline) *ScanHandler {
	return &ScanHandler{pipeline: pipeline}
}

// FileRequest is the payload naming a single file by absolute path.
type FileRequest struct {
	Path string `json:"path"`
}

// ScanFileResponse reports the outcome of a single-file scan.
type ScanFileResponse struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Skipped bool   `json:"skipped"` // content unchanged since last scan
}

// RemoveFileResponse reports the outcome of a file removal.
type RemoveFileResponse struct {
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
}

// ScanAll rescans every workspace root. Cancellation of the request context
// stops the scan between files; already-processed files stay indexed and
// the partial stats are returned.
func (h *ScanHandler) ScanAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	stats, err := h.pipeline.ScanAll(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WarnContext(ctx, "scan completed with errors", "error", err)
	}
	writeJSON(w, r, http.StatusOK, stats)
}

// ScanFile rescans a single file. Paths outside the workspace, ignored
// paths and unrecognized extensions report 404.
func (h *ScanHandler) ScanFile(w http.ResponseWriter, r *http.Request) {
	var req FileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, r, http.StatusBadRequest, "path is required")
		return
	}

	added, ok, err := h.pipeline.ScanPath(r.Context(), req.Path)
	if !ok {
		writeError(w, r, http.StatusNotFound, "path is not a scannable workspace file")
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to scan file")
		return
	}

	resp := ScanFileResponse{Path: req.Path, Records: added}
	if added < 0 {
		resp.Records = 0
		resp.Skipped = true
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// RemoveFile drops all records for a file (delete or rename). Removing an
// unknown file is a safe no-op reporting removed=false.
func (h *ScanHandler) RemoveFile(w http.ResponseWriter, r *http.Request) {
	var req FileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, r, http.StatusBadRequest, "path is required")
		return
	}

	removed := h.pipeline.RemoveFile(req.Path)
	if !removed {
		contextutil.LoggerFromContext(r.Context()).InfoContext(r.Context(), "remove for unknown file", "path", req.Path)
	}
	writeJSON(w, r, http.StatusOK, RemoveFileResponse{Path: req.Path, Removed: removed})
}

// Stats returns the stats of the most recent workspace scan.
func (h *ScanHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.pipeline.LastStats()
	if stats == nil {
		writeError(w, r, http.StatusNotFound, "no scan has completed yet")
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
