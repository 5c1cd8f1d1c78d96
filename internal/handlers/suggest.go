package handlers

import (
	"net/http"
	"strconv"

	"groupscope/internal/analyzer"
)

// SuggestHandler serves refactoring suggestions from the analyzer.
// Suggestions are advisory only; nothing here mutates the index.
type SuggestHandler struct {
	engine *analyzer.Engine
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(engine *analyzer.Engine) *SuggestHandler {
	return &SuggestHandler{engine: engine}
}

// Similar returns consolidation suggestions for near-duplicate group names.
func (h *SuggestHandler) Similar(w http.ResponseWriter, r *http.Request) {
	suggestions := h.engine.SimilarGroups(r.Context())
	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":       len(suggestions),
		"suggestions": suggestions,
	})
}

// Hierarchy returns proposals for grouping flat names under shared parents.
func (h *SuggestHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	proposals := h.engine.HierarchyProposals()
	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":     len(proposals),
		"proposals": proposals,
	})
}

// Nearest returns indexed names similar to the given one.
func (h *SuggestHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name query parameter is required")
		return
	}
	k := 5
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		parsed, err := strconv.Atoi(kStr)
		if err != nil || parsed <= 0 {
			writeError(w, r, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		k = parsed
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"name":    name,
		"nearest": h.engine.NearestTo(r.Context(), name, k),
	})
}
