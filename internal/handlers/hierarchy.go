package handlers

import (
	"net/http"

	"groupscope/internal/groups"
	"groupscope/internal/hierarchy"
)

// HierarchyHandler serves the derived functionality tree.
type HierarchyHandler struct {
	index *groups.Index
}

// NewHierarchyHandler creates a new HierarchyHandler.
func NewHierarchyHandler(index *groups.Index) *HierarchyHandler {
	return &HierarchyHandler{index: index}
}

// Get rebuilds the forest from the current record snapshot and returns it
// as JSON, or as a printable text tree when "format=tree" is requested.
// Nodes are decorated with favorite state at render time.
func (h *HierarchyHandler) Get(w http.ResponseWriter, r *http.Request) {
	forest := hierarchy.Build(h.index.AllRecords())

	if r.URL.Query().Get("format") == "tree" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(hierarchy.Render(forest, h.index.IsFavorite)))
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"nodes":  forest.CountNodes(),
		"forest": forest,
	})
}
