package handlers

import (
	"net/http"

	"groupscope/internal/contextutil"
	"groupscope/internal/groups"
)

// GroupsHandler exposes the group index query surface.
type GroupsHandler struct {
	index *groups.Index
}

// NewGroupsHandler creates a new GroupsHandler.
func NewGroupsHandler(index *groups.Index) *GroupsHandler {
	return &GroupsHandler{index: index}
}

// ToggleFavoriteRequest is the payload for toggling a favorite path.
type ToggleFavoriteRequest struct {
	Path string `json:"path"`
}

// ToggleFavoriteResponse reports the state applied by a toggle.
type ToggleFavoriteResponse struct {
	Path       string `json:"path"`
	IsFavorite bool   `json:"isFavorite"`
}

// List returns all records, or the records for one functionality (grouped
// by file type) when the "functionality" query parameter is set. Lookup is
// case-insensitive; an unknown name yields an empty result, not an error.
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("functionality"); name != "" {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"functionality": name,
			"records":       h.index.RecordsForFunctionality(name),
		})
		return
	}
	records := h.index.AllRecords()
	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

// Distinct returns the distinct functionality names (case preserved).
func (h *GroupsHandler) Distinct(w http.ResponseWriter, r *http.Request) {
	names := h.index.DistinctFunctionalities()
	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":           len(names),
		"functionalities": names,
	})
}

// Favorites returns every record currently flagged favorite.
func (h *GroupsHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	records := h.index.FavoriteRecords()
	writeJSON(w, r, http.StatusOK, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

// IsFavorite reports favorite state for a path, including inheritance from
// favorited ancestors.
func (h *GroupsHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, r, http.StatusBadRequest, "path query parameter is required")
		return
	}
	writeJSON(w, r, http.StatusOK, ToggleFavoriteResponse{
		Path:       path,
		IsFavorite: h.index.IsFavorite(path),
	})
}

// ToggleFavorite toggles favorite state for a path and every descendant
// record. An unknown path reports 404; the index itself treats it as a
// no-op.
func (h *GroupsHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ToggleFavoriteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, r, http.StatusBadRequest, "path is required")
		return
	}

	found, newState := h.index.ToggleFavorite(req.Path)
	if !found {
		logger.InfoContext(ctx, "favorite toggle on unknown path", "path", req.Path)
		writeError(w, r, http.StatusNotFound, "no group found at path")
		return
	}

	logger.InfoContext(ctx, "favorite toggled", "path", req.Path, "is_favorite", newState)
	writeJSON(w, r, http.StatusOK, ToggleFavoriteResponse{
		Path:       req.Path,
		IsFavorite: newState,
	})
}
