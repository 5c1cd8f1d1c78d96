package groups

import (
	"sort"
	"strings"
)

// Favorite state is derived per functionality path rather than stored
// separately: a path is favorite when any record at exactly that path is
// flagged, and favorite-by-inheritance when an ancestor path is. The
// cascading toggle below is the only mutation.

// ToggleFavorite flips favorite state for every record whose functionality
// equals the given path or descends from it. The new state inverts the flag
// of a deterministic representative: the matching record that sorts first by
// (filePath, functionality, first line). Returns whether any record matched
// and the state that was applied; an unknown path is a no-op reporting
// found=false.
func (idx *Index) ToggleFavorite(path string) (found bool, newState bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	type location struct {
		fileType string
		pos      int
	}
	var matches []location
	for fileType, recs := range idx.byType {
		for i, rec := range recs {
			if rec.matchesPath(path) {
				matches = append(matches, location{fileType, i})
			}
		}
	}
	if len(matches) == 0 {
		idx.logger.Debug("favorite toggle on unknown path", "path", path)
		return false, false
	}

	sort.Slice(matches, func(i, j int) bool {
		a := idx.byType[matches[i].fileType][matches[i].pos]
		b := idx.byType[matches[j].fileType][matches[j].pos]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Functionality != b.Functionality {
			return a.Functionality < b.Functionality
		}
		return firstLine(a) < firstLine(b)
	})

	representative := idx.byType[matches[0].fileType][matches[0].pos]
	newState = !representative.IsFavorite

	for _, loc := range matches {
		idx.byType[loc.fileType][loc.pos].IsFavorite = newState
	}
	idx.version++
	return true, newState
}

// IsFavorite reports whether the path is favorite, directly or by
// inheritance from a favorited ancestor. Matching is case-insensitive, like
// functionality lookup.
func (idx *Index) IsFavorite(path string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	lower := strings.ToLower(path)
	for _, recs := range idx.byType {
		for _, rec := range recs {
			if !rec.IsFavorite {
				continue
			}
			fn := strings.ToLower(rec.Functionality)
			// Direct favorite at this path, or this path descends from a
			// favorited ancestor.
			if fn == lower || strings.HasPrefix(lower, fn+PathSeparator) {
				return true
			}
		}
	}
	return false
}

// FavoriteRecords returns a copy of every record currently flagged favorite.
func (idx *Index) FavoriteRecords() []Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var favorites []Record
	for _, recs := range idx.byType {
		for _, rec := range recs {
			if rec.IsFavorite {
				r := rec
				r.LineNumbers = append([]int(nil), rec.LineNumbers...)
				favorites = append(favorites, r)
			}
		}
	}
	return favorites
}

// FavoriteKeys returns the filePath::functionality keys of all flagged
// records, the unit favorites are persisted under (user-scoped, separate
// from the shared snapshot).
func (idx *Index) FavoriteKeys() map[string]bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	keys := make(map[string]bool)
	for _, recs := range idx.byType {
		for _, rec := range recs {
			if rec.IsFavorite {
				keys[rec.Key()] = true
			}
		}
	}
	return keys
}

// ApplyFavorites sets favorite flags from persisted filePath::functionality
// keys. Keys with no matching record are ignored.
func (idx *Index) ApplyFavorites(keys map[string]bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(keys) == 0 {
		return
	}
	lowered := make(map[string]bool, len(keys))
	for key, fav := range keys {
		lowered[strings.ToLower(key)] = fav
	}
	changed := false
	for fileType, recs := range idx.byType {
		for i, rec := range recs {
			if fav, ok := lowered[strings.ToLower(rec.Key())]; ok && rec.IsFavorite != fav {
				idx.byType[fileType][i].IsFavorite = fav
				changed = true
			}
		}
	}
	if changed {
		idx.version++
	}
}

func firstLine(r Record) int {
	if len(r.LineNumbers) == 0 {
		return 0
	}
	return r.LineNumbers[0]
}
