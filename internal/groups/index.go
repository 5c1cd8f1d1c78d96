package groups

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Index is the single source of truth for all currently-known group records,
// organized by file type. It owns favorite state and a derived set of
// distinct functionality names.
//
// The index is safe for concurrent use; all read methods return copies so
// callers (hierarchy builds, the analyzer) always work on snapshots and can
// never mutate indexed records in place.
type Index struct {
	mu       sync.Mutex
	byType   map[string][]Record     // fileType -> records, insertion order preserved
	distinct map[string]struct{}     // case-sensitive membership of functionality names
	version  uint64                  // incremented on every mutation
	logger   *slog.Logger
}

// NewIndex creates an empty group index.
func NewIndex() *Index {
	return &Index{
		byType:   make(map[string][]Record),
		distinct: make(map[string]struct{}),
		logger:   slog.Default(),
	}
}

// AddRecords inserts records under the given file type. Records missing a
// file path or functionality are dropped, as are records duplicating an
// existing (functionality, filePath, lineNumbers) identity. The distinct
// functionality set is unioned with the new names (O(added), no recompute).
// Returns the number of records actually inserted.
func (idx *Index) AddRecords(fileType string, records []Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.addLocked(fileType, records)
}

func (idx *Index) addLocked(fileType string, records []Record) int {
	seen := idx.identitySetLocked()

	added := 0
	for _, rec := range records {
		if !rec.valid() {
			idx.logger.Debug("dropping invalid record", "file_path", rec.FilePath, "functionality", rec.Functionality)
			continue
		}
		key := rec.identityKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		idx.byType[fileType] = append(idx.byType[fileType], rec)
		idx.distinct[rec.Functionality] = struct{}{}
		added++
	}
	if added > 0 {
		idx.version++
	}
	return added
}

// identitySetLocked collects the identity keys of every indexed record.
func (idx *Index) identitySetLocked() map[string]struct{} {
	seen := make(map[string]struct{})
	for _, recs := range idx.byType {
		for _, rec := range recs {
			seen[rec.identityKey()] = struct{}{}
		}
	}
	return seen
}

// RemoveRecordsForFile removes every record whose file path matches the
// given path exactly (string equality, no normalization). The distinct
// functionality set is recomputed from the remaining records. Returns
// whether anything was removed; removal of an unknown file is a no-op.
func (idx *Index) RemoveRecordsForFile(filePath string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.removeFileLocked(filePath)
}

func (idx *Index) removeFileLocked(filePath string) bool {
	removed := false
	for fileType, recs := range idx.byType {
		kept := recs[:0]
		for _, rec := range recs {
			if rec.FilePath == filePath {
				removed = true
				continue
			}
			kept = append(kept, rec)
		}
		if len(kept) == 0 {
			delete(idx.byType, fileType)
		} else {
			idx.byType[fileType] = kept
		}
	}
	if removed {
		idx.recomputeDistinctLocked()
		idx.version++
	}
	return removed
}

// recomputeDistinctLocked rebuilds the distinct functionality set from
// scratch. Used after bulk removal, where incremental maintenance would
// require reference counting.
func (idx *Index) recomputeDistinctLocked() {
	idx.distinct = make(map[string]struct{})
	for _, recs := range idx.byType {
		for _, rec := range recs {
			idx.distinct[rec.Functionality] = struct{}{}
		}
	}
}

// ReplaceFileRecords reconciles a fresh scan of a single file into the
// index: favorite flags for the file are captured by filePath::functionality
// key, existing records for the file are removed, and the new records are
// inserted with the captured flags carried over. Returns the number of
// records inserted.
func (idx *Index) ReplaceFileRecords(fileType, filePath string, records []Record) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Capture favorite flags before dropping the stale records.
	favorites := make(map[string]bool)
	for _, recs := range idx.byType {
		for _, rec := range recs {
			if rec.FilePath == filePath && rec.IsFavorite {
				favorites[strings.ToLower(rec.Key())] = true
			}
		}
	}

	idx.removeFileLocked(filePath)

	carried := make([]Record, len(records))
	for i, rec := range records {
		if favorites[strings.ToLower(rec.Key())] {
			rec.IsFavorite = true
		}
		carried[i] = rec
	}
	return idx.addLocked(fileType, carried)
}

// AllRecords returns a copy of every indexed record. Order is per-bucket
// insertion order; bucket order is not defined.
func (idx *Index) AllRecords() []Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var all []Record
	for _, recs := range idx.byType {
		all = append(all, copyRecords(recs)...)
	}
	return all
}

// RecordsForFunctionality returns all records whose functionality matches
// the given name case-insensitively, grouped by file type. An unknown name
// yields an empty map.
func (idx *Index) RecordsForFunctionality(name string) map[string][]Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	result := make(map[string][]Record)
	for fileType, recs := range idx.byType {
		for _, rec := range recs {
			if strings.EqualFold(rec.Functionality, name) {
				result[fileType] = append(result[fileType], rec)
			}
		}
	}
	return result
}

// DistinctFunctionalities returns the maintained set of functionality names,
// sorted for stable enumeration. Membership is case-sensitive: "Auth" and
// "auth" are distinct entries even though lookup treats them as one.
func (idx *Index) DistinctFunctionalities() []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	names := make([]string, 0, len(idx.distinct))
	for name := range idx.distinct {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionalityCounts returns the number of records per distinct
// functionality name (exact casing). Used by the analyzer's best-name
// selection.
func (idx *Index) FunctionalityCounts() map[string]int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	counts := make(map[string]int)
	for _, recs := range idx.byType {
		for _, rec := range recs {
			counts[rec.Functionality]++
		}
	}
	return counts
}

// Version returns the mutation counter. It increments on every change and
// is the invalidation key for derived caches and the persistence throttle.
func (idx *Index) Version() uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.version
}

// Snapshot returns a deep copy of the index contents keyed by file type,
// suitable for persistence.
func (idx *Index) Snapshot() map[string][]Record {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	snapshot := make(map[string][]Record, len(idx.byType))
	for fileType, recs := range idx.byType {
		snapshot[fileType] = copyRecords(recs)
	}
	return snapshot
}

// Restore replaces the index contents with a persisted snapshot. Records go
// through the same validation and dedup as AddRecords.
func (idx *Index) Restore(snapshot map[string][]Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.byType = make(map[string][]Record)
	idx.distinct = make(map[string]struct{})
	for fileType, recs := range snapshot {
		idx.addLocked(fileType, recs)
	}
	idx.version++
}

func copyRecords(recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[i] = rec
		out[i].LineNumbers = append([]int(nil), rec.LineNumbers...)
	}
	return out
}
