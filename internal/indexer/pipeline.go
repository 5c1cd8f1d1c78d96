package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"groupscope/internal/contextutil"
	"groupscope/internal/extractor"
	"groupscope/internal/groups"
	"groupscope/internal/workspace"
)

// Pipeline orchestrates scanning workspace files into the group index: it
// reads each file, skips unchanged content by hash, extracts group records
// and reconciles them into the index with favorite flags carried over.
type Pipeline struct {
	workspace *workspace.Manager
	registry  *extractor.Registry
	index     *groups.Index
	logger    *slog.Logger

	mu        sync.Mutex
	hashes    map[string]string // absPath -> sha256 of last indexed content
	lastStats *ScanStats
}

// NewPipeline creates a scan pipeline.
func NewPipeline(ws *workspace.Manager, registry *extractor.Registry, index *groups.Index) *Pipeline {
	return &Pipeline{
		workspace: ws,
		registry:  registry,
		index:     index,
		logger:    slog.Default(),
		hashes:    make(map[string]string),
	}
}

// ScanFile scans a single file and reconciles its records into the index.
// Returns the number of records indexed; unchanged files (by content hash)
// are skipped and report -1.
func (p *Pipeline) ScanFile(ctx context.Context, file workspace.ScannedFile) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
	}

	hash := sha256.Sum256(content)
	hashHex := hex.EncodeToString(hash[:])

	p.mu.Lock()
	unchanged := p.hashes[file.AbsPath] == hashHex
	p.mu.Unlock()
	if unchanged {
		logger.DebugContext(ctx, "skipping unchanged file", "path", file.AbsPath)
		return -1, nil
	}

	ext := p.registry.ForLanguage(file.LanguageID)
	if ext == nil {
		return 0, nil
	}

	records := ext.Extract(content, file.LanguageID, file.AbsPath)
	added := p.index.ReplaceFileRecords(file.LanguageID, file.AbsPath, records)

	p.mu.Lock()
	p.hashes[file.AbsPath] = hashHex
	p.mu.Unlock()

	logger.DebugContext(ctx, "scanned file", "path", file.AbsPath, "records", added)
	return added, nil
}

// ScanPath scans one absolute path, when it resolves to a scannable
// workspace file. The boolean reports whether the path was scannable.
func (p *Pipeline) ScanPath(ctx context.Context, absPath string) (int, bool, error) {
	file, ok := p.workspace.ResolveFile(absPath)
	if !ok {
		return 0, false, nil
	}
	added, err := p.ScanFile(ctx, file)
	return added, true, err
}

// ScanAll walks every workspace root and scans each candidate file.
// Cancellation is checked between per-file units of work; files already
// processed stay indexed and the partial stats are returned alongside the
// context error. Per-file failures are logged and counted, never fatal.
func (p *Pipeline) ScanAll(ctx context.Context) (*ScanStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	stats := newScanStats()

	files, err := p.workspace.ScanAll(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return p.finishScan(stats), err
	}
	walkErr := err

	for _, file := range files {
		select {
		case <-ctx.Done():
			stats.Cancelled = true
			logger.InfoContext(ctx, "scan cancelled", "files_scanned", stats.FilesScanned)
			return p.finishScan(stats), ctx.Err()
		default:
		}

		added, err := p.ScanFile(ctx, file)
		switch {
		case err != nil:
			stats.FilesFailed++
			logger.WarnContext(ctx, "failed to scan file", "path", file.AbsPath, "error", err)
		case added < 0:
			stats.FilesSkipped++
		default:
			stats.FilesScanned++
			stats.RecordsAdded += added
			stats.RecordsByFileType[file.LanguageID] += added
			if added == 0 {
				stats.FilesWithNoRecords++
			}
		}
	}

	result := p.finishScan(stats)
	logger.InfoContext(ctx, "scan finished",
		"files_scanned", result.FilesScanned,
		"files_skipped", result.FilesSkipped,
		"files_failed", result.FilesFailed,
		"records_added", result.RecordsAdded,
		"duration", result.Duration)
	return result, walkErr
}

// RemoveFile drops every indexed record and the cached hash for a path.
// Returns whether anything was removed.
func (p *Pipeline) RemoveFile(absPath string) bool {
	p.mu.Lock()
	delete(p.hashes, absPath)
	p.mu.Unlock()
	return p.index.RemoveRecordsForFile(absPath)
}

// LastStats returns the stats of the most recent completed workspace scan,
// or nil if none has run.
func (p *Pipeline) LastStats() *ScanStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastStats == nil {
		return nil
	}
	copied := *p.lastStats
	return &copied
}

func (p *Pipeline) finishScan(stats *ScanStats) *ScanStats {
	stats.Duration = time.Since(stats.StartedAt)
	p.mu.Lock()
	p.lastStats = stats
	p.mu.Unlock()
	return stats
}
