package indexer

import "time"

// ScanStats summarizes one workspace scan.
type ScanStats struct {
	// FilesScanned is the number of files read and reconciled.
	FilesScanned int `json:"files_scanned"`
	// FilesSkipped is the number of files skipped as unchanged by hash.
	FilesSkipped int `json:"files_skipped"`
	// FilesWithNoRecords is the number of scanned files yielding 0 records.
	FilesWithNoRecords int `json:"files_with_no_records"`
	// FilesFailed is the number of files that could not be read or scanned.
	FilesFailed int `json:"files_failed"`
	// RecordsAdded is the total number of records indexed by the scan.
	RecordsAdded int `json:"records_added"`
	// RecordsByFileType breaks RecordsAdded down per file type.
	RecordsByFileType map[string]int `json:"records_by_file_type"`
	// Cancelled reports whether the scan was cut short by cancellation.
	Cancelled bool `json:"cancelled"`
	// StartedAt is when the scan began.
	StartedAt time.Time `json:"started_at"`
	// Duration is the elapsed scan time.
	Duration time.Duration `json:"duration"`
}

func newScanStats() *ScanStats {
	return &ScanStats{
		RecordsByFileType: make(map[string]int),
		StartedAt:         time.Now(),
	}
}
