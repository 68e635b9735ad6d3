// Package audit keeps an append-only JSONL trail of scan runs. Records
// hold counts and a content fingerprint only; detected values and document
// text never reach the log.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/smartmask/smartmask/internal/types"
)

const logFileName = "audit.jsonl"

// ScanRecord summarizes one detection run over one document.
type ScanRecord struct {
	Timestamp   time.Time      `json:"timestamp"`
	ScanID      string         `json:"scan_id"`
	Path        string         `json:"path"`
	Fingerprint string         `json:"fingerprint"`
	Detections  int            `json:"detections"`
	TypeCounts  map[string]int `json:"type_counts"`
	Duration    string         `json:"duration"`
	Masked      bool           `json:"masked,omitempty"`
}

// Fingerprint hashes document text so reruns over unchanged content are
// recognizable in the trail without storing the content.
func Fingerprint(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// NewRecord builds a ScanRecord from a run's outcome. The detections
// themselves are reduced to counts here and discarded.
func NewRecord(path, text string, ds []types.Detection, duration time.Duration) ScanRecord {
	counts := make(map[string]int)
	for typ, n := range types.CountByType(ds) {
		counts[string(typ)] = n
	}
	return ScanRecord{
		Timestamp:   time.Now(),
		Path:        path,
		Fingerprint: Fingerprint(text),
		Detections:  len(ds),
		TypeCounts:  counts,
		Duration:    duration.String(),
	}
}

// Log appends records to a JSONL file under the config directory.
type Log struct {
	logPath string
}

// New returns a log writing under dir. Empty dir means the default config
// location.
func New(dir string) *Log {
	if dir == "" {
		dir = defaultDir()
	}
	return &Log{logPath: filepath.Join(dir, logFileName)}
}

func defaultDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "smartmask")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return "."
	}
	return filepath.Join(home, ".config", "smartmask")
}

// Append writes one record. The file is owner-only: even count metadata
// reveals which documents carry PII.
func (l *Log) Append(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", time.Now().UnixNano())
	}
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0700); err != nil {
		return fmt.Errorf("create audit directory: %w", err)
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// Clear removes the audit trail. A log that never existed is not an error.
func (l *Log) Clear() error {
	if err := os.Remove(l.logPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear audit log: %w", err)
	}
	return nil
}

// History returns all records, newest first. Undecodable lines are
// skipped so a torn write never blocks later reads.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record ScanRecord
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
