package clusterstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
)

// backupCounterFile tracks the next backup sequence number so Archive does
// not need to re-derive it by scanning the directory, avoiding the
// directory-scan numbering race a naive implementation would have.
const backupCounterFile = ".recluster-backup-seq.json"

type backupCounter struct {
	Next int `json:"next"`
}

// Archive copies the current index file to conflict_index<n>.json beside
// it, where n is a monotonically increasing counter, and returns the
// backup path written.
func (s *Store) Archive() (string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("clusterstore: read %s for archive: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	n, err := s.nextBackupSeq(dir)
	if err != nil {
		return "", err
	}

	backupPath := filepath.Join(dir, "conflict_index"+strconv.Itoa(n)+".json")
	if err := s.fs.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("clusterstore: write backup %s: %w", backupPath, err)
	}
	return backupPath, nil
}

// nextBackupSeq reads-increments-writes the backup counter sidecar,
// starting at 1 when the sidecar is absent.
func (s *Store) nextBackupSeq(dir string) (int, error) {
	counterPath := filepath.Join(dir, backupCounterFile)

	counter := backupCounter{Next: 1}
	data, err := s.fs.ReadFile(counterPath)
	if err == nil && len(data) > 0 {
		if jerr := json.Unmarshal(data, &counter); jerr != nil {
			return 0, fmt.Errorf("clusterstore: parse %s: %w", counterPath, jerr)
		}
	}

	n := counter.Next
	counter.Next = n + 1

	out, err := json.Marshal(counter)
	if err != nil {
		return 0, err
	}
	if err := s.fs.WriteFile(counterPath, out, 0o644); err != nil {
		return 0, fmt.Errorf("clusterstore: write %s: %w", counterPath, err)
	}
	return n, nil
}
