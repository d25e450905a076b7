package axtree

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot is the on-disk form of a captured accessibility tree.
type Snapshot struct {
	App        string    `json:"app,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	Root       *NodeData `json:"root"`
}

// snapshotPrefix is the filename prefix for default snapshot files.
const snapshotPrefix = "axlocate-snapshot-"

// SnapshotPath returns the default path for a snapshot of app captured at ts,
// under the OS temp directory.
func SnapshotPath(app string, ts int64) string {
	safe := strings.ReplaceAll(app, "/", "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s%s-%d.json", snapshotPrefix, safe, ts))
}

// SaveSnapshot writes a captured tree as indented JSON.
func SaveSnapshot(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot file saved by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", path, err)
	}
	if snap.Root == nil {
		return nil, fmt.Errorf("snapshot %s has no root node", path)
	}
	return &snap, nil
}

// CleanSnapshots removes default-path snapshot files for the given app that
// are older than maxAge.
func CleanSnapshots(app string, maxAge time.Duration) {
	safe := strings.ReplaceAll(app, "/", "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	prefix := snapshotPrefix + safe + "-"

	dir := os.TempDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
