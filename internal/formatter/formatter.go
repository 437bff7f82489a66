// package formatter renders playlist backups to disk: one JSON file per
// playlist plus a per-run manifest
package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/ytbak/internal/services"
	"github.com/desertthunder/ytbak/internal/shared"
)

const manifestFileName = "backup_manifest.json"

// Backup is the on-disk shape of a playlist backup file.
type Backup struct {
	Items []services.Item `json:"items"`
}

// BackupFileName derives the backup filename for a playlist from its owning
// channel and title: "(<channelTitle>) <title>.json".
func BackupFileName(channelTitle, title string) string {
	return fmt.Sprintf("(%s) %s.json", channelTitle, title)
}

// WriteBackupFile writes a playlist's items to its backup file in dir and
// returns the full path. When includeListIDs is false the entries are
// flattened to bare title strings. An existing file with the same name is
// overwritten.
func WriteBackupFile(dir string, info *services.PlaylistInfo, items []services.Item, includeListIDs bool) (string, error) {
	if items == nil {
		items = []services.Item{}
	}
	if !includeListIDs {
		flattened := make([]services.Item, len(items))
		for i, item := range items {
			flattened[i] = services.Item{Title: item.Title}
		}
		items = flattened
	}

	data, err := shared.MarshalJSON(Backup{Items: items}, false)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}

	path := filepath.Join(dir, BackupFileName(info.ChannelTitle, info.Title))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrDirectory, err)
	}

	return path, nil
}

// ReadBackupFile loads a backup file back into memory.
func ReadBackupFile(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup Backup
	if err := shared.UnmarshalJSON(data, &backup); err != nil {
		return nil, fmt.Errorf("failed to parse backup file: %w", err)
	}

	return &backup, nil
}

// ManifestEntry summarizes one completed playlist backup.
type ManifestEntry struct {
	Title      string `json:"title"`
	ItemsCount int    `json:"itemsCount"`
	File       string `json:"file"`
}

// WriteRunManifest writes the run manifest alongside the backup files and
// returns its path. Entries are recorded in the order given.
func WriteRunManifest(dir string, entries []ManifestEntry) (string, error) {
	if entries == nil {
		entries = []ManifestEntry{}
	}

	data, err := shared.MarshalJSON(entries, true)
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dir, manifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrDirectory, err)
	}

	return path, nil
}
