package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stock-manager/internal/core/model"
)

// SnapshotDir discovers dated export files in a directory and loads
// their pre-parsed records. One JSON file per snapshot; the filename
// is the snapshot identifier. Parsing the upstream spreadsheets into
// these files is the ingestion pipeline's job, not ours.
type SnapshotDir struct {
	Dir string
}

func NewSnapshotDir(dir string) *SnapshotDir {
	return &SnapshotDir{Dir: dir}
}

func (d *SnapshotDir) Snapshots(_ context.Context) ([]model.SnapshotID, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot dir %s: %w", d.Dir, err)
	}
	var ids []model.SnapshotID
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		ids = append(ids, model.SnapshotID(e.Name()))
	}
	return ids, nil
}

func (d *SnapshotDir) Fetch(_ context.Context, id model.SnapshotID) ([]model.CatalogRecord, error) {
	name := string(id)
	// identifiers are bare filenames, never paths
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid snapshot id %q", id)
	}
	f, err := os.Open(filepath.Join(d.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	defer f.Close()

	var export snapshotExport
	if err := json.NewDecoder(f).Decode(&export); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return export.Items, nil
}

// snapshotExport is the ingestion pipeline's file format.
type snapshotExport struct {
	Items []model.CatalogRecord `json:"items"`
}
