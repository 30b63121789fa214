package adapter

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stock-manager/internal/core/model"
)

var (
	errUnavailable = errors.New("catalog unavailable")
	errEmptyID     = errors.New("empty snapshot id")
)

// CatalogRepo is an in-memory snapshot store. Loading a snapshot swaps
// the stored slice wholesale, so an in-flight search sees either the
// old catalog in full or the new one in full, never a mix.
type CatalogRepo struct {
	mu        sync.RWMutex
	snapshots map[model.SnapshotID][]model.CatalogRecord
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{snapshots: make(map[model.SnapshotID][]model.CatalogRecord)}
}

// ReplaceSnapshot installs records under the given identifier,
// replacing any previous version. Records without an id get one
// assigned; the caller's slice is never retained.
func (r *CatalogRepo) ReplaceSnapshot(_ context.Context, id model.SnapshotID, records []model.CatalogRecord) error {
	if id == "" {
		return errEmptyID
	}
	cp := make([]model.CatalogRecord, len(records))
	copy(cp, records)
	for i := range cp {
		if cp[i].ID == "" {
			cp[i].ID = uuid.NewString()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[id] = cp
	return nil
}

func (r *CatalogRepo) DropSnapshot(_ context.Context, id model.SnapshotID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots, id)
}

func (r *CatalogRepo) Snapshots(_ context.Context) ([]model.SnapshotID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]model.SnapshotID, 0, len(r.snapshots))
	for id := range r.snapshots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Records returns a copy of the snapshot's records so callers can sort
// freely without touching the stored catalog.
func (r *CatalogRepo) Records(_ context.Context, id model.SnapshotID) ([]model.CatalogRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records, ok := r.snapshots[id]
	if !ok {
		return nil, errUnavailable
	}
	out := make([]model.CatalogRecord, len(records))
	copy(out, records)
	return out, nil
}

// Summary aggregates entries, pieces, and weight per profile type.
// Weights are summed as decimals so totals stay exact across large
// exports.
func (r *CatalogRepo) Summary(_ context.Context, id model.SnapshotID) (model.CatalogSummary, error) {
	r.mu.RLock()
	records, ok := r.snapshots[id]
	r.mu.RUnlock()
	if !ok {
		return model.CatalogSummary{}, errUnavailable
	}

	byProfile := make(map[model.ProfileType]*model.ProfileSummary)
	total := decimal.Zero
	for _, rec := range records {
		s, ok := byProfile[rec.ProfileType]
		if !ok {
			s = &model.ProfileSummary{ProfileType: rec.ProfileType, Weight: decimal.Zero}
			byProfile[rec.ProfileType] = s
		}
		s.Entries++
		s.Pieces += rec.Quantity
		w := decimal.NewFromFloat(rec.Weight)
		s.Weight = s.Weight.Add(w)
		total = total.Add(w)
	}

	sum := model.CatalogSummary{Snapshot: id, Entries: len(records), TotalWeight: total}
	for _, p := range model.ProfileTypes {
		if s, ok := byProfile[p]; ok {
			sum.Profiles = append(sum.Profiles, *s)
		}
	}
	return sum, nil
}
