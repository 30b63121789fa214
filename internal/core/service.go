package core

import (
	"context"
	"errors"

	"stock-manager/internal/core/model"
)

// CatalogStore is the port to whatever holds the loaded snapshots. The
// core borrows records read-only and never mutates them.
type CatalogStore interface {
	Snapshots(ctx context.Context) ([]model.SnapshotID, error)
	Records(ctx context.Context, id model.SnapshotID) ([]model.CatalogRecord, error)
	Summary(ctx context.Context, id model.SnapshotID) (model.CatalogSummary, error)
}

// SnapshotSource is the ingestion collaborator's boundary: it supplies
// already-validated catalog records for discovered snapshots.
type SnapshotSource interface {
	Snapshots(ctx context.Context) ([]model.SnapshotID, error)
	Fetch(ctx context.Context, id model.SnapshotID) ([]model.CatalogRecord, error)
}

var (
	ErrNoSnapshots        = errors.New("no_snapshots")
	ErrSnapshotNotFound   = errors.New("snapshot_not_found")
	ErrCatalogUnavailable = errors.New("catalog_unavailable")
)

type Service struct {
	Store    CatalogStore
	Resolver *Resolver
	Tol      model.Tolerances
}

func NewService(store CatalogStore, tol model.Tolerances) *Service {
	return &Service{Store: store, Resolver: &Resolver{}, Tol: tol}
}

// SearchInput carries everything one search invocation needs. Snapshot
// is explicit rather than ambient state; empty means "the active one".
type SearchInput struct {
	Snapshot model.SnapshotID
	Criteria model.FilterCriteria
	View     View
}

// Search resolves the snapshot, filters its records, then sorts and
// pages the matched set. Zero matches is a valid outcome, not an
// error.
func (s *Service) Search(ctx context.Context, in SearchInput) (model.ResultPage, error) {
	id, err := s.resolve(ctx, in.Snapshot)
	if err != nil {
		return model.ResultPage{}, err
	}
	records, err := s.Store.Records(ctx, id)
	if err != nil {
		return model.ResultPage{}, ErrCatalogUnavailable
	}
	matched, _ := Search(records, in.Criteria, s.Tol)
	return Present(matched, in.View, len(records)), nil
}

// ListStock is the no-filter listing: the full active catalog, sorted
// and paged.
func (s *Service) ListStock(ctx context.Context, snapshot model.SnapshotID, v View) (model.ResultPage, error) {
	return s.Search(ctx, SearchInput{Snapshot: snapshot, View: v})
}

// Snapshots returns all known identifiers newest first, with extracted
// dates, plus the currently active one.
func (s *Service) Snapshots(ctx context.Context) ([]model.Snapshot, model.SnapshotID, error) {
	ids, err := s.Store.Snapshots(ctx)
	if err != nil {
		return nil, "", ErrCatalogUnavailable
	}
	active, err := s.Resolver.Active(ids)
	if err != nil {
		return nil, "", err
	}
	sorted := SortSnapshots(ids)
	out := make([]model.Snapshot, 0, len(sorted))
	for _, id := range sorted {
		out = append(out, model.Snapshot{ID: id, Date: SnapshotDate(id)})
	}
	return out, active, nil
}

// SelectSnapshot pins a snapshot for the session; it wins over the
// newest-export default until cleared.
func (s *Service) SelectSnapshot(ctx context.Context, id model.SnapshotID) error {
	if _, err := s.lookup(ctx, id); err != nil {
		return err
	}
	s.Resolver.Pin(id)
	return nil
}

func (s *Service) ClearSelection() {
	s.Resolver.Clear()
}

// Summary aggregates the snapshot per profile type. Empty id means the
// active snapshot.
func (s *Service) Summary(ctx context.Context, snapshot model.SnapshotID) (model.CatalogSummary, error) {
	id, err := s.resolve(ctx, snapshot)
	if err != nil {
		return model.CatalogSummary{}, err
	}
	sum, err := s.Store.Summary(ctx, id)
	if err != nil {
		return model.CatalogSummary{}, ErrCatalogUnavailable
	}
	return sum, nil
}

func (s *Service) resolve(ctx context.Context, id model.SnapshotID) (model.SnapshotID, error) {
	if id != "" {
		return s.lookup(ctx, id)
	}
	ids, err := s.Store.Snapshots(ctx)
	if err != nil {
		return "", ErrCatalogUnavailable
	}
	return s.Resolver.Active(ids)
}

func (s *Service) lookup(ctx context.Context, id model.SnapshotID) (model.SnapshotID, error) {
	ids, err := s.Store.Snapshots(ctx)
	if err != nil {
		return "", ErrCatalogUnavailable
	}
	for _, known := range ids {
		if known == id {
			return id, nil
		}
	}
	return "", ErrSnapshotNotFound
}
