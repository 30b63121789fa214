//go:build unit

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-manager/internal/core/model"
	"stock-manager/pkg/util"
)

// memStore is a minimal in-test CatalogStore.
type memStore struct {
	snapshots map[model.SnapshotID][]model.CatalogRecord
	fail      bool
}

func (m *memStore) Snapshots(_ context.Context) ([]model.SnapshotID, error) {
	if m.fail {
		return nil, errors.New("store down")
	}
	ids := make([]model.SnapshotID, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memStore) Records(_ context.Context, id model.SnapshotID) ([]model.CatalogRecord, error) {
	if m.fail {
		return nil, errors.New("store down")
	}
	records, ok := m.snapshots[id]
	if !ok {
		return nil, errors.New("missing")
	}
	return records, nil
}

func (m *memStore) Summary(_ context.Context, id model.SnapshotID) (model.CatalogSummary, error) {
	records, err := m.Records(context.Background(), id)
	if err != nil {
		return model.CatalogSummary{}, err
	}
	return model.CatalogSummary{Snapshot: id, Entries: len(records)}, nil
}

func twoSnapshotStore() *memStore {
	return &memStore{snapshots: map[model.SnapshotID][]model.CatalogRecord{
		"Stock 01.01.20.json": {mkBlock("old1", "1.2311", 100, 50, 2000)},
		"Stock 14.08.25.json": {
			mkBlock("new1", "1.2311", 100, 50, 2000),
			mkCircle("new2", "1.3343 ESR", 150, 3800),
		},
	}}
}

func TestService_Search_UsesNewestSnapshot(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())

	page, err := svc.Search(context.Background(), SearchInput{View: NewView(10)})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalMatched)
	assert.Equal(t, 2, page.TotalAvailable)
}

func TestService_Search_ExplicitSnapshotWins(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())

	page, err := svc.Search(context.Background(), SearchInput{Snapshot: "Stock 01.01.20.json", View: NewView(10)})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalMatched)
	assert.Equal(t, "old1", page.Items[0].ID)
}

func TestService_Search_UnknownSnapshot(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	_, err := svc.Search(context.Background(), SearchInput{Snapshot: "nope.json", View: NewView(10)})
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestService_Search_NoSnapshots(t *testing.T) {
	svc := NewService(&memStore{snapshots: map[model.SnapshotID][]model.CatalogRecord{}}, model.DefaultTolerances())
	_, err := svc.Search(context.Background(), SearchInput{View: NewView(10)})
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestService_Search_StoreDown_CatalogUnavailable(t *testing.T) {
	svc := NewService(&memStore{fail: true}, model.DefaultTolerances())
	_, err := svc.Search(context.Background(), SearchInput{View: NewView(10)})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestService_Search_ZeroMatchesIsNotAnError(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	page, err := svc.Search(context.Background(), SearchInput{
		Criteria: model.FilterCriteria{SteelGrade: util.GetPtr("does-not-exist")},
		View:     NewView(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalMatched)
	assert.Empty(t, page.Items)
}

func TestService_SelectSnapshot_PinAndClear(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	ctx := context.Background()

	require.NoError(t, svc.SelectSnapshot(ctx, "Stock 01.01.20.json"))
	page, err := svc.Search(ctx, SearchInput{View: NewView(10)})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalMatched)

	svc.ClearSelection()
	page, err = svc.Search(ctx, SearchInput{View: NewView(10)})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalMatched)
}

func TestService_SelectSnapshot_Unknown(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	err := svc.SelectSnapshot(context.Background(), "nope.json")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestService_Snapshots_SortedWithActive(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	snapshots, active, err := svc.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, model.SnapshotID("Stock 14.08.25.json"), snapshots[0].ID)
	assert.Equal(t, model.SnapshotID("Stock 14.08.25.json"), active)
	assert.False(t, snapshots[0].Date.IsZero())
}

func TestService_ListStock_EqualsEmptySearch(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	ctx := context.Background()

	listed, err := svc.ListStock(ctx, "", NewView(10))
	require.NoError(t, err)
	searched, err := svc.Search(ctx, SearchInput{View: NewView(10)})
	require.NoError(t, err)
	assert.Equal(t, searched, listed)
}

func TestService_Summary_ActiveSnapshot(t *testing.T) {
	svc := NewService(twoSnapshotStore(), model.DefaultTolerances())
	sum, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, model.SnapshotID("Stock 14.08.25.json"), sum.Snapshot)
	assert.Equal(t, 2, sum.Entries)
}
