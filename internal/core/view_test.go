//go:build unit

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-manager/internal/core/model"
	"stock-manager/pkg/util"
)

func seq(n int) []model.CatalogRecord {
	out := make([]model.CatalogRecord, n)
	for i := range out {
		out[i] = model.CatalogRecord{ID: "r" + string(rune('a'+i%26)), Weight: float64(i)}
	}
	return out
}

func TestPresent_SortNumericAscDesc(t *testing.T) {
	records := []model.CatalogRecord{
		{ID: "a", Weight: 30},
		{ID: "b", Weight: 10},
		{ID: "c", Weight: 20},
	}
	v := NewView(10)
	v.SortBy = model.SortByWeight

	page := Present(records, v, len(records))
	assert.Equal(t, []string{"b", "c", "a"}, idsOf(page.Items))

	v.Dir = model.SortDesc
	page = Present(records, v, len(records))
	assert.Equal(t, []string{"a", "c", "b"}, idsOf(page.Items))
}

func TestPresent_NilValuesLast_BothDirections(t *testing.T) {
	records := []model.CatalogRecord{
		{ID: "a", Diameter: util.GetPtr(30.0)},
		{ID: "missing"},
		{ID: "b", Diameter: util.GetPtr(10.0)},
	}
	v := NewView(10)
	v.SortBy = model.SortByDiameter

	page := Present(records, v, len(records))
	assert.Equal(t, []string{"b", "a", "missing"}, idsOf(page.Items))

	v.Dir = model.SortDesc
	page = Present(records, v, len(records))
	assert.Equal(t, []string{"a", "b", "missing"}, idsOf(page.Items))
}

func TestPresent_TextSortCaseInsensitive(t *testing.T) {
	records := []model.CatalogRecord{
		{ID: "a", SteelGrade: "k110"},
		{ID: "b", SteelGrade: "BG 42"},
		{ID: "c", SteelGrade: "1.2311"},
	}
	v := NewView(10)
	v.SortBy = model.SortBySteelGrade
	page := Present(records, v, len(records))
	assert.Equal(t, []string{"c", "b", "a"}, idsOf(page.Items))
}

func TestPresent_StableOnTies(t *testing.T) {
	records := []model.CatalogRecord{
		{ID: "first", Weight: 5},
		{ID: "second", Weight: 5},
		{ID: "third", Weight: 5},
	}
	v := NewView(10)
	v.SortBy = model.SortByWeight
	page := Present(records, v, len(records))
	assert.Equal(t, []string{"first", "second", "third"}, idsOf(page.Items))
}

func TestPresent_InputNotMutated(t *testing.T) {
	records := []model.CatalogRecord{
		{ID: "a", Weight: 30},
		{ID: "b", Weight: 10},
	}
	v := NewView(10)
	v.SortBy = model.SortByWeight
	_ = Present(records, v, len(records))
	assert.Equal(t, "a", records[0].ID)
}

func TestPresent_Paging(t *testing.T) {
	records := seq(120)
	v := NewView(50)

	page := Present(records, v, 500)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 50, page.ItemsShown)
	assert.Equal(t, 120, page.TotalMatched)
	assert.Equal(t, 500, page.TotalAvailable)

	// past the end clamps to the last page, not an empty page
	v.SetPage(4)
	page = Present(records, v, 500)
	assert.Equal(t, 3, page.PageIndex)
	assert.Equal(t, 20, page.ItemsShown)
	require.Len(t, page.Items, 20)
}

func TestPresent_EmptyMatch_PageCountStillOne(t *testing.T) {
	v := NewView(50)
	page := Present(nil, v, 10)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 0, page.ItemsShown)
	assert.Equal(t, 0, page.TotalMatched)
}

func TestView_SetSort_ToggleAndReset(t *testing.T) {
	v := NewView(20)
	v.SetPage(3)

	v.SetSort(model.SortByWeight)
	assert.Equal(t, model.SortAsc, v.Dir)
	assert.Equal(t, 1, v.PageIndex, "sort change resets the page")

	v.SetSort(model.SortByWeight)
	assert.Equal(t, model.SortDesc, v.Dir, "same key toggles direction")

	v.SetSort(model.SortByQuantity)
	assert.Equal(t, model.SortByQuantity, v.SortBy)
	assert.Equal(t, model.SortAsc, v.Dir, "new key resets to ascending")
}

func TestView_PageNavigation_Clamped(t *testing.T) {
	v := NewView(50)

	v.PrevPage()
	assert.Equal(t, 1, v.PageIndex, "backing past page 1 is a no-op")

	v.NextPage(120)
	v.NextPage(120)
	assert.Equal(t, 3, v.PageIndex)
	v.NextPage(120)
	assert.Equal(t, 3, v.PageIndex, "advancing past the last page is a no-op")
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 3, PageCount(120, 50))
	assert.Equal(t, 1, PageCount(0, 50))
	assert.Equal(t, 1, PageCount(50, 50))
	assert.Equal(t, 2, PageCount(51, 50))
}

func idsOf(rs []model.CatalogRecord) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
