package core

import (
	"sort"
	"strings"

	"stock-manager/internal/core/model"
)

// DefaultPageSize is used when a request does not name one.
const DefaultPageSize = 20

// View is the presentation state of one result table: sort column,
// direction, and the current page. It holds no data; Present derives a
// ResultPage from it and a matched set.
type View struct {
	SortBy    model.SortField
	Dir       model.SortDir
	PageIndex int
	PageSize  int
}

func NewView(pageSize int) View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return View{Dir: model.SortAsc, PageIndex: 1, PageSize: pageSize}
}

// SetSort re-sorting by the current column toggles the direction; a
// new column resets to ascending. Either way the page goes back to 1
// because the visible set changes.
func (v *View) SetSort(f model.SortField) {
	if f == v.SortBy {
		if v.Dir == model.SortAsc {
			v.Dir = model.SortDesc
		} else {
			v.Dir = model.SortAsc
		}
	} else {
		v.SortBy = f
		v.Dir = model.SortAsc
	}
	v.PageIndex = 1
}

// ResetPage is called whenever filter criteria change; a stale page
// position must never survive a different matched set.
func (v *View) ResetPage() {
	v.PageIndex = 1
}

func (v *View) SetPage(i int) {
	if i < 1 {
		i = 1
	}
	v.PageIndex = i
}

// NextPage and PrevPage clamp at the boundaries; walking past either
// end is a no-op, not an error.
func (v *View) NextPage(matched int) {
	if v.PageIndex < PageCount(matched, v.PageSize) {
		v.PageIndex++
	}
}

func (v *View) PrevPage() {
	if v.PageIndex > 1 {
		v.PageIndex--
	}
}

// PageCount is never below 1, so indicators never read "0 of 0".
func PageCount(matched, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	n := (matched + pageSize - 1) / pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// Present sorts the matched set per the view and slices the current
// page. The input slice is not modified.
func Present(matched []model.CatalogRecord, v View, totalAvailable int) model.ResultPage {
	if v.PageSize < 1 {
		v.PageSize = DefaultPageSize
	}
	items := make([]model.CatalogRecord, len(matched))
	copy(items, matched)
	sortRecords(items, v.SortBy, v.Dir)

	count := PageCount(len(items), v.PageSize)
	idx := v.PageIndex
	if idx < 1 {
		idx = 1
	}
	if idx > count {
		idx = count
	}
	start := (idx - 1) * v.PageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + v.PageSize
	if end > len(items) {
		end = len(items)
	}

	return model.ResultPage{
		Items:          items[start:end],
		PageIndex:      idx,
		PageCount:      count,
		ItemsShown:     end - start,
		TotalMatched:   len(matched),
		TotalAvailable: totalAvailable,
	}
}

// sortRecords orders records in place, stably. Records missing the
// sorted field go last in both directions so incomplete entries never
// outrank complete ones.
func sortRecords(rs []model.CatalogRecord, field model.SortField, dir model.SortDir) {
	num, text := accessors(field)
	if num == nil && text == nil {
		return // unspecified or unknown field: keep catalog order
	}
	desc := dir == model.SortDesc
	sort.SliceStable(rs, func(i, j int) bool {
		if num != nil {
			a, b := num(rs[i]), num(rs[j])
			switch {
			case a == nil && b == nil:
				return false
			case a == nil:
				return false
			case b == nil:
				return true
			}
			if *a == *b {
				return false
			}
			if desc {
				return *a > *b
			}
			return *a < *b
		}
		a, b := strings.ToLower(text(rs[i])), strings.ToLower(text(rs[j]))
		if a == "" || b == "" {
			return a != "" && b == "" // empty values last
		}
		if a == b {
			return false
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

func accessors(f model.SortField) (func(model.CatalogRecord) *float64, func(model.CatalogRecord) string) {
	switch f {
	case model.SortBySteelGrade:
		return nil, func(r model.CatalogRecord) string { return r.SteelGrade }
	case model.SortByProfile:
		return nil, func(r model.CatalogRecord) string { return string(r.ProfileType) }
	case model.SortByFullName:
		return nil, func(r model.CatalogRecord) string { return r.FullName }
	case model.SortBySizeText:
		return nil, func(r model.CatalogRecord) string { return r.SizeText }
	case model.SortByQuantity:
		return func(r model.CatalogRecord) *float64 { q := float64(r.Quantity); return &q }, nil
	case model.SortByWeight:
		return func(r model.CatalogRecord) *float64 { w := r.Weight; return &w }, nil
	case model.SortByWidth:
		return func(r model.CatalogRecord) *float64 { return r.Width }, nil
	case model.SortByHeight:
		return func(r model.CatalogRecord) *float64 { return r.Height }, nil
	case model.SortByLength:
		return func(r model.CatalogRecord) *float64 { return r.Length }, nil
	case model.SortByDiameter:
		return func(r model.CatalogRecord) *float64 { return r.Diameter }, nil
	case model.SortByThickness:
		return func(r model.CatalogRecord) *float64 { return r.Thickness }, nil
	}
	return nil, nil
}
