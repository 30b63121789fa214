package core

import (
	"math"
	"strings"

	"stock-manager/internal/core/model"
)

// Search evaluates the criteria over every record and returns the
// matching subset in catalog order plus the total match count.
// Ordering and paging are the presentation layer's job.
func Search(catalog []model.CatalogRecord, c model.FilterCriteria, tol model.Tolerances) ([]model.CatalogRecord, int) {
	tol = withDefaults(tol)
	matched := make([]model.CatalogRecord, 0, len(catalog))
	for _, r := range catalog {
		if Matches(r, c, tol) {
			matched = append(matched, r)
		}
	}
	return matched, len(matched)
}

// Matches checks a single record against the criteria. All specified
// constraints must pass. A dimensional constraint only binds records
// of the profile type it is meant for: a diameter filter never rejects
// a sheet, it just doesn't vouch for it either.
func Matches(r model.CatalogRecord, c model.FilterCriteria, tol model.Tolerances) bool {
	if c.SteelGrade != nil && *c.SteelGrade != "" {
		if !strings.Contains(strings.ToLower(r.SteelGrade), strings.ToLower(*c.SteelGrade)) {
			return false
		}
	}
	if c.ProfileType != nil && r.ProfileType != *c.ProfileType {
		return false
	}

	switch r.ProfileType {
	case model.ProfileBlock:
		if c.BlockMin != nil && !minFit(r, *c.BlockMin) {
			return false
		}
	case model.ProfileCircle:
		if c.Circle != nil && !withinBand(r.Diameter, *c.Circle, tol.Diameter) {
			return false
		}
	case model.ProfileSheet:
		if c.Sheet != nil && !withinBand(r.Thickness, *c.Sheet, tol.Thickness) {
			return false
		}
	case model.ProfileStrip:
		if c.Strip != nil && !withinBand(r.Thickness, *c.Strip, tol.Thickness) {
			return false
		}
	}
	return true
}

// minFit: every positive requested dimension must be covered by the
// record. Offcuts larger than asked for are always acceptable. A nil
// record dimension is unconstrained, not zero.
func minFit(r model.CatalogRecord, min model.BlockMin) bool {
	if min.Width > 0 && r.Width != nil && *r.Width < min.Width {
		return false
	}
	if min.Height > 0 && r.Height != nil && *r.Height < min.Height {
		return false
	}
	if min.Length > 0 && r.Length != nil && *r.Length < min.Length {
		return false
	}
	return true
}

// withinBand: |dim - target| <= tolerance. A non-positive target is
// treated as not provided (bad user input must not match nothing). A
// negative or missing tolerance falls back to the default; zero is
// honored as an exact match.
func withinBand(dim *float64, b model.Band, def float64) bool {
	if b.Value <= 0 {
		return true
	}
	if dim == nil {
		return true
	}
	t := def
	if b.Tolerance != nil && *b.Tolerance >= 0 {
		t = *b.Tolerance
	}
	return math.Abs(*dim-b.Value) <= t
}

func withDefaults(t model.Tolerances) model.Tolerances {
	if t.Diameter <= 0 {
		t.Diameter = model.DefaultDiameterTolerance
	}
	if t.Thickness <= 0 {
		t.Thickness = model.DefaultThicknessTolerance
	}
	return t
}
