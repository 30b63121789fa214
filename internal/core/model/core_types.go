package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// All core models live here together for simplicity.

// ProfileType is the cross-sectional shape category of a stock entry.
type ProfileType string

const (
	ProfileBlock  ProfileType = "block"
	ProfileCircle ProfileType = "circle"
	ProfileSheet  ProfileType = "sheet"
	ProfileStrip  ProfileType = "strip"
	ProfileSquare ProfileType = "square"
)

// ProfileTypes lists every known profile in display order.
var ProfileTypes = []ProfileType{ProfileBlock, ProfileCircle, ProfileSheet, ProfileStrip, ProfileSquare}

func (p ProfileType) Valid() bool {
	switch p {
	case ProfileBlock, ProfileCircle, ProfileSheet, ProfileStrip, ProfileSquare:
		return true
	}
	return false
}

// SnapshotID is a catalog version label, typically the export filename
// with an embedded date ("Stock 14.08.25.json").
type SnapshotID string

// Snapshot pairs an identifier with the date extracted from it.
type Snapshot struct {
	ID   SnapshotID `json:"id"`
	Date time.Time  `json:"date"`
}

// CatalogRecord is one stock entry of a snapshot. Dimension fields are
// type-dependent; a nil dimension is unconstrained during matching,
// never zero. Weight is the total for the entry, not per piece.
type CatalogRecord struct {
	ID          string      `json:"id"`
	ProfileType ProfileType `json:"profileType"`
	SteelGrade  string      `json:"steelGrade"`
	FullName    string      `json:"fullName,omitempty"`
	SizeText    string      `json:"sizeText,omitempty"`

	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Length    *float64 `json:"length,omitempty"`
	Diameter  *float64 `json:"diameter,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`

	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
}

// BlockMin is a minimum-fit constraint for block stock. Zero or
// negative values impose no constraint on that dimension.
type BlockMin struct {
	Width  float64
	Height float64
	Length float64
}

// Band is a tolerance-band constraint: the record dimension must be
// within Tolerance of Value. A nil Tolerance uses the configured
// default for the profile type.
type Band struct {
	Value     float64
	Tolerance *float64
}

// FilterCriteria is an immutable search request. Unset fields impose
// no constraint. Constructed fresh per invocation.
type FilterCriteria struct {
	SteelGrade  *string
	ProfileType *ProfileType
	BlockMin    *BlockMin
	Circle      *Band // diameter
	Sheet       *Band // thickness
	Strip       *Band // thickness
}

// Default tolerance bands observed in real exports: diameters of round
// stock carry more rounding noise than sheet/strip thickness.
const (
	DefaultDiameterTolerance  = 5.0
	DefaultThicknessTolerance = 0.5
)

// Tolerances holds the deployment-tunable default bands.
type Tolerances struct {
	Diameter  float64
	Thickness float64
}

func DefaultTolerances() Tolerances {
	return Tolerances{Diameter: DefaultDiameterTolerance, Thickness: DefaultThicknessTolerance}
}

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// SortField enumerates the columns a result set can be ordered by.
type SortField string

const (
	SortBySteelGrade SortField = "steelGrade"
	SortByProfile    SortField = "profileType"
	SortByFullName   SortField = "fullName"
	SortBySizeText   SortField = "sizeText"
	SortByQuantity   SortField = "quantity"
	SortByWeight     SortField = "weight"
	SortByWidth      SortField = "width"
	SortByHeight     SortField = "height"
	SortByLength     SortField = "length"
	SortByDiameter   SortField = "diameter"
	SortByThickness  SortField = "thickness"
)

func (f SortField) Valid() bool {
	switch f {
	case SortBySteelGrade, SortByProfile, SortByFullName, SortBySizeText,
		SortByQuantity, SortByWeight, SortByWidth, SortByHeight,
		SortByLength, SortByDiameter, SortByThickness:
		return true
	}
	return false
}

// ResultPage is the sorted, sliced view of a matched set. Derived per
// request, never cached.
type ResultPage struct {
	Items          []CatalogRecord
	PageIndex      int
	PageCount      int
	ItemsShown     int
	TotalMatched   int // records passing the filter, before paging
	TotalAvailable int // records in the whole snapshot
}

// ProfileSummary aggregates one profile type within a snapshot.
type ProfileSummary struct {
	ProfileType ProfileType     `json:"profileType"`
	Entries     int             `json:"entries"`
	Pieces      int             `json:"pieces"`
	Weight      decimal.Decimal `json:"weight"`
}

// CatalogSummary is the per-profile breakdown of a snapshot.
type CatalogSummary struct {
	Snapshot    SnapshotID       `json:"snapshot"`
	Profiles    []ProfileSummary `json:"profiles"`
	Entries     int              `json:"entries"`
	TotalWeight decimal.Decimal  `json:"totalWeight"`
}
