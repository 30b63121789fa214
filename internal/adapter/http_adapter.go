package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"stock-manager/internal/core"
	"stock-manager/internal/core/model"
	"stock-manager/pkg/util"
)

// StockService is what the HTTP layer needs from the core.
type StockService interface {
	Search(ctx context.Context, in core.SearchInput) (model.ResultPage, error)
	Snapshots(ctx context.Context) ([]model.Snapshot, model.SnapshotID, error)
	SelectSnapshot(ctx context.Context, id model.SnapshotID) error
	ClearSelection()
	Summary(ctx context.Context, id model.SnapshotID) (model.CatalogSummary, error)
}

var validate = validator.New()

type Handler struct {
	Svc StockService
	log *slog.Logger
}

func NewHandler(svc StockService, logger *slog.Logger) *Handler {
	return &Handler{Svc: svc, log: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/snapshots", h.listSnapshots)
		r.Put("/snapshots/active", h.selectSnapshot)
		r.Get("/stock", h.listStock)
		r.Get("/stock/summary", h.summary)
		r.Post("/search", h.search)
	})
	return r
}

type httpError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	e := httpError{}
	e.Error.Code = code
	e.Error.Message = msg
	writeJSON(w, status, e)
}

// writeServiceError maps core sentinels to HTTP statuses. "No data
// loaded" is deliberately distinct from "no matches": the latter is a
// 200 with an empty item list.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNoSnapshots):
		writeError(w, http.StatusNotFound, "NO_SNAPSHOTS", "no inventory snapshots available")
	case errors.Is(err, core.ErrSnapshotNotFound):
		writeError(w, http.StatusNotFound, "SNAPSHOT_NOT_FOUND", "unknown snapshot")
	case errors.Is(err, core.ErrCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "catalog could not be loaded")
	default:
		h.log.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- request/response shapes ----

type dimsRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Length float64 `json:"length"`
}

type circleRequest struct {
	Diameter  float64  `json:"diameter"`
	Tolerance *float64 `json:"tolerance"`
}

type bandRequest struct {
	Value     float64  `json:"value"`
	Tolerance *float64 `json:"tolerance"`
}

// Numeric criteria are not validated here: a zero or negative value
// degrades to "unconstrained" inside the engine instead of failing the
// whole request. Only enums and paging bounds are rejected outright.
type searchRequest struct {
	Snapshot    string         `json:"snapshot"`
	SteelGrade  string         `json:"steelGrade"`
	ProfileType string         `json:"profileType" validate:"omitempty,oneof=block circle sheet strip square"`
	BlockMin    *dimsRequest   `json:"blockMin"`
	Circle      *circleRequest `json:"circle"`
	Sheet       *bandRequest   `json:"sheetThickness"`
	Strip       *bandRequest   `json:"stripThickness"`

	SortBy   string `json:"sortBy" validate:"omitempty,oneof=steelGrade profileType fullName sizeText quantity weight width height length diameter thickness"`
	SortDir  string `json:"sortDir" validate:"omitempty,oneof=asc desc"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize" validate:"lte=500"`
}

func (req searchRequest) criteria() model.FilterCriteria {
	var c model.FilterCriteria
	if req.SteelGrade != "" {
		c.SteelGrade = util.GetPtr(req.SteelGrade)
	}
	if req.ProfileType != "" {
		c.ProfileType = util.GetPtr(model.ProfileType(req.ProfileType))
	}
	if req.BlockMin != nil {
		c.BlockMin = &model.BlockMin{Width: req.BlockMin.Width, Height: req.BlockMin.Height, Length: req.BlockMin.Length}
	}
	if req.Circle != nil {
		c.Circle = &model.Band{Value: req.Circle.Diameter, Tolerance: req.Circle.Tolerance}
	}
	if req.Sheet != nil {
		c.Sheet = &model.Band{Value: req.Sheet.Value, Tolerance: req.Sheet.Tolerance}
	}
	if req.Strip != nil {
		c.Strip = &model.Band{Value: req.Strip.Value, Tolerance: req.Strip.Tolerance}
	}
	return c
}

func (req searchRequest) view() core.View {
	v := core.NewView(req.PageSize)
	if req.Page > 0 {
		v.SetPage(req.Page)
	}
	v.SortBy = model.SortField(req.SortBy)
	if req.SortDir == string(model.SortDesc) {
		v.Dir = model.SortDesc
	}
	return v
}

type pageMeta struct {
	PageIndex           int `json:"pageIndex"`
	PageCount           int `json:"pageCount"`
	ItemsShown          int `json:"itemsShown"`
	ItemsTotalInFilter  int `json:"itemsTotalInFilter"`
	ItemsTotalInCatalog int `json:"itemsTotalInCatalog"`
}

type searchResponse struct {
	Items []model.CatalogRecord `json:"items"`
	Total int                   `json:"total"`
	Page  pageMeta              `json:"page"`
}

func toSearchResponse(p model.ResultPage) searchResponse {
	return searchResponse{
		Items: p.Items,
		Total: p.TotalMatched,
		Page: pageMeta{
			PageIndex:           p.PageIndex,
			PageCount:           p.PageCount,
			ItemsShown:          p.ItemsShown,
			ItemsTotalInFilter:  p.TotalMatched,
			ItemsTotalInCatalog: p.TotalAvailable,
		},
	}
}

// ---- handlers ----

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	page, err := h.Svc.Search(r.Context(), core.SearchInput{
		Snapshot: model.SnapshotID(req.Snapshot),
		Criteria: req.criteria(),
		View:     req.view(),
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.log.Info("search", "matched", page.TotalMatched, "catalog", page.TotalAvailable)
	writeJSON(w, http.StatusOK, toSearchResponse(page))
}

// listStock returns the full active catalog: an empty filter with
// sort/page query params. Unparsable numeric params fall back to
// defaults rather than failing the request.
func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := core.NewView(atoiOr(q.Get("page_size"), 0))
	if p := atoiOr(q.Get("page"), 0); p > 0 {
		v.SetPage(p)
	}
	if f := model.SortField(q.Get("sort_by")); f.Valid() {
		v.SortBy = f
	}
	if q.Get("sort_dir") == string(model.SortDesc) {
		v.Dir = model.SortDesc
	}

	page, err := h.Svc.Search(r.Context(), core.SearchInput{
		Snapshot: model.SnapshotID(q.Get("snapshot")),
		View:     v,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSearchResponse(page))
}

func (h *Handler) listSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, active, err := h.Svc.Snapshots(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshots": snapshots,
		"active":    active,
	})
}

// selectSnapshot pins a snapshot for the session. An empty id clears
// the pin and selection reverts to the newest export.
func (h *Handler) selectSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Snapshot string `json:"snapshot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", "invalid JSON body")
		return
	}
	if req.Snapshot == "" {
		h.Svc.ClearSelection()
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := h.Svc.SelectSnapshot(r.Context(), model.SnapshotID(req.Snapshot)); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Svc.Summary(r.Context(), model.SnapshotID(r.URL.Query().Get("snapshot")))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
