package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"stock-manager/internal/adapter"
	"stock-manager/internal/core"
	"stock-manager/internal/core/model"
	"stock-manager/pkg/http_client"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func main() {
	port := getenv("PORT", "8080")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	tol := model.Tolerances{
		Diameter:  getenvFloat("DIAMETER_TOLERANCE", model.DefaultDiameterTolerance),
		Thickness: getenvFloat("THICKNESS_TOLERANCE", model.DefaultThicknessTolerance),
	}

	repo := adapter.NewCatalogRepo()
	svc := core.NewService(repo, tol)

	var src core.SnapshotSource
	if baseURL := os.Getenv("WAREHOUSE_URL"); baseURL != "" {
		src = adapter.NewWarehouseClient(baseURL, 2, http_client.CreateHTTPClient())
	} else if dir := os.Getenv("WAREHOUSE_DIR"); dir != "" {
		src = adapter.NewSnapshotDir(dir)
	}
	if src != nil {
		loadSnapshots(context.Background(), src, repo, logger)
	} else {
		logger.Warn("no snapshot source configured, starting with empty catalog")
	}

	h := adapter.NewHandler(svc, logger)

	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, h.Routes()); err != nil {
		log.Fatal(err)
	}
}

// loadSnapshots pulls every discovered export into the in-memory
// store. A broken export is logged and skipped; the rest still load.
func loadSnapshots(ctx context.Context, src core.SnapshotSource, repo *adapter.CatalogRepo, logger *slog.Logger) {
	ids, err := src.Snapshots(ctx)
	if err != nil {
		logger.Error("snapshot discovery failed", "err", err)
		return
	}
	loaded := 0
	for _, id := range ids {
		records, err := src.Fetch(ctx, id)
		if err != nil {
			logger.Error("snapshot load failed", "snapshot", string(id), "err", err)
			continue
		}
		if err := repo.ReplaceSnapshot(ctx, id, records); err != nil {
			logger.Error("snapshot store failed", "snapshot", string(id), "err", err)
			continue
		}
		loaded++
		logger.Info("snapshot loaded", "snapshot", string(id), "records", len(records))
	}
	logger.Info("catalog ready", "snapshots", loaded)
}
