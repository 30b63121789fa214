package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stock-manager/internal/core/model"
)

var errSnapshotMissing = errors.New("snapshot not found")

// WarehouseClient pulls pre-parsed snapshot exports from the ingestion
// service over HTTP. Transient failures are retried with a short
// backoff; a 404 is final.
type WarehouseClient struct {
	BaseURL string
	Client  *http.Client
	Retry   int
}

func NewWarehouseClient(baseURL string, retry int, httpClient *http.Client) *WarehouseClient {
	if retry < 0 {
		retry = 0
	}
	return &WarehouseClient{
		BaseURL: baseURL,
		Client:  httpClient,
		Retry:   retry,
	}
}

func (c *WarehouseClient) Snapshots(ctx context.Context) ([]model.SnapshotID, error) {
	var out struct {
		Snapshots []model.SnapshotID `json:"snapshots"`
	}
	if err := c.getJSON(ctx, c.BaseURL+"/snapshots", &out); err != nil {
		return nil, err
	}
	return out.Snapshots, nil
}

func (c *WarehouseClient) Fetch(ctx context.Context, id model.SnapshotID) ([]model.CatalogRecord, error) {
	var out struct {
		Items []model.CatalogRecord `json:"items"`
	}
	u := fmt.Sprintf("%s/snapshots/%s/records", c.BaseURL, url.PathEscape(string(id)))
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *WarehouseClient) getJSON(ctx context.Context, url string, v any) error {
	var lastErr error
	attempts := c.Retry + 1
	for i := 0; i < attempts; i++ {
		err := c.fetchOnce(ctx, url, v)
		if err == nil {
			return nil
		}
		// 404 is final: the export does not exist
		if errors.Is(err, errSnapshotMissing) {
			return err
		}
		lastErr = err
		// simple backoff
		if i < attempts-1 {
			select {
			case <-time.After(time.Duration(150*(i+1)) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}

func (c *WarehouseClient) fetchOnce(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errSnapshotMissing
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("warehouse: status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
