package statesync

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/feral-file/world-conquest/internal/adapter"
	"github.com/feral-file/world-conquest/internal/api/shared/constants"
	"github.com/feral-file/world-conquest/internal/api/shared/dto"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// Fetcher reads full collections from the game API
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/fetcher.go -package=mocks -mock_names=Fetcher=MockFetcher
type Fetcher interface {
	// ListClasses lists every class
	ListClasses(ctx context.Context) ([]schema.Class, error)
	// ListStudents lists the students of a period
	ListStudents(ctx context.Context, period domain.Period) ([]schema.Student, error)
	// ListTerritories lists every territory with its owner colour
	ListTerritories(ctx context.Context) ([]schema.TerritoryWithOwner, error)
	// ListInventory lists the inventory of a class
	ListInventory(ctx context.Context, classID string) ([]schema.InventoryEntry, error)
	// ListBattles lists the most recent battles, oldest first
	ListBattles(ctx context.Context) ([]schema.Battle, error)
	// LatestCursor returns the highest committed change cursor
	LatestCursor(ctx context.Context) (int64, error)
}

type httpFetcher struct {
	baseURL string
	client  adapter.HTTPClient
}

// NewHTTPFetcher creates a fetcher for the REST API at baseURL, e.g. http://localhost:8080
func NewHTTPFetcher(baseURL string, client adapter.HTTPClient) Fetcher {
	return &httpFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		client:  client,
	}
}

func fetchItems[T any](ctx context.Context, client adapter.HTTPClient, op, endpoint string) ([]T, error) {
	var resp dto.ItemsResponse[T]
	if err := client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, domain.NewPersistenceError(op, err)
	}
	return resp.Items, nil
}

func (f *httpFetcher) ListClasses(ctx context.Context) ([]schema.Class, error) {
	return fetchItems[schema.Class](ctx, f.client, "list classes", f.baseURL+"/classes")
}

func (f *httpFetcher) ListStudents(ctx context.Context, period domain.Period) ([]schema.Student, error) {
	endpoint := fmt.Sprintf("%s/students?period=%d", f.baseURL, period)
	return fetchItems[schema.Student](ctx, f.client, "list students", endpoint)
}

func (f *httpFetcher) ListTerritories(ctx context.Context) ([]schema.TerritoryWithOwner, error) {
	return fetchItems[schema.TerritoryWithOwner](ctx, f.client, "list territories", f.baseURL+"/territories")
}

func (f *httpFetcher) ListInventory(ctx context.Context, classID string) ([]schema.InventoryEntry, error) {
	endpoint := fmt.Sprintf("%s/classes/%s/inventory", f.baseURL, url.PathEscape(classID))
	return fetchItems[schema.InventoryEntry](ctx, f.client, "list inventory", endpoint)
}

func (f *httpFetcher) ListBattles(ctx context.Context) ([]schema.Battle, error) {
	endpoint := fmt.Sprintf("%s/battles?limit=%d", f.baseURL, constants.MAX_PAGE_SIZE)
	battles, err := fetchItems[schema.Battle](ctx, f.client, "list battles", endpoint)
	if err != nil {
		return nil, err
	}
	// The API lists newest first
	slices.Reverse(battles)
	return battles, nil
}

func (f *httpFetcher) LatestCursor(ctx context.Context) (int64, error) {
	var resp dto.ChangeCursorResponse
	if err := f.client.GetJSON(ctx, f.baseURL+"/changes/latest", &resp); err != nil {
		return 0, domain.NewPersistenceError("get latest change cursor", err)
	}
	return resp.Cursor, nil
}
