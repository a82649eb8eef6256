package statesync_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/world-conquest/internal/api/shared/dto"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/mocks"
	"github.com/feral-file/world-conquest/internal/statesync"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

func TestHTTPFetcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	fetcher := statesync.NewHTTPFetcher("http://api.local:8080/", httpClient)
	ctx := context.Background()

	t.Run("students of a period", func(t *testing.T) {
		httpClient.
			EXPECT().
			GetJSON(ctx, "http://api.local:8080/api/v1/students?period=5", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result any) error {
				result.(*dto.ItemsResponse[schema.Student]).Items = []schema.Student{{ID: "s-1", Period: domain.Period5}}
				return nil
			})

		students, err := fetcher.ListStudents(ctx, domain.Period5)

		require.NoError(t, err)
		require.Len(t, students, 1)
		assert.Equal(t, "s-1", students[0].ID)
	})

	t.Run("inventory path is escaped", func(t *testing.T) {
		httpClient.
			EXPECT().
			GetJSON(ctx, "http://api.local:8080/api/v1/classes/class%2F1/inventory", gomock.Any()).
			Return(nil)

		entries, err := fetcher.ListInventory(ctx, "class/1")

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("battles are returned oldest first", func(t *testing.T) {
		httpClient.
			EXPECT().
			GetJSON(ctx, "http://api.local:8080/api/v1/battles?limit=100", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result any) error {
				result.(*dto.ItemsResponse[schema.Battle]).Items = []schema.Battle{{ID: "b-3"}, {ID: "b-2"}, {ID: "b-1"}}
				return nil
			})

		battles, err := fetcher.ListBattles(ctx)

		require.NoError(t, err)
		require.Len(t, battles, 3)
		assert.Equal(t, "b-1", battles[0].ID)
		assert.Equal(t, "b-3", battles[2].ID)
	})

	t.Run("read failure is a persistence error", func(t *testing.T) {
		httpClient.
			EXPECT().
			GetJSON(ctx, "http://api.local:8080/api/v1/territories", gomock.Any()).
			Return(assert.AnError)

		_, err := fetcher.ListTerritories(ctx)

		assert.True(t, domain.IsPersistence(err))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("classes", func(t *testing.T) {
		httpClient.
			EXPECT().
			GetJSON(ctx, "http://api.local:8080/api/v1/classes", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result any) error {
				result.(*dto.ItemsResponse[schema.Class]).Items = []schema.Class{{ID: "class-1"}}
				return nil
			})

		classes, err := fetcher.ListClasses(ctx)

		require.NoError(t, err)
		assert.Len(t, classes, 1)
	})

	t.Run("latest cursor", func(t *testing.T) {
		httpClient.
			EXPECT().
			GetJSON(ctx, "http://api.local:8080/api/v1/changes/latest", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result any) error {
				result.(*dto.ChangeCursorResponse).Cursor = 315
				return nil
			})

		cursor, err := fetcher.LatestCursor(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(315), cursor)
	})
}
