package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/feral-file/world-conquest/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving change feed cursors
type CursorStore interface {
	// GetFeedCursor retrieves the last relayed journal cursor of a feed
	GetFeedCursor(ctx context.Context, feed string) (cursor int64, found bool, err error)
	// SetFeedCursor stores the last relayed journal cursor of a feed
	SetFeedCursor(ctx context.Context, feed string, cursor int64) error
}

func feedCursorKey(feed string) string {
	return fmt.Sprintf("feed_cursor:%s", feed)
}

// GetFeedCursor retrieves the last relayed journal cursor of a feed
func (s *pgStore) GetFeedCursor(ctx context.Context, feed string) (int64, bool, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", feedCursorKey(feed)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get feed cursor: %w", err)
	}

	cursor, err := strconv.ParseInt(kv.Value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse feed cursor: %w", err)
	}

	return cursor, true, nil
}

// SetFeedCursor stores the last relayed journal cursor of a feed
func (s *pgStore) SetFeedCursor(ctx context.Context, feed string, cursor int64) error {
	kv := schema.KeyValueStore{
		Key:   feedCursorKey(feed),
		Value: strconv.FormatInt(cursor, 10),
	}

	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set feed cursor: %w", err)
	}

	return nil
}
