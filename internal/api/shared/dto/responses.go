package dto

import (
	"github.com/feral-file/world-conquest/internal/battle"
	"github.com/feral-file/world-conquest/internal/domain"
	"github.com/feral-file/world-conquest/internal/ledger"
	"github.com/feral-file/world-conquest/internal/poll"
	"github.com/feral-file/world-conquest/internal/store/schema"
)

// ItemsResponse wraps a list response
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// NewItemsResponse never renders a null list
func NewItemsResponse[T any](items []T) ItemsResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ItemsResponse[T]{Items: items}
}

// BattleResponse represents the outcome of an executed battle and every row it wrote
type BattleResponse struct {
	Battle    schema.Battle           `json:"battle"`
	Result    battle.Result           `json:"result"`
	Territory schema.Territory        `json:"territory"`
	Ownership ledger.OwnershipChange  `json:"ownership"`
	Inventory []schema.InventoryEntry `json:"inventory"`
}

// AwardStampsResponse represents an appended, or replayed, stamp transaction
type AwardStampsResponse struct {
	Transaction schema.StampTransaction `json:"transaction"`
	// Created is false when the idempotency key matched an earlier award
	Created bool `json:"created"`
}

// PollResultsResponse represents the poll tallies of a day
type PollResultsResponse struct {
	Date    string       `json:"date"`
	Classes []poll.Tally `json:"classes"`
}

// ChangeListResponse represents a page of the changes journal
type ChangeListResponse struct {
	Items []domain.ChangeEvent `json:"items"`
	// NextAnchor is the cursor to pass as anchor for the next page, nil when there are no more rows
	NextAnchor *int64 `json:"next_anchor,omitempty"`
}

// ChangeCursorResponse carries the highest committed journal cursor
type ChangeCursorResponse struct {
	Cursor int64 `json:"cursor"`
}

// MapChangesToDTO maps journal rows to a change list page
func MapChangesToDTO(rows []schema.ChangesJournal, limit int) *ChangeListResponse {
	resp := &ChangeListResponse{Items: make([]domain.ChangeEvent, len(rows))}
	for i, row := range rows {
		resp.Items[i] = row.ToEvent()
	}

	if len(rows) > 0 && len(rows) == limit {
		next := rows[len(rows)-1].Cursor
		resp.NextAnchor = &next
	}
	return resp
}
