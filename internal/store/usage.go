package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/notelab/notelab-cli/internal/agent"
)

// CacheUsage replaces the cached usage rows for a token with a fresh fetch.
// An empty tokenID replaces the whole cache.
func (s *Store) CacheUsage(ctx context.Context, tokenID string, entries []agent.UsageEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("1 = 1")
		if tokenID != "" {
			del = tx.Where("token_id = ?", tokenID)
		}
		if err := del.Delete(&UsageRecord{}).Error; err != nil {
			return fmt.Errorf("failed to drop stale usage rows: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		records := make([]UsageRecord, len(entries))
		for i, entry := range entries {
			records[i] = UsageRecord{
				EntryID:   entry.ID,
				TokenID:   entry.TokenID,
				Agent:     entry.Agent,
				Operation: entry.Operation,
				Status:    entry.Status,
				Timestamp: entry.Timestamp,
			}
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to cache usage rows: %w", err)
		}
		return nil
	})
}

// CachedUsage returns cached usage rows, newest first. tokenID scopes the
// result when non-empty; limit <= 0 returns everything.
func (s *Store) CachedUsage(ctx context.Context, tokenID string, limit int) ([]agent.UsageEntry, error) {
	query := s.db.WithContext(ctx).Order("timestamp DESC, id DESC")
	if tokenID != "" {
		query = query.Where("token_id = ?", tokenID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []UsageRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load cached usage: %w", err)
	}

	entries := make([]agent.UsageEntry, len(records))
	for i, record := range records {
		entries[i] = agent.UsageEntry{
			ID:        record.EntryID,
			TokenID:   record.TokenID,
			Agent:     record.Agent,
			Operation: record.Operation,
			Status:    record.Status,
			Timestamp: record.Timestamp,
		}
	}
	return entries, nil
}
