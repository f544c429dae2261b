package store

import (
	"context"
	"fmt"

	"github.com/notelab/notelab-cli/internal/wellness"
)

// SaveMessage persists one transcript message. Saving the same message ID
// twice is a no-op.
func (s *Store) SaveMessage(ctx context.Context, conversation string, msg wellness.Message) error {
	record := ChatMessageRecord{
		Conversation: conversation,
		MessageID:    msg.ID,
		Role:         msg.Role,
		Content:      msg.Content,
		CreatedAt:    msg.CreatedAt,
	}

	err := s.db.WithContext(ctx).
		Where(ChatMessageRecord{MessageID: msg.ID}).
		FirstOrCreate(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// Transcript returns the most recent messages of a conversation in
// chronological order. limit <= 0 returns everything.
func (s *Store) Transcript(ctx context.Context, conversation string, limit int) ([]wellness.Message, error) {
	query := s.db.WithContext(ctx).
		Where("conversation = ?", conversation).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []ChatMessageRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	// Newest-first from the query; flip to chronological.
	messages := make([]wellness.Message, len(records))
	for i, record := range records {
		messages[len(records)-1-i] = wellness.Message{
			ID:        record.MessageID,
			Role:      record.Role,
			Content:   record.Content,
			CreatedAt: record.CreatedAt,
		}
	}
	return messages, nil
}

// ClearTranscript deletes every message of a conversation.
func (s *Store) ClearTranscript(ctx context.Context, conversation string) error {
	err := s.db.WithContext(ctx).
		Where("conversation = ?", conversation).
		Delete(&ChatMessageRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}
