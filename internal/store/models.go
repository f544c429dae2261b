package store

import "time"

// ChatMessageRecord is one persisted transcript entry.
type ChatMessageRecord struct {
	ID           uint      `gorm:"primaryKey"`
	Conversation string    `gorm:"index:idx_conversation_created,priority:1;size:64;not null"`
	MessageID    string    `gorm:"uniqueIndex;size:64;not null"`
	Role         string    `gorm:"size:16;not null"`
	Content      string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"index:idx_conversation_created,priority:2"`
}

// TableName keeps the table name stable across model renames.
func (ChatMessageRecord) TableName() string { return "chat_messages" }

// UsageRecord is one cached agent-token usage row, refreshed wholesale per
// fetch.
type UsageRecord struct {
	ID        uint      `gorm:"primaryKey"`
	EntryID   string    `gorm:"uniqueIndex;size:64;not null"`
	TokenID   string    `gorm:"index;size:64;not null"`
	Agent     string    `gorm:"size:128"`
	Operation string    `gorm:"size:128;not null"`
	Status    int       `gorm:"not null"`
	Timestamp time.Time `gorm:"index"`
}

// TableName keeps the table name stable across model renames.
func (UsageRecord) TableName() string { return "usage_entries" }
