package model

import (
	"time"
)

// ChatMessage rows are immutable after creation. Readers order by
// (created_at, id) so messages with equal timestamps sort stably.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index:idx_messages_trip_created;type:timestamp"`
	TripID    uint      `gorm:"index:idx_messages_trip_created;not null"`
	SenderID  uint      `gorm:"index;not null"`
	Sender    *User
	Content   string `gorm:"not null"`
}

func (m *ChatMessage) GetTripID() uint {
	if m == nil {
		return 0
	}

	return m.TripID
}

type ChatEvent struct {
	Typ     string          `json:"type"`
	Message *ChatMessageDTO `json:"message"`
}

func NewChatEvent(m *ChatMessage) *ChatEvent {
	return &ChatEvent{Typ: "chat", Message: ToChatMessageDTO(m)}
}
