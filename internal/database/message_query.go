package database

import (
	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

// maxMessagePage caps a single pull query, matching the catch-up
// polling contract.
const maxMessagePage = 200

type MessageQuery struct {
	Query[model.ChatMessage]
	tripID  uint
	afterID uint
}

func NewMessageQuery(db *gorm.DB) *MessageQuery {
	return &MessageQuery{
		Query: Query[model.ChatMessage]{
			db:     db,
			limit:  maxMessagePage,
			offset: 0,
			order:  "chat_messages.created_at, chat_messages.id",
		},
	}
}

func (q *MessageQuery) Trip(id uint) *MessageQuery {
	if q == nil {
		return nil
	}

	q.tripID = id
	return q
}

// After keeps only messages with id greater than the cursor.
func (q *MessageQuery) After(id uint) *MessageQuery {
	if q == nil {
		return nil
	}

	q.afterID = id
	return q
}

func (q *MessageQuery) Limit(n int) *MessageQuery {
	if q == nil {
		return nil
	}

	if n > 0 && n < maxMessagePage {
		q.limit = n
	}

	return q
}

func (q *MessageQuery) where() *gorm.DB {
	tx := q.db.Joins("Sender")

	if q.tripID != 0 {
		tx = tx.Where("chat_messages.trip_id = ?", q.tripID)
	}

	if q.afterID != 0 {
		tx = tx.Where("chat_messages.id > ?", q.afterID)
	}

	return tx
}

func (q *MessageQuery) Get() []*model.ChatMessage {
	return q.get(q.where().Model(&model.ChatMessage{}))
}

func (q *MessageQuery) One() *model.ChatMessage {
	return q.one(q.where().Model(&model.ChatMessage{}))
}

func (q *MessageQuery) Count() int64 {
	return q.count(q.where().Model(&model.ChatMessage{}))
}
