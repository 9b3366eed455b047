package database

import (
	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

type PollQuery struct {
	Query[model.Poll]
	id        uint
	tripID    uint
	visibleTo uint
	full      bool
}

func NewPollQuery(db *gorm.DB) *PollQuery {
	return &PollQuery{
		Query: Query[model.Poll]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "polls.id",
		},
	}
}

func (q *PollQuery) Id(id uint) *PollQuery {
	if q == nil {
		return nil
	}

	q.id = id
	return q
}

func (q *PollQuery) Trip(id uint) *PollQuery {
	if q == nil {
		return nil
	}

	q.tripID = id
	return q
}

func (q *PollQuery) VisibleTo(userID uint) *PollQuery {
	if q == nil {
		return nil
	}

	q.visibleTo = userID
	return q
}

// Full preloads the author and the ordered option set.
func (q *PollQuery) Full() *PollQuery {
	if q == nil {
		return nil
	}

	q.full = true
	return q
}

func (q *PollQuery) where() *gorm.DB {
	tx := q.db

	if q.full {
		tx = tx.Joins("CreatedBy").Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id")
		})
	}

	if q.id != 0 {
		tx = tx.Where("polls.id = ?", q.id)
	}

	if q.tripID != 0 {
		tx = tx.Where("polls.trip_id = ?", q.tripID)
	}

	if q.visibleTo != 0 {
		tx = tx.Where(
			"polls.trip_id IN (SELECT id FROM trips WHERE owner_id = ? "+
				"UNION SELECT trip_id FROM trip_collaborators WHERE user_id = ?)",
			q.visibleTo, q.visibleTo)
	}

	return tx
}

func (q *PollQuery) Get() []*model.Poll {
	return q.get(q.where().Model(&model.Poll{}))
}

func (q *PollQuery) One() *model.Poll {
	return q.one(q.where().Model(&model.Poll{}))
}

func (q *PollQuery) Count() int64 {
	return q.count(q.where().Model(&model.Poll{}))
}

func (q *PollQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Poll{}), updates)
}
