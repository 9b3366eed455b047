package database

import (
	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

type CollaboratorQuery struct {
	Query[model.TripCollaborator]
	tripID uint
	userID uint
	full   bool
}

func NewCollaboratorQuery(db *gorm.DB) *CollaboratorQuery {
	return &CollaboratorQuery{
		Query: Query[model.TripCollaborator]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "trip_collaborators.id",
		},
	}
}

func (q *CollaboratorQuery) Trip(id uint) *CollaboratorQuery {
	if q == nil {
		return nil
	}

	q.tripID = id
	return q
}

func (q *CollaboratorQuery) User(id uint) *CollaboratorQuery {
	if q == nil {
		return nil
	}

	q.userID = id
	return q
}

func (q *CollaboratorQuery) Full() *CollaboratorQuery {
	if q == nil {
		return nil
	}

	q.full = true
	return q
}

func (q *CollaboratorQuery) where() *gorm.DB {
	tx := q.db

	if q.full {
		tx = tx.Joins("User")
	}

	if q.tripID != 0 {
		tx = tx.Where("trip_collaborators.trip_id = ?", q.tripID)
	}

	if q.userID != 0 {
		tx = tx.Where("trip_collaborators.user_id = ?", q.userID)
	}

	return tx
}

func (q *CollaboratorQuery) Get() []*model.TripCollaborator {
	return q.get(q.where().Model(&model.TripCollaborator{}))
}

func (q *CollaboratorQuery) One() *model.TripCollaborator {
	return q.one(q.where().Model(&model.TripCollaborator{}))
}

func (q *CollaboratorQuery) Count() int64 {
	return q.count(q.where().Model(&model.TripCollaborator{}))
}
