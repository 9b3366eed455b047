package database

import (
	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

type TripQuery struct {
	Query[model.Trip]
	id        uint
	visibleTo uint
	full      bool
}

func NewTripQuery(db *gorm.DB) *TripQuery {
	return &TripQuery{
		Query: Query[model.Trip]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "trips.id",
		},
	}
}

func (q *TripQuery) Order(s string) *TripQuery {
	if q == nil {
		return nil
	}

	q.order = s
	return q
}

func (q *TripQuery) Limit(n int) *TripQuery {
	if q == nil {
		return nil
	}

	q.limit = n
	return q
}

func (q *TripQuery) Id(id uint) *TripQuery {
	if q == nil {
		return nil
	}

	q.id = id
	return q
}

// VisibleTo narrows to trips the user owns or is a member of.
func (q *TripQuery) VisibleTo(userID uint) *TripQuery {
	if q == nil {
		return nil
	}

	q.visibleTo = userID
	return q
}

// Full preloads the owner relation.
func (q *TripQuery) Full() *TripQuery {
	if q == nil {
		return nil
	}

	q.full = true
	return q
}

func (q *TripQuery) where() *gorm.DB {
	tx := q.db

	if q.full {
		tx = tx.Joins("Owner")
	}

	if q.id != 0 {
		tx = tx.Where("trips.id = ?", q.id)
	}

	if q.visibleTo != 0 {
		tx = tx.Where(
			"trips.owner_id = ? OR trips.id IN (SELECT trip_id FROM trip_collaborators WHERE user_id = ?)",
			q.visibleTo, q.visibleTo)
	}

	return tx
}

func (q *TripQuery) Get() []*model.Trip {
	return q.get(q.where().Model(&model.Trip{}))
}

func (q *TripQuery) One() *model.Trip {
	return q.one(q.where().Model(&model.Trip{}))
}

func (q *TripQuery) Count() int64 {
	return q.count(q.where().Model(&model.Trip{}))
}

func (q *TripQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Trip{}), updates)
}
