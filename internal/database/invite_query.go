package database

import (
	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

type InviteQuery struct {
	Query[model.TripInvite]
	id     uint
	tripID uint
	email  string
	token  string
}

func NewInviteQuery(db *gorm.DB) *InviteQuery {
	return &InviteQuery{
		Query: Query[model.TripInvite]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "trip_invites.id",
		},
	}
}

func (q *InviteQuery) Id(id uint) *InviteQuery {
	if q == nil {
		return nil
	}

	q.id = id
	return q
}

func (q *InviteQuery) Trip(id uint) *InviteQuery {
	if q == nil {
		return nil
	}

	q.tripID = id
	return q
}

func (q *InviteQuery) Email(email string) *InviteQuery {
	if q == nil {
		return nil
	}

	q.email = email
	return q
}

func (q *InviteQuery) Token(token string) *InviteQuery {
	if q == nil {
		return nil
	}

	q.token = token
	return q
}

func (q *InviteQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("trip_invites.id = ?", q.id)
	}

	if q.tripID != 0 {
		tx = tx.Where("trip_invites.trip_id = ?", q.tripID)
	}

	if q.email != "" {
		tx = tx.Where("trip_invites.email = ?", q.email)
	}

	if q.token != "" {
		tx = tx.Where("trip_invites.token = ?", q.token)
	}

	return tx
}

func (q *InviteQuery) Get() []*model.TripInvite {
	return q.get(q.where().Model(&model.TripInvite{}))
}

func (q *InviteQuery) One() *model.TripInvite {
	return q.one(q.where().Model(&model.TripInvite{}))
}

func (q *InviteQuery) Count() int64 {
	return q.count(q.where().Model(&model.TripInvite{}))
}
