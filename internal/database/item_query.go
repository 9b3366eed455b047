package database

import (
	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

type ItemQuery struct {
	Query[model.ItineraryItem]
	id        uint
	tripID    uint
	visibleTo uint
}

func NewItemQuery(db *gorm.DB) *ItemQuery {
	return &ItemQuery{
		Query: Query[model.ItineraryItem]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "itinerary_items.item_order, itinerary_items.created_at",
		},
	}
}

func (q *ItemQuery) Id(id uint) *ItemQuery {
	if q == nil {
		return nil
	}

	q.id = id
	return q
}

func (q *ItemQuery) Trip(id uint) *ItemQuery {
	if q == nil {
		return nil
	}

	q.tripID = id
	return q
}

func (q *ItemQuery) VisibleTo(userID uint) *ItemQuery {
	if q == nil {
		return nil
	}

	q.visibleTo = userID
	return q
}

func (q *ItemQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("itinerary_items.id = ?", q.id)
	}

	if q.tripID != 0 {
		tx = tx.Where("itinerary_items.trip_id = ?", q.tripID)
	}

	if q.visibleTo != 0 {
		tx = tx.Where(
			"itinerary_items.trip_id IN (SELECT id FROM trips WHERE owner_id = ? "+
				"UNION SELECT trip_id FROM trip_collaborators WHERE user_id = ?)",
			q.visibleTo, q.visibleTo)
	}

	return tx
}

func (q *ItemQuery) Get() []*model.ItineraryItem {
	return q.get(q.where().Model(&model.ItineraryItem{}))
}

func (q *ItemQuery) One() *model.ItineraryItem {
	return q.one(q.where().Model(&model.ItineraryItem{}))
}

func (q *ItemQuery) Count() int64 {
	return q.count(q.where().Model(&model.ItineraryItem{}))
}

func (q *ItemQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.ItineraryItem{}), updates)
}

func (q *ItemQuery) Delete() error {
	return q.where().Delete(&model.ItineraryItem{}).Error
}
