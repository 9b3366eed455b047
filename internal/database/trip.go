package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vbelov/tripline/internal/model"
)

func (mm *DatabaseManager) CreateTrip(t *model.Trip) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	if t == nil {
		return fmt.Errorf("null trip")
	}

	if t.Name == "" {
		return fmt.Errorf("null trip name")
	}

	if t.OwnerID == 0 {
		return fmt.Errorf("trip without owner")
	}

	return mm.Create(t)
}

// DeleteTrip removes the trip and everything cascade-owned beneath it
// in one transaction.
func (mm *DatabaseManager) DeleteTrip(id uint) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	return mm.db.Transaction(func(tx *gorm.DB) error {
		pollIDs := tx.Model(&model.Poll{}).Select("id").Where("trip_id = ?", id)

		if err := tx.Where("poll_id IN (?)", pollIDs).Delete(&model.Vote{}).Error; err != nil {
			return err
		}

		if err := tx.Where("poll_id IN (?)", pollIDs).Delete(&model.PollOption{}).Error; err != nil {
			return err
		}

		tables := []any{
			&model.Poll{},
			&model.ItineraryItem{},
			&model.ChatMessage{},
			&model.TripInvite{},
			&model.TripCollaborator{},
		}

		for _, n := range tables {
			if err := tx.Where("trip_id = ?", id).Delete(n).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&model.Trip{}).Error
	})
}

// ReorderItinerary assigns order 0..n-1 following the given id
// sequence. Ids that do not belong to the trip are ignored; items left
// out of the sequence keep whatever order they had.
func (mm *DatabaseManager) ReorderItinerary(tripID uint, ids []uint) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	return mm.db.Transaction(func(tx *gorm.DB) error {
		items := NewItemQuery(tx).Trip(tripID).Get()

		byID := make(map[uint]*model.ItineraryItem, len(items))

		for _, item := range items {
			byID[item.ID] = item
		}

		for idx, id := range ids {
			item, ok := byID[id]

			if !ok {
				continue
			}

			if err := tx.Model(item).Update("item_order", idx).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (mm *DatabaseManager) CreatePoll(p *model.Poll) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	if p == nil || p.Question == "" {
		return fmt.Errorf("null poll")
	}

	return mm.Create(p)
}

// ReplacePollOptions rewrites the poll's option set. Existing votes
// point at dropped options, so they go too.
func (mm *DatabaseManager) ReplacePollOptions(pollID uint, texts []string) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	return mm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", pollID).Delete(&model.Vote{}).Error; err != nil {
			return err
		}

		if err := tx.Where("poll_id = ?", pollID).Delete(&model.PollOption{}).Error; err != nil {
			return err
		}

		for _, text := range texts {
			if err := tx.Create(&model.PollOption{PollID: pollID, Text: text}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (mm *DatabaseManager) DeletePoll(id uint) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	return mm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return err
		}

		if err := tx.Where("poll_id = ?", id).Delete(&model.PollOption{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.Poll{}).Error
	})
}
