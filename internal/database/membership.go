package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vbelov/tripline/internal/model"
)

var collaboratorKey = []clause.Column{{Name: "trip_id"}, {Name: "user_id"}}

// UpsertCollaborator inserts or replaces the membership role for
// (trip, user) in a single conditional write, so concurrent requests
// for the same pair overwrite instead of duplicating.
func (mm *DatabaseManager) UpsertCollaborator(tripID, userID uint, role string) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	c := &model.TripCollaborator{TripID: tripID, UserID: userID, Role: role}

	return mm.db.Clauses(clause.OnConflict{
		Columns:   collaboratorKey,
		DoUpdates: clause.Assignments(map[string]any{"role": role}),
	}).Create(c).Error
}

// CastVote validates that the option belongs to the poll, then upserts
// the (poll, user) vote row. Last write wins.
func (mm *DatabaseManager) CastVote(pollID, userID, optionID uint) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	return mm.db.Transaction(func(tx *gorm.DB) error {
		var n int64

		tx.Model(&model.PollOption{}).Where("id = ? AND poll_id = ?", optionID, pollID).Count(&n)

		if n == 0 {
			return ErrNotFound
		}

		v := &model.Vote{PollID: pollID, UserID: userID, OptionID: optionID}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poll_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"option_id": optionID}),
		}).Create(v).Error
	})
}

// AcceptInvite flips the accepted flag (idempotent) and, when a
// principal is present, grants a viewer membership without touching an
// existing row. Anonymous acceptance only flips the flag.
func (mm *DatabaseManager) AcceptInvite(token string, userID uint) (*model.TripInvite, error) {
	if mm == nil || mm.db == nil {
		return nil, ErrNotFound
	}

	var invite *model.TripInvite

	err := mm.db.Transaction(func(tx *gorm.DB) error {
		invite = NewInviteQuery(tx).Token(token).One()

		if invite == nil {
			return ErrNotFound
		}

		if !invite.Accepted {
			if err := tx.Model(invite).Update("accepted", true).Error; err != nil {
				return err
			}
		}

		if userID == 0 {
			return nil
		}

		c := &model.TripCollaborator{TripID: invite.TripID, UserID: userID, Role: model.ROLE_VIEWER}

		return tx.Clauses(clause.OnConflict{
			Columns:   collaboratorKey,
			DoNothing: true,
		}).Create(c).Error
	})

	if err != nil {
		return nil, err
	}

	return invite, nil
}
