package model

import (
	"time"
)

// TripInvite is never deleted: accepted invites stay around as an
// audit trail of who was asked into a trip.
type TripInvite struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
	TripID    uint      `gorm:"index:idx_invites_trip_email;not null"`
	Email     string    `gorm:"index:idx_invites_trip_email;not null;size:254"`
	Token     string    `gorm:"uniqueIndex;not null;size:64"`
	Accepted  bool      `gorm:"not null;default:false"`
}

func (i *TripInvite) GetTripID() uint {
	if i == nil {
		return 0
	}

	return i.TripID
}
