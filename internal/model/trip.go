package model

import (
	"time"
)

const (
	ROLE_EDITOR = "editor"
	ROLE_VIEWER = "viewer"
)

type Trip struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"type:timestamp"`
	UpdatedAt   time.Time `gorm:"type:timestamp"`
	OwnerID     uint      `gorm:"index:idx_trips_owner_start;not null"`
	Owner       *User
	Name        string `gorm:"index;not null;size:200"`
	Description string
	StartDate   *time.Time `gorm:"index:idx_trips_owner_start"`
	EndDate     *time.Time
}

func (t *Trip) GetOwnerID() uint {
	if t == nil {
		return 0
	}

	return t.OwnerID
}

// GetTripID makes a trip addressable like any trip-scoped resource, so
// membership checks resolve against the trip itself.
func (t *Trip) GetTripID() uint {
	if t == nil {
		return 0
	}

	return t.ID
}

type TripCollaborator struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
	TripID    uint      `gorm:"uniqueIndex:idx_collab_trip_user;not null"`
	UserID    uint      `gorm:"uniqueIndex:idx_collab_trip_user;not null"`
	User      *User
	Role      string `gorm:"not null;default:viewer;size:16"`
}

func (c *TripCollaborator) GetTripID() uint {
	if c == nil {
		return 0
	}

	return c.TripID
}

func ValidRole(role string) bool {
	return role == ROLE_EDITOR || role == ROLE_VIEWER
}

type ItineraryItem struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"type:timestamp"`
	UpdatedAt   time.Time `gorm:"type:timestamp"`
	TripID      uint      `gorm:"index:idx_items_trip_order;not null"`
	Title       string    `gorm:"not null;size:200"`
	Description string
	StartTime   *time.Time
	EndTime     *time.Time
	Order       int `gorm:"column:item_order;index:idx_items_trip_order;not null;default:0"`
}

func (i *ItineraryItem) GetTripID() uint {
	if i == nil {
		return 0
	}

	return i.TripID
}
