package model

import (
	"time"
)

type Poll struct {
	ID          uint      `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"type:timestamp"`
	UpdatedAt   time.Time `gorm:"type:timestamp"`
	TripID      uint      `gorm:"index;not null"`
	Question    string    `gorm:"not null;size:255"`
	CreatedByID uint      `gorm:"index;not null"`
	CreatedBy   *User
	Options     []*PollOption
}

func (p *Poll) GetTripID() uint {
	if p == nil {
		return 0
	}

	return p.TripID
}

type PollOption struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
	PollID    uint      `gorm:"uniqueIndex:idx_options_poll_text;not null"`
	Text      string    `gorm:"uniqueIndex:idx_options_poll_text;not null;size:255"`
}

type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`
	PollID    uint      `gorm:"uniqueIndex:idx_votes_poll_user;not null"`
	UserID    uint      `gorm:"uniqueIndex:idx_votes_poll_user;not null"`
	OptionID  uint      `gorm:"index;not null"`
}
