package model

import (
	"time"
)

type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type TripDTO struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Owner         *UserDTO   `json:"owner"`
	Collaborators []*UserDTO `json:"collaborators"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type TripPutDTO struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type CollaboratorDTO struct {
	ID        uint      `json:"id"`
	User      *UserDTO  `json:"user"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CollaboratorPutDTO struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type ItineraryItemDTO struct {
	ID          uint       `json:"id"`
	TripID      uint       `json:"trip"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ItineraryItemPutDTO struct {
	TripID      uint       `json:"trip"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Order       int        `json:"order"`
}

type PollDTO struct {
	ID        uint             `json:"id"`
	TripID    uint             `json:"trip"`
	Question  string           `json:"question"`
	CreatedBy *UserDTO         `json:"created_by"`
	Options   []*PollOptionDTO `json:"options"`
	CreatedAt time.Time        `json:"created_at"`
}

type PollOptionDTO struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	VotesCount int64  `json:"votes_count"`
}

type PollPutDTO struct {
	TripID   uint                `json:"trip"`
	Question string              `json:"question"`
	Options  []*PollOptionPutDTO `json:"options"`
}

type PollOptionPutDTO struct {
	Text string `json:"text"`
}

type VotePostDTO struct {
	OptionID uint `json:"option_id"`
}

type ChatMessageDTO struct {
	ID        uint      `json:"id"`
	TripID    uint      `json:"trip"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Sender    *UserDTO  `json:"sender"`
}

type ChatMessagePostDTO struct {
	TripID  uint   `json:"trip"`
	Content string `json:"content"`
}

type InviteDTO struct {
	ID        uint      `json:"id"`
	TripID    uint      `json:"trip"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
}

type InvitePostDTO struct {
	TripID uint   `json:"trip"`
	Email  string `json:"email"`
}

func ToTripDTO(t *Trip, collaborators []*TripCollaborator) *TripDTO {
	if t == nil {
		return nil
	}

	users := make([]*UserDTO, 0, len(collaborators))

	for _, c := range collaborators {
		if c.User != nil {
			users = append(users, c.User.DTO())
		}
	}

	return &TripDTO{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		Owner:         t.Owner.DTO(),
		Collaborators: users,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func ToCollaboratorDTO(c *TripCollaborator) *CollaboratorDTO {
	if c == nil {
		return nil
	}

	return &CollaboratorDTO{
		ID:        c.ID,
		User:      c.User.DTO(),
		Role:      c.Role,
		CreatedAt: c.CreatedAt,
	}
}

func ToItineraryItemDTO(i *ItineraryItem) *ItineraryItemDTO {
	if i == nil {
		return nil
	}

	return &ItineraryItemDTO{
		ID:          i.ID,
		TripID:      i.TripID,
		Title:       i.Title,
		Description: i.Description,
		StartTime:   i.StartTime,
		EndTime:     i.EndTime,
		Order:       i.Order,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func ToPollDTO(p *Poll, votes map[uint]int64) *PollDTO {
	if p == nil {
		return nil
	}

	options := make([]*PollOptionDTO, len(p.Options))

	for i, o := range p.Options {
		options[i] = &PollOptionDTO{ID: o.ID, Text: o.Text, VotesCount: votes[o.ID]}
	}

	return &PollDTO{
		ID:        p.ID,
		TripID:    p.TripID,
		Question:  p.Question,
		CreatedBy: p.CreatedBy.DTO(),
		Options:   options,
		CreatedAt: p.CreatedAt,
	}
}

func ToChatMessageDTO(m *ChatMessage) *ChatMessageDTO {
	if m == nil {
		return nil
	}

	return &ChatMessageDTO{
		ID:        m.ID,
		TripID:    m.TripID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Sender:    m.Sender.DTO(),
	}
}

func ToInviteDTO(i *TripInvite) *InviteDTO {
	if i == nil {
		return nil
	}

	return &InviteDTO{
		ID:        i.ID,
		TripID:    i.TripID,
		Email:     i.Email,
		Token:     i.Token,
		Accepted:  i.Accepted,
		CreatedAt: i.CreatedAt,
	}
}
