package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbelov/tripline/internal/model"
)

func TestUpsertCollaborator(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	bob := addUser(t, mm, "bob")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	require.NoError(t, mm.UpsertCollaborator(trip.ID, bob.ID, model.ROLE_VIEWER))
	require.NoError(t, mm.UpsertCollaborator(trip.ID, bob.ID, model.ROLE_EDITOR))

	rows := mm.CollaboratorQuery().Trip(trip.ID).Get()
	require.Len(t, rows, 1)
	assert.Equal(t, model.ROLE_EDITOR, rows[0].Role)
}

func TestCastVoteOverwrites(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	poll := &model.Poll{
		TripID:      trip.ID,
		Question:    "where?",
		CreatedByID: alice.ID,
		Options:     []*model.PollOption{{Text: "a"}, {Text: "b"}},
	}
	require.NoError(t, mm.CreatePoll(poll))

	require.NoError(t, mm.CastVote(poll.ID, alice.ID, poll.Options[0].ID))
	require.NoError(t, mm.CastVote(poll.ID, alice.ID, poll.Options[1].ID))

	var votes []*model.Vote
	mm.db.Where("poll_id = ?", poll.ID).Find(&votes)

	require.Len(t, votes, 1)
	assert.Equal(t, poll.Options[1].ID, votes[0].OptionID)
}

func TestCastVoteForeignOption(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	p1 := &model.Poll{TripID: trip.ID, Question: "q1", CreatedByID: alice.ID,
		Options: []*model.PollOption{{Text: "a"}}}
	p2 := &model.Poll{TripID: trip.ID, Question: "q2", CreatedByID: alice.ID,
		Options: []*model.PollOption{{Text: "b"}}}

	require.NoError(t, mm.CreatePoll(p1))
	require.NoError(t, mm.CreatePoll(p2))

	err := mm.CastVote(p1.ID, alice.ID, p2.Options[0].ID)
	require.ErrorIs(t, err, ErrNotFound)

	var votes int64
	mm.db.Model(&model.Vote{}).Count(&votes)
	assert.Zero(t, votes)
}

func TestAcceptInvite(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	bob := addUser(t, mm, "bob")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))
	require.NoError(t, mm.Create(&model.TripInvite{TripID: trip.ID, Email: "b@x.com", Token: "tok1"}))

	inv, err := mm.AcceptInvite("tok1", bob.ID)
	require.NoError(t, err)
	assert.True(t, inv.Accepted)
	assert.Equal(t, trip.ID, inv.TripID)

	rows := mm.CollaboratorQuery().Trip(trip.ID).Get()
	require.Len(t, rows, 1)
	assert.Equal(t, model.ROLE_VIEWER, rows[0].Role)
	assert.Equal(t, bob.ID, rows[0].UserID)

	// double acceptance keeps one membership and the flag set
	inv, err = mm.AcceptInvite("tok1", bob.ID)
	require.NoError(t, err)
	assert.True(t, inv.Accepted)
	assert.Len(t, mm.CollaboratorQuery().Trip(trip.ID).Get(), 1)
}

func TestAcceptInviteKeepsExistingRole(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	bob := addUser(t, mm, "bob")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))
	require.NoError(t, mm.UpsertCollaborator(trip.ID, bob.ID, model.ROLE_EDITOR))
	require.NoError(t, mm.Create(&model.TripInvite{TripID: trip.ID, Email: "b@x.com", Token: "tok1"}))

	_, err := mm.AcceptInvite("tok1", bob.ID)
	require.NoError(t, err)

	rows := mm.CollaboratorQuery().Trip(trip.ID).Get()
	require.Len(t, rows, 1)
	assert.Equal(t, model.ROLE_EDITOR, rows[0].Role)
}

func TestAcceptInviteAnonymous(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))
	require.NoError(t, mm.Create(&model.TripInvite{TripID: trip.ID, Email: "b@x.com", Token: "tok1"}))

	inv, err := mm.AcceptInvite("tok1", 0)
	require.NoError(t, err)
	assert.True(t, inv.Accepted)
	assert.Empty(t, mm.CollaboratorQuery().Trip(trip.ID).Get())
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	mm := getTestManager(t)

	_, err := mm.AcceptInvite("nope", 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReorderItinerary(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	i1 := &model.ItineraryItem{TripID: trip.ID, Title: "one", Order: 0}
	i2 := &model.ItineraryItem{TripID: trip.ID, Title: "two", Order: 1}
	i3 := &model.ItineraryItem{TripID: trip.ID, Title: "three", Order: 2}

	for _, i := range []*model.ItineraryItem{i1, i2, i3} {
		require.NoError(t, mm.Create(i))
	}

	require.NoError(t, mm.ReorderItinerary(trip.ID, []uint{i3.ID, i1.ID, i2.ID}))

	order := func(id uint) int {
		return mm.ItemQuery().Id(id).One().Order
	}

	assert.Equal(t, 0, order(i3.ID))
	assert.Equal(t, 1, order(i1.ID))
	assert.Equal(t, 2, order(i2.ID))
}

func TestReorderItineraryQuirks(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	other := &model.Trip{OwnerID: alice.ID, Name: "oslo"}
	require.NoError(t, mm.CreateTrip(trip))
	require.NoError(t, mm.CreateTrip(other))

	i1 := &model.ItineraryItem{TripID: trip.ID, Title: "one", Order: 7}
	i2 := &model.ItineraryItem{TripID: trip.ID, Title: "two", Order: 8}
	foreign := &model.ItineraryItem{TripID: other.ID, Title: "elsewhere", Order: 3}

	for _, i := range []*model.ItineraryItem{i1, i2, foreign} {
		require.NoError(t, mm.Create(i))
	}

	// unknown and foreign ids are ignored; omitted items keep stale order
	require.NoError(t, mm.ReorderItinerary(trip.ID, []uint{i2.ID, foreign.ID, 9999}))

	assert.Equal(t, 0, mm.ItemQuery().Id(i2.ID).One().Order)
	assert.Equal(t, 7, mm.ItemQuery().Id(i1.ID).One().Order)
	assert.Equal(t, 3, mm.ItemQuery().Id(foreign.ID).One().Order)
}

func TestReplacePollOptions(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	poll := &model.Poll{TripID: trip.ID, Question: "q", CreatedByID: alice.ID,
		Options: []*model.PollOption{{Text: "a"}, {Text: "b"}}}
	require.NoError(t, mm.CreatePoll(poll))
	require.NoError(t, mm.CastVote(poll.ID, alice.ID, poll.Options[0].ID))

	require.NoError(t, mm.ReplacePollOptions(poll.ID, []string{"x", "y", "z"}))

	p := mm.PollQuery().Id(poll.ID).Full().One()
	require.Len(t, p.Options, 3)

	var votes int64
	mm.db.Model(&model.Vote{}).Where("poll_id = ?", poll.ID).Count(&votes)
	assert.Zero(t, votes)
}
