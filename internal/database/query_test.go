package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vbelov/tripline/internal/model"
)

func getTestManager(t *testing.T) *DatabaseManager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		panic("failed to connect database")
	}

	mm := New(db)
	require.NoError(t, mm.Migrate())

	return mm
}

func addUser(t *testing.T, mm *DatabaseManager, name string) *model.User {
	t.Helper()

	u := &model.User{Username: name, Email: name + "@x.com"}
	require.NoError(t, u.SetPassword("pass"))
	require.NoError(t, mm.Create(u))

	return u
}

func TestTripVisibility(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	bob := addUser(t, mm, "bob")
	carol := addUser(t, mm, "carol")

	t1 := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	t2 := &model.Trip{OwnerID: bob.ID, Name: "oslo"}

	require.NoError(t, mm.CreateTrip(t1))
	require.NoError(t, mm.CreateTrip(t2))

	require.NoError(t, mm.UpsertCollaborator(t2.ID, alice.ID, model.ROLE_VIEWER))

	assert.Len(t, mm.TripQuery().VisibleTo(alice.ID).Get(), 2)
	assert.Len(t, mm.TripQuery().VisibleTo(bob.ID).Get(), 1)
	assert.Empty(t, mm.TripQuery().VisibleTo(carol.ID).Get())

	// owner who is also somehow a collaborator is not listed twice
	require.NoError(t, mm.UpsertCollaborator(t1.ID, alice.ID, model.ROLE_EDITOR))
	assert.Len(t, mm.TripQuery().VisibleTo(alice.ID).Get(), 2)
}

func TestTripCreateValidation(t *testing.T) {
	mm := getTestManager(t)

	require.Error(t, mm.CreateTrip(nil))
	require.Error(t, mm.CreateTrip(&model.Trip{Name: "x"}))
	require.Error(t, mm.CreateTrip(&model.Trip{OwnerID: 1}))
}

func TestDeleteTripCascades(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	bob := addUser(t, mm, "bob")

	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	require.NoError(t, mm.UpsertCollaborator(trip.ID, bob.ID, model.ROLE_VIEWER))
	require.NoError(t, mm.Create(&model.ItineraryItem{TripID: trip.ID, Title: "fish market"}))
	require.NoError(t, mm.Create(&model.ChatMessage{TripID: trip.ID, SenderID: alice.ID, Content: "hi"}))
	require.NoError(t, mm.Create(&model.TripInvite{TripID: trip.ID, Email: "b@x.com", Token: "tok"}))

	poll := &model.Poll{
		TripID:      trip.ID,
		Question:    "where first?",
		CreatedByID: alice.ID,
		Options:     []*model.PollOption{{Text: "a"}, {Text: "b"}},
	}
	require.NoError(t, mm.CreatePoll(poll))
	require.NoError(t, mm.CastVote(poll.ID, bob.ID, poll.Options[0].ID))

	require.NoError(t, mm.DeleteTrip(trip.ID))

	assert.Nil(t, mm.TripQuery().Id(trip.ID).One())
	assert.Empty(t, mm.CollaboratorQuery().Trip(trip.ID).Get())
	assert.Empty(t, mm.ItemQuery().Trip(trip.ID).Get())
	assert.Empty(t, mm.MessageQuery().Trip(trip.ID).Get())
	assert.Empty(t, mm.InviteQuery().Trip(trip.ID).Get())
	assert.Empty(t, mm.PollQuery().Trip(trip.ID).Get())

	var votes, options int64
	mm.db.Model(&model.Vote{}).Count(&votes)
	mm.db.Model(&model.PollOption{}).Count(&options)
	assert.Zero(t, votes)
	assert.Zero(t, options)
}

func TestMessageOrderAndCursor(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	trip := &model.Trip{OwnerID: alice.ID, Name: "tokyo"}
	require.NoError(t, mm.CreateTrip(trip))

	ts := time.Now()

	for i := 0; i < 5; i++ {
		m := &model.ChatMessage{TripID: trip.ID, SenderID: alice.ID, Content: "msg", CreatedAt: ts}
		require.NoError(t, mm.Create(m))
	}

	msgs := mm.MessageQuery().Trip(trip.ID).Get()
	require.Len(t, msgs, 5)

	// equal timestamps tie-break on id
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].ID, msgs[i-1].ID)
	}

	after := mm.MessageQuery().Trip(trip.ID).After(msgs[2].ID).Get()
	require.Len(t, after, 2)
	assert.Equal(t, msgs[3].ID, after[0].ID)
}

func TestMessagePageLimit(t *testing.T) {
	q := NewMessageQuery(nil)

	assert.Equal(t, maxMessagePage, q.limit)

	q.Limit(500)
	assert.Equal(t, maxMessagePage, q.limit)

	q.Limit(10)
	assert.Equal(t, 10, q.limit)
}

func TestVoteCounts(t *testing.T) {
	mm := getTestManager(t)

	alice := addUser(t, mm, "alice")
	bob := addUser(t, mm, "bob")
	carol := addUser(t, mm, "carol")

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
	require.NoError(t, mm.CastVote(poll.ID, bob.ID, poll.Options[0].ID))
	require.NoError(t, mm.CastVote(poll.ID, carol.ID, poll.Options[1].ID))

	counts := mm.VoteCounts(poll.ID)
	assert.EqualValues(t, 2, counts[poll.Options[0].ID])
	assert.EqualValues(t, 1, counts[poll.Options[1].ID])
}
