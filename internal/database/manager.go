package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vbelov/tripline/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	return &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}
}

func GetDatabase(dsn string, debug bool) (*gorm.DB, error) {
	conf := &gorm.Config{}

	if !debug {
		conf.Logger = logger.Default.LogMode(logger.Silent)
	} else {
		conf.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	var err error

	if strings.HasPrefix(dsn, "mysql:") {
		slog.Info("open mysql database")
		db, err = gorm.Open(mysql.Open(strings.TrimPrefix(dsn, "mysql:")), conf)
	} else {
		slog.Info("open sqlite database " + dsn)
		db, err = gorm.Open(sqlite.Open(dsn), conf)
	}

	if err != nil {
		slog.Error("db open error", slog.Any("error", err))
		return nil, err
	}

	return db, nil
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.AutoMigrate(
		&model.User{},
		&model.Trip{},
		&model.TripCollaborator{},
		&model.ItineraryItem{},
		&model.Poll{},
		&model.PollOption{},
		&model.Vote{},
		&model.ChatMessage{},
		&model.TripInvite{},
	)
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) TripQuery() *TripQuery {
	return NewTripQuery(mm.db)
}

func (mm *DatabaseManager) CollaboratorQuery() *CollaboratorQuery {
	return NewCollaboratorQuery(mm.db)
}

func (mm *DatabaseManager) ItemQuery() *ItemQuery {
	return NewItemQuery(mm.db)
}

func (mm *DatabaseManager) PollQuery() *PollQuery {
	return NewPollQuery(mm.db)
}

func (mm *DatabaseManager) MessageQuery() *MessageQuery {
	return NewMessageQuery(mm.db)
}

func (mm *DatabaseManager) InviteQuery() *InviteQuery {
	return NewInviteQuery(mm.db)
}

func (mm *DatabaseManager) UserQuery() *UserQuery {
	return NewUserQuery(mm.db)
}

// TripOwner implements access.Store.
func (mm *DatabaseManager) TripOwner(tripID uint) (uint, bool) {
	t := mm.TripQuery().Id(tripID).One()

	if t == nil {
		return 0, false
	}

	return t.OwnerID, true
}

// IsMember implements access.Store.
func (mm *DatabaseManager) IsMember(tripID uint, userID uint) bool {
	return mm.CollaboratorQuery().Trip(tripID).User(userID).Count() > 0
}

// VoteCounts returns the number of votes per option for a poll.
func (mm *DatabaseManager) VoteCounts(pollID uint) map[uint]int64 {
	var rows []struct {
		OptionID uint
		N        int64
	}

	res := make(map[uint]int64)

	err := mm.db.Model(&model.Vote{}).
		Select("option_id, count(*) as n").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Find(&rows).Error

	if err != nil {
		mm.logger.Error("error counting votes", slog.Any("error", err))
		return res
	}

	for _, r := range rows {
		res[r.OptionID] = r.N
	}

	return res
}
