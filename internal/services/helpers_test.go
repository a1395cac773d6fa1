package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/repositories"
	"github.com/railway_station/pkg/db"
)

// fixedNow 测试中的“今天”是 2025-05-01
var fixedNow = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(configs.DatabaseConfig{Driver: db.DriverSQLite, SQLitePath: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type prefixHasher struct{}

func (prefixHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func newTrainFixture(t *testing.T) (TrainService, repositories.TrainRepository) {
	t.Helper()
	repo := repositories.NewGormTrainRepository(newTestDB(t))
	return NewTrainService(repo, fixedNow), repo
}

func validTrain(number string) *models.Train {
	return &models.Train{
		Number:           number,
		FromCity:         "Москва",
		ToCity:           "Казань",
		DepartureStation: "Казанский вокзал",
		ArrivalStation:   "Казань-Пассажирская",
		DepartureDate:    models.NewDate(2025, 6, 1),
		DepartureTime:    "08:00",
		ArrivalDate:      models.NewDate(2025, 6, 1),
		ArrivalTime:      "20:00",
	}
}
