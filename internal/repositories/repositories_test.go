package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/pkg/db"
)

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

func train(number, from, to string) *models.Train {
	return &models.Train{
		Number:           number,
		FromCity:         from,
		ToCity:           to,
		DepartureStation: "Central",
		ArrivalStation:   "Central",
		DepartureDate:    models.NewDate(2025, 6, 1),
		DepartureTime:    "08:00",
		ArrivalDate:      models.NewDate(2025, 6, 1),
		ArrivalTime:      "12:00",
	}
}

func TestTrainSortColumn(t *testing.T) {
	col, err := TrainSortColumn("")
	require.NoError(t, err)
	assert.Equal(t, "id", col)

	col, err = TrainSortColumn("departureTime")
	require.NoError(t, err)
	assert.Equal(t, "departure_time", col)

	_, err = TrainSortColumn("id; DROP TABLE trains")
	assert.ErrorIs(t, err, ErrUnknownSortField)
}

func TestCreateTrainUniqueNumber(t *testing.T) {
	repo := NewGormTrainRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.CreateTrain(ctx, train("001A", "Moscow", "Kazan"))
	require.NoError(t, err)

	_, err = repo.CreateTrain(ctx, train("001A", "Moscow", "Samara"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrainNumberConflict)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestPopularDirectionsOrderAndLimit(t *testing.T) {
	repo := NewGormTrainRepository(newTestDB(t))
	ctx := context.Background()

	fixtures := []*models.Train{
		train("A1", "Moscow", "Kazan"),
		train("A2", "Moscow", "Kazan"),
		train("B1", "Omsk", "Tomsk"),
		train("B2", "Omsk", "Tomsk"),
		train("C1", "Adler", "Sochi"),
		train("D1", "Perm", "Ufa"),
	}
	for _, f := range fixtures {
		_, err := repo.CreateTrain(ctx, f)
		require.NoError(t, err)
	}

	got, err := repo.PopularDirections(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Moscow", got[0].FromCity)
	assert.EqualValues(t, 2, got[0].Count)
	assert.Equal(t, "Omsk", got[1].FromCity)
	assert.Equal(t, "Adler", got[2].FromCity)
	assert.EqualValues(t, 1, got[2].Count)
}

func TestDistinctCitiesSorted(t *testing.T) {
	repo := NewGormTrainRepository(newTestDB(t))
	ctx := context.Background()
	for _, f := range []*models.Train{train("A1", "Omsk", "Kazan"), train("A2", "Adler", "Kazan"), train("A3", "Omsk", "Ufa")} {
		_, err := repo.CreateTrain(ctx, f)
		require.NoError(t, err)
	}

	from, err := repo.DistinctFromCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adler", "Omsk"}, from)

	to, err := repo.DistinctToCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kazan", "Ufa"}, to)
}

func TestUpdateTrainFieldsMissing(t *testing.T) {
	repo := NewGormTrainRepository(newTestDB(t))
	_, err := repo.UpdateTrainFields(context.Background(), 42, map[string]interface{}{"number": "X1"})
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestCreateUserConflictsByColumn(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, &models.User{Username: "ivan", PasswordHash: "x", Email: "ivan@mail.ru", Phone: "9161234567", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, &models.User{Username: "petr", PasswordHash: "x", Email: "ivan@mail.ru", Phone: "9160000000", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrEmailConflict)

	_, err = repo.CreateUser(ctx, &models.User{Username: "petr", PasswordHash: "x", Email: "petr@mail.ru", Phone: "9161234567", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrPhoneConflict)

	err = repo.UpdateUserRole(ctx, 99, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
