package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/unitofwork"
	"moviematch-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.MovieRepository())
	assert.NotNil(t, uow.SessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Movie Repository", func(t *testing.T) {
		count, err := uow.MovieRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Movie count: %d", count)
	})

	t.Run("Check Transactional Rating Write", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Username: "integration-" + uuid.New().String()[:8],
		}

		movieId := "it-" + uuid.New().String()[:8]
		movie := &entity.Movie{
			Id:          movieId,
			Title:       "Integration Test Movie",
			GenreIds:    []int{18},
			Popularity:  1.0,
			VoteAverage: 7.5,
			VoteCount:   10,
		}

		// Setup DB Data
		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)
		err = uow.MovieRepository().Create(context.Background(), movie)
		assert.NoError(t, err)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		rating := &entity.Rating{
			UserId:  userId,
			MovieId: movieId,
			Rating:  4.5,
		}
		err = uow.RatingRepository().Upsert(ctx, rating)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		rated, err := uow.RatingRepository().GetRatedMovieIDs(context.Background(), userId)
		assert.NoError(t, err)
		assert.Contains(t, rated, movieId)

		t.Log("Successfully stored a Rating in Transaction")
	})
}
