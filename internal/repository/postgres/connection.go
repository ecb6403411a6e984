package postgres

import (
	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migrations plus the constraints AutoMigrate cannot
// express: at most one active season at a time.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.PickingSeason{},
		&domain.Movie{},
		&domain.MoviePick{},
		&domain.Rating{},
		&domain.CastMember{},
		&domain.CrewMember{},
		&domain.GroupStats{},
	)
	if err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_seasons_single_active
		 ON picking_seasons (is_active) WHERE is_active`,
	).Error
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Session: NewSessionRepository(db),
		Season:  NewSeasonRepository(db),
		Movie:   NewMovieRepository(db),
		Pick:    NewPickRepository(db),
		Rating:  NewRatingRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
