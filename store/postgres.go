// store/postgres.go
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"game-score-service/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore keeps each record kind in its own table through gorm.
type PostgresStore struct {
	DB *gorm.DB
}

// OpenPostgres connects to dsn and migrates the four tables.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	s := NewPostgresStore(db)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Migrate() error {
	if err := s.DB.AutoMigrate(
		&models.Code{},
		&models.User{},
		&models.Redemption{},
		&models.ScoreEvent{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("[STORE] postgres schema migrated")
	return nil
}

func (s *PostgresStore) GetCode(ctx context.Context, code string) (*models.Code, error) {
	var c models.Code
	if err := s.DB.WithContext(ctx).First(&c, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("code %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("get code %q: %w", code, err)
	}
	return &c, nil
}

func (s *PostgresStore) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Code{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup code %q: %w", code, err)
	}
	return count > 0, nil
}

func (s *PostgresStore) InsertCode(ctx context.Context, code *models.Code) error {
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(code)
	if res.Error != nil {
		return fmt.Errorf("insert code %q: %w", code.Code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("code %q: %w", code.Code, ErrAlreadyExists)
	}
	return nil
}

// DecrementAvailable is a single UPDATE guarded by available > 0, so concurrent
// redemptions can never drive the counter below zero.
func (s *PostgresStore) DecrementAvailable(ctx context.Context, code string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Code{}).
		Where("code = ? AND available > 0", code).
		UpdateColumn("available", gorm.Expr("available - ?", 1))
	if res.Error != nil {
		return fmt.Errorf("decrement %q: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("decrement %q: %w", code, ErrConditionFailed)
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pseudo"}},
			DoNothing: true,
		}).
		Create(user)
	if res.Error != nil {
		return fmt.Errorf("create user %q: %w", user.Pseudo, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %q: %w", user.Pseudo, ErrAlreadyExists)
	}
	return nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) PutRedemption(ctx context.Context, r *models.Redemption) error {
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("put redemption %s: %w", r.ID, err)
	}
	return nil
}

func (s *PostgresStore) ScanRedemptions(ctx context.Context, minMillis, maxMillis int64) ([]models.Redemption, error) {
	var out []models.Redemption
	if err := s.DB.WithContext(ctx).
		Where("created_at > ? AND created_at < ?", minMillis, maxMillis).
		Order("created_at").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("scan redemptions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) PutScoreEvent(ctx context.Context, e *models.ScoreEvent) error {
	if err := s.DB.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("put score event %s: %w", e.ID, err)
	}
	return nil
}

func (s *PostgresStore) ScanScoreEvents(ctx context.Context, minMillis, maxMillis int64) ([]models.ScoreEvent, error) {
	var out []models.ScoreEvent
	if err := s.DB.WithContext(ctx).
		Where("created_at > ? AND created_at < ?", minMillis, maxMillis).
		Order("created_at").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("scan score events: %w", err)
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
