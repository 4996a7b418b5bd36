// Package store persists codes, users and score records behind one interface
// so the services never hold a concrete client.
package store

import (
	"context"
	"errors"

	"game-score-service/models"
)

var (
	// ErrNotFound is returned when a keyed lookup has no record.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned by insert-if-absent writes when the key is taken.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrConditionFailed is returned when a guarded update did not apply.
	ErrConditionFailed = errors.New("condition not met")
)

// Store is the data capability every handler receives.
//
// Range scans select records whose CreatedAt (epoch ms) is strictly between
// minMillis and maxMillis.
type Store interface {
	GetCode(ctx context.Context, code string) (*models.Code, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// InsertCode writes a new code only if the key is free.
	InsertCode(ctx context.Context, code *models.Code) error
	// DecrementAvailable removes one unit from a code only while available > 0.
	DecrementAvailable(ctx context.Context, code string) error

	// CreateUser inserts the user only if the pseudo is free.
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)

	PutRedemption(ctx context.Context, r *models.Redemption) error
	ScanRedemptions(ctx context.Context, minMillis, maxMillis int64) ([]models.Redemption, error)

	PutScoreEvent(ctx context.Context, e *models.ScoreEvent) error
	ScanScoreEvents(ctx context.Context, minMillis, maxMillis int64) ([]models.ScoreEvent, error)
}
