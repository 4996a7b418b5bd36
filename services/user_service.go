package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"game-score-service/models"
	"game-score-service/store"
)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func NewUserService(s store.Store) *UserService {
	return &UserService{Store: s, Now: time.Now}
}

type CreateUserRequest struct {
	Pseudo string `json:"pseudo"`
}

type CreateUserResult struct {
	Pseudo string `json:"pseudo"`
}

// CreateUser registers pseudo once. The store write is insert-if-absent, so two
// concurrent registrations cannot both succeed.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error) {
	if strings.TrimSpace(req.Pseudo) == "" {
		return nil, invalid("pseudo is required")
	}

	user := &models.User{
		Pseudo:    req.Pseudo,
		CreatedAt: s.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, newError(KindConflict, "already existing pseudo", nil)
		}
		return nil, storeFailure("failed to save user", err)
	}

	log.Printf("[USERS] new user %q", user.Pseudo)
	return &CreateUserResult{Pseudo: user.Pseudo}, nil
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, storeFailure("failed to list users", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
