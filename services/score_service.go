// services/score_service.go
package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"game-score-service/models"
	"game-score-service/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ScoreService struct {
	Store     store.Store
	Generator *CodeGenerator
	Now       func() time.Time
	NewID     func() string
}

func NewScoreService(s store.Store, gen *CodeGenerator) *ScoreService {
	return &ScoreService{Store: s, Generator: gen, Now: time.Now, NewID: uuid.NewString}
}

type AddScoreRequest struct {
	Code   string `json:"code"`
	Pseudo string `json:"pseudo"`
}

type AddScoreResult struct {
	Points int    `json:"points"`
	Pseudo string `json:"pseudo"`
}

// AddScore redeems one unit of a code for pseudo.
//
// The decrement is guarded by available > 0 in the store, so a redemption that
// loses a race against the last unit fails as exhausted instead of going negative.
// A failed Redemption write after the decrement is not compensated.
func (s *ScoreService) AddScore(ctx context.Context, req AddScoreRequest) (*AddScoreResult, error) {
	if req.Code == "" {
		return nil, invalid("code is required")
	}
	if strings.TrimSpace(req.Pseudo) == "" {
		return nil, invalid("pseudo is required")
	}

	code, err := s.Store.GetCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, "code not available", nil)
		}
		return nil, storeFailure("failed to read code", err)
	}

	now := s.Now().UnixMilli()
	if code.Closed(now) {
		return nil, newError(KindExpired, "too late", nil)
	}
	if code.Available <= 0 {
		return nil, newError(KindExhausted, "no points left to distribute", nil)
	}

	if err := s.Store.DecrementAvailable(ctx, code.Code); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, newError(KindExhausted, "no points left to distribute", nil)
		}
		return nil, storeFailure("failed to update code", err)
	}

	redemption := &models.Redemption{
		ID:        s.NewID(),
		Pseudo:    req.Pseudo,
		Code:      code.Code,
		Points:    code.Points,
		CreatedAt: now,
	}
	if err := s.Store.PutRedemption(ctx, redemption); err != nil {
		return nil, storeFailure("failed to save score", err)
	}

	log.Printf("[SCORES] %q redeemed %s for %d points", req.Pseudo, code.Code, code.Points)
	return &AddScoreResult{Points: code.Points, Pseudo: req.Pseudo}, nil
}

type AddScoresRequest struct {
	Label   string   `json:"label"`
	Points  int      `json:"points"`
	Players []string `json:"players"`
}

type AddScoresResult struct {
	Points int    `json:"points"`
	Code   string `json:"code"`
}

// AddScores records one scoring occasion for every player. All rows share a
// freshly generated code and one timestamp. The code is registered in the
// codes table with nothing available and closing at creation, so it tags the
// event without being redeemable. Writes run in parallel and the first failure
// fails the whole batch; rows already written stay written.
func (s *ScoreService) AddScores(ctx context.Context, req AddScoresRequest) (*AddScoresResult, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, invalid("label is required")
	}
	if len(req.Players) == 0 {
		return nil, invalid("players is required")
	}

	createdAt := s.Now().UnixMilli()
	batch, err := s.Generator.Issue(ctx, func(code string) *models.Code {
		return &models.Code{
			Code:      code,
			Points:    req.Points,
			Label:     req.Label,
			NbPlayers: len(req.Players),
			Available: 0,
			CreatedAt: createdAt,
			ClosingAt: createdAt,
		}
	})
	if err != nil {
		return nil, err
	}
	code := batch.Code

	g, gctx := errgroup.WithContext(ctx)
	for _, pseudo := range req.Players {
		event := &models.ScoreEvent{
			ID:        s.NewID(),
			Pseudo:    pseudo,
			Points:    req.Points,
			Label:     req.Label,
			Code:      code,
			CreatedAt: createdAt,
		}
		g.Go(func() error {
			return s.Store.PutScoreEvent(gctx, event)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeFailure("failed to save scores", err)
	}

	log.Printf("[SCORES] batch %s (%q): %d players, %d points each", code, req.Label, len(req.Players), req.Points)
	return &AddScoresResult{Points: req.Points, Code: code}, nil
}
