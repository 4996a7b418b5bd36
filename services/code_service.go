// services/code_service.go
package services

import (
	"context"
	"log"
	"strings"
	"time"

	"game-score-service/models"
)

type CodeService struct {
	Generator *CodeGenerator
	Now       func() time.Time
}

func NewCodeService(gen *CodeGenerator) *CodeService {
	return &CodeService{Generator: gen, Now: time.Now}
}

// CreateCodeRequest is the create-code body. NbPlayers and NbDays default to 1.
type CreateCodeRequest struct {
	Points    int    `json:"points"`
	Label     string `json:"label"`
	NbPlayers *int   `json:"nbPlayers,omitempty"`
	NbDays    *int   `json:"nbDays,omitempty"`
}

type CreateCodeResult struct {
	Code      string `json:"code"`
	Points    int    `json:"points"`
	Label     string `json:"label"`
	NbPlayers int    `json:"nbPlayers"`
}

// CreateCode issues a new code usable NbPlayers times for NbDays days.
func (s *CodeService) CreateCode(ctx context.Context, req CreateCodeRequest) (*CreateCodeResult, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, invalid("label is required")
	}
	nbPlayers, nbDays := 1, 1
	if req.NbPlayers != nil {
		nbPlayers = *req.NbPlayers
	}
	if req.NbDays != nil {
		nbDays = *req.NbDays
	}
	if nbPlayers < 0 {
		return nil, invalid("nbPlayers must not be negative")
	}

	now := s.Now().UnixMilli()
	record, err := s.Generator.Issue(ctx, func(code string) *models.Code {
		return &models.Code{
			Code:      code,
			Points:    req.Points,
			Label:     req.Label,
			NbPlayers: nbPlayers,
			Available: nbPlayers,
			CreatedAt: now,
			ClosingAt: now + int64(nbDays)*models.DayMillis,
		}
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[CODES] new code %s: %d points, %d players, closes %s",
		record.Code, record.Points, nbPlayers, time.UnixMilli(record.ClosingAt).UTC().Format(time.RFC3339))

	return &CreateCodeResult{
		Code:      record.Code,
		Points:    record.Points,
		Label:     record.Label,
		NbPlayers: nbPlayers,
	}, nil
}
