package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"game-score-service/models"
	"game-score-service/store"
)

// DefaultMaxCodeAttempts bounds the collision retry loop.
const DefaultMaxCodeAttempts = 64

// CodeStore is the part of the store the generator needs.
type CodeStore interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	InsertCode(ctx context.Context, code *models.Code) error
}

// CodeGenerator draws random codes until one is free in the codes table and
// claims it there.
type CodeGenerator struct {
	Store       CodeStore
	MaxAttempts int
	// IntN returns a uniform int in [0, n). Defaults to math/rand/v2.
	IntN func(n int) int
}

func NewCodeGenerator(s CodeStore, maxAttempts int) *CodeGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCodeAttempts
	}
	return &CodeGenerator{Store: s, MaxAttempts: maxAttempts, IntN: rand.IntN}
}

func (g *CodeGenerator) candidate() string {
	var b strings.Builder
	b.Grow(models.CodeLength)
	for i := 0; i < models.CodeLength; i++ {
		b.WriteByte(models.CodeAlphabet[g.IntN(len(models.CodeAlphabet))])
	}
	return b.String()
}

// Issue draws a free code, builds its record and inserts it. A draw that is
// already taken, either at lookup or at insert, is discarded whole.
func (g *CodeGenerator) Issue(ctx context.Context, build func(code string) *models.Code) (*models.Code, error) {
	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		code := g.candidate()
		exists, err := g.Store.CodeExists(ctx, code)
		if err != nil {
			return nil, storeFailure("code lookup failed", err)
		}
		if !exists {
			record := build(code)
			err := g.Store.InsertCode(ctx, record)
			if err == nil {
				return record, nil
			}
			if !errors.Is(err, store.ErrAlreadyExists) {
				return nil, storeFailure("failed to save code", err)
			}
		}
		log.Printf("[CODES] collision on %q (attempt %d/%d)", code, attempt, g.MaxAttempts)
	}
	return nil, newError(KindGenerationExhausted,
		fmt.Sprintf("no free code found after %d attempts", g.MaxAttempts), nil)
}
