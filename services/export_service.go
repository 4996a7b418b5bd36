package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"game-score-service/models"
	"game-score-service/store"

	"github.com/gosimple/slug"
)

type ExportService struct {
	Store store.Store
}

func NewExportService(s store.Store) *ExportService {
	return &ExportService{Store: s}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts an ISO date or timestamp. Values without a zone are UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid(fmt.Sprintf("invalid date %q", value))
}

// ScoresPivot pivots batch score events created strictly after from and
// strictly before the day following to, so the last day is included.
func (s *ExportService) ScoresPivot(ctx context.Context, from, to time.Time) (*Pivot, error) {
	minMillis := from.UnixMilli()
	maxMillis := to.UnixMilli() + models.DayMillis

	events, err := s.Store.ScanScoreEvents(ctx, minMillis, maxMillis)
	if err != nil {
		return nil, storeFailure("failed to read scores", err)
	}
	if len(events) == 0 {
		return nil, newError(KindNoData, "no data", nil)
	}

	rows := make([]ScoreRow, len(events))
	for i, e := range events {
		rows[i] = ScoreRow{Pseudo: e.Pseudo, Code: e.Code, Label: e.Label, Points: e.Points, CreatedAt: e.CreatedAt}
	}
	log.Printf("[EXPORT] %d score rows between %s and %s", len(rows), from.Format(time.RFC3339), to.Format(time.RFC3339))
	return BuildPivot(rows), nil
}

// RedemptionsPivot pivots single-code redemptions created strictly between
// from and to. Unlike ScoresPivot the upper bound is not extended.
// Redemptions carry no label, so each column takes its code's label.
func (s *ExportService) RedemptionsPivot(ctx context.Context, from, to time.Time) (*Pivot, error) {
	redemptions, err := s.Store.ScanRedemptions(ctx, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, storeFailure("failed to read scores", err)
	}
	if len(redemptions) == 0 {
		return nil, newError(KindNoData, "no data", nil)
	}

	labels := make(map[string]string)
	rows := make([]ScoreRow, len(redemptions))
	for i, r := range redemptions {
		label, ok := labels[r.Code]
		if !ok {
			label, err = s.codeLabel(ctx, r.Code)
			if err != nil {
				return nil, err
			}
			labels[r.Code] = label
		}
		rows[i] = ScoreRow{Pseudo: r.Pseudo, Code: r.Code, Label: label, Points: r.Points, CreatedAt: r.CreatedAt}
	}
	log.Printf("[EXPORT] %d redemption rows between %s and %s", len(rows), from.Format(time.RFC3339), to.Format(time.RFC3339))
	return BuildPivot(rows), nil
}

func (s *ExportService) codeLabel(ctx context.Context, code string) (string, error) {
	c, err := s.Store.GetCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		return "", storeFailure("failed to read code", err)
	}
	if c.Label == "" {
		return code, nil
	}
	return c.Label, nil
}

func (s *ExportService) ScoresCSV(ctx context.Context, from, to time.Time) (string, error) {
	p, err := s.ScoresPivot(ctx, from, to)
	if err != nil {
		return "", err
	}
	return p.CSV()
}

func (s *ExportService) RedemptionsCSV(ctx context.Context, from, to time.Time) (string, error) {
	p, err := s.RedemptionsPivot(ctx, from, to)
	if err != nil {
		return "", err
	}
	return p.CSV()
}

func (s *ExportService) ScoresXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	p, err := s.ScoresPivot(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.WriteXLSX(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename builds a download or object name such as
// "scores-2026-10-01-2026-10-07.csv".
func ExportFilename(kind string, from, to time.Time, ext string) string {
	return slug.Make(fmt.Sprintf("%s %s %s", kind, from.Format("2006-01-02"), to.Format("2006-01-02"))) + "." + ext
}
