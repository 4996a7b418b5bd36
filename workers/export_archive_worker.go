// workers/export_archive_worker.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"game-score-service/services"

	"github.com/go-co-op/gocron/v2"
)

// Uploader stores an export file and returns where it went.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ExportArchiveWorker copies the previous UTC day's score export to a bucket
// on a fixed interval.
type ExportArchiveWorker struct {
	exports  *services.ExportService
	bucket   Uploader
	prefix   string
	interval time.Duration
	now      func() time.Time
}

func NewExportArchiveWorker(exports *services.ExportService, bucket Uploader, prefix string, interval time.Duration) *ExportArchiveWorker {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &ExportArchiveWorker{
		exports:  exports,
		bucket:   bucket,
		prefix:   prefix,
		interval: interval,
		now:      time.Now,
	}
}

// Start schedules RunOnce and stops the scheduler when ctx is done.
func (w *ExportArchiveWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if _, err := w.RunOnce(ctx); err != nil {
				log.Printf("[ARCHIVE] export failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule export archive: %w", err)
	}

	sched.Start()
	log.Printf("[ARCHIVE] export archive scheduled every %s", w.interval)

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("[ARCHIVE] scheduler shutdown: %v", err)
		}
		log.Println("[ARCHIVE] export archive stopped")
	}()
	return nil
}

// RunOnce uploads yesterday's CSV and returns its location. An empty day is
// skipped and returns "".
func (w *ExportArchiveWorker) RunOnce(ctx context.Context) (string, error) {
	today := w.now().UTC().Truncate(24 * time.Hour)
	day := today.AddDate(0, 0, -1)

	// The score export excludes its lower bound, so start one millisecond
	// before midnight to keep records written exactly at 00:00.
	csv, err := w.exports.ScoresCSV(ctx, day.Add(-time.Millisecond), day)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			log.Printf("[ARCHIVE] no scores on %s, nothing to archive", day.Format("2006-01-02"))
			return "", nil
		}
		return "", err
	}

	key := path.Join(w.prefix, services.ExportFilename("scores", day, day, "csv"))
	loc, err := w.bucket.Upload(ctx, key, []byte(csv), "text/csv")
	if err != nil {
		return "", err
	}
	log.Printf("[ARCHIVE] archived %s", loc)
	return loc, nil
}
