// Package scheduler runs the daily feed download and import cycle.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/amfi"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/apperrors"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
)

// Scheduler triggers a download+import cycle on a cron schedule. The daily
// decision logic lives here, not in the import pipeline: skip configured
// weekdays (AMFI publishes no fresh NAV for them) and skip when today's feed
// was already imported.
type Scheduler struct {
	cron              *cron.Cron
	importService     *service.ImportService
	feedConfigService *service.FeedConfigService
	navRepo           *repository.NavRepository
	feedClient        amfi.Client
	location          *time.Location
	skipWeekdays      map[time.Weekday]bool
}

// New creates a Scheduler in the given time zone. skipWeekdays lists the
// weekdays on which the cycle never runs.
func New(
	importService *service.ImportService,
	feedConfigService *service.FeedConfigService,
	navRepo *repository.NavRepository,
	feedClient amfi.Client,
	timezone string,
	skipWeekdays []time.Weekday,
) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone: %w", err)
	}

	skip := make(map[time.Weekday]bool, len(skipWeekdays))
	for _, wd := range skipWeekdays {
		skip[wd] = true
	}

	return &Scheduler{
		cron:              cron.New(cron.WithLocation(loc)),
		importService:     importService,
		feedConfigService: feedConfigService,
		navRepo:           navRepo,
		feedClient:        feedClient,
		location:          loc,
		skipWeekdays:      skip,
	}, nil
}

// Start registers the cron entry and begins scheduling.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("scheduled feed import failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule feed import: %w", err)
	}

	s.cron.Start()
	log.Printf("feed import scheduled: %q (%s)", schedule, s.location)
	return nil
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce performs one download+import cycle if today qualifies.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	today := time.Now().In(s.location)

	if s.skipWeekdays[today.Weekday()] {
		log.Printf("feed import skipped: no publication on %s", today.Weekday())
		return nil
	}

	count, err := s.navRepo.CountRecordsOnDate(today)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("feed import skipped: %d records already stored for %s",
			count, today.Format("2006-01-02"))
		return nil
	}

	cfg, err := s.feedConfigService.GetFeedConfig()
	if err != nil {
		if errors.Is(err, apperrors.ErrFeedConfigNotFound) {
			log.Print("feed import skipped: no feed configured")
			return nil
		}
		return err
	}

	rawText, err := s.feedClient.DownloadNavFeed(ctx, cfg.FeedURL, cfg.AuthToken)
	if err != nil {
		return err
	}

	summary, err := s.importService.ImportAmfiData(ctx, rawText)
	if err != nil {
		return err
	}

	if err := s.feedConfigService.MarkImported(ctx, today); err != nil {
		return err
	}

	log.Printf("scheduled feed import done: %d records inserted", summary.RecordsInserted)
	return nil
}
