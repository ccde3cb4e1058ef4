package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/model"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/repository"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/scheduler"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/service"
	"github.com/rsaini/MF-Nav-Tracker-Backend/internal/testutil"
)

// mockFeedClient returns canned feed text instead of hitting the AMFI site.
type mockFeedClient struct {
	rawText string
	err     error
	calls   int
}

func (m *mockFeedClient) DownloadNavFeed(_ context.Context, _, _ string) (string, error) {
	m.calls++
	return m.rawText, m.err
}

func todayFeed() string {
	date := time.Now().UTC().Format("02-Jan-2006")
	return `Test Mutual Fund

119551;INF209KA12Z1;-;Test Liquid Fund - Growth;104.2517;` + date + "\n"
}

func feedConfigFixture() model.FeedConfig {
	return model.FeedConfig{
		FeedURL:  "https://www.amfiindia.com/spages/NAVAll.txt",
		Timezone: "UTC",
		Schedule: "0 21 * * *",
	}
}

// TestScheduler_RunOnce tests one scheduled download+import cycle.
//
// WHY: The skip conditions (publication-free weekdays, already-imported days,
// missing configuration) decide whether the pipeline runs at all; a wrong
// skip silently stops daily ingestion.
func TestScheduler_RunOnce(t *testing.T) {
	t.Run("downloads imports and marks the run", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		importSvc := testutil.NewTestImportService(t, db)
		feedCfgSvc, err := service.NewFeedConfigService(repository.NewFeedConfigRepository(db), "")
		if err != nil {
			t.Fatalf("NewFeedConfigService() failed: %v", err)
		}
		client := &mockFeedClient{rawText: todayFeed()}

		sched, err := scheduler.New(importSvc, feedCfgSvc, repository.NewNavRepository(db), client, "UTC", nil)
		if err != nil {
			t.Fatalf("scheduler.New() failed: %v", err)
		}

		if err := feedCfgSvc.SaveFeedConfig(context.Background(), feedConfigFixture()); err != nil {
			t.Fatalf("SaveFeedConfig() failed: %v", err)
		}

		// Execute
		if err := sched.RunOnce(context.Background()); err != nil {
			t.Fatalf("RunOnce() returned unexpected error: %v", err)
		}

		// Assert
		if client.calls != 1 {
			t.Errorf("Feed client calls = %d, want 1", client.calls)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM nav_record`).Scan(&count); err != nil {
			t.Fatalf("Count query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 imported record, got %d", count)
		}

		cfg, err := feedCfgSvc.GetFeedConfig()
		if err != nil {
			t.Fatalf("GetFeedConfig() failed: %v", err)
		}
		if cfg.LastImportDate == nil {
			t.Error("LastImportDate should be set after a successful run")
		}
	})

	t.Run("skips publication-free weekdays", func(t *testing.T) {
		// Setup: today's weekday is in the skip list
		db := testutil.SetupTestDB(t)
		importSvc := testutil.NewTestImportService(t, db)
		feedCfgSvc, err := service.NewFeedConfigService(repository.NewFeedConfigRepository(db), "")
		if err != nil {
			t.Fatalf("NewFeedConfigService() failed: %v", err)
		}
		client := &mockFeedClient{rawText: todayFeed()}

		today := time.Now().UTC().Weekday()
		sched, err := scheduler.New(importSvc, feedCfgSvc, repository.NewNavRepository(db), client, "UTC", []time.Weekday{today})
		if err != nil {
			t.Fatalf("scheduler.New() failed: %v", err)
		}

		if err := feedCfgSvc.SaveFeedConfig(context.Background(), feedConfigFixture()); err != nil {
			t.Fatalf("SaveFeedConfig() failed: %v", err)
		}

		// Execute
		if err := sched.RunOnce(context.Background()); err != nil {
			t.Fatalf("RunOnce() returned unexpected error: %v", err)
		}

		// Assert
		if client.calls != 0 {
			t.Errorf("Feed client should not be called on a skipped weekday, got %d calls", client.calls)
		}
	})

	t.Run("skips days whose records are already stored", func(t *testing.T) {
		// Setup: one record already exists for today
		db := testutil.SetupTestDB(t)
		importSvc := testutil.NewTestImportService(t, db)
		feedCfgSvc, err := service.NewFeedConfigService(repository.NewFeedConfigRepository(db), "")
		if err != nil {
			t.Fatalf("NewFeedConfigService() failed: %v", err)
		}
		client := &mockFeedClient{rawText: todayFeed()}

		sched, err := scheduler.New(importSvc, feedCfgSvc, repository.NewNavRepository(db), client, "UTC", nil)
		if err != nil {
			t.Fatalf("scheduler.New() failed: %v", err)
		}

		if err := feedCfgSvc.SaveFeedConfig(context.Background(), feedConfigFixture()); err != nil {
			t.Fatalf("SaveFeedConfig() failed: %v", err)
		}

		fund := testutil.NewFund().WithID("TEST_MF").Build(t, db)
		scheme := testutil.NewScheme(fund.ID).Build(t, db)
		testutil.NewNavRecord(fund, scheme).WithDate(time.Now().UTC()).Build(t, db)

		// Execute
		if err := sched.RunOnce(context.Background()); err != nil {
			t.Fatalf("RunOnce() returned unexpected error: %v", err)
		}

		// Assert
		if client.calls != 0 {
			t.Errorf("Feed client should not be called when today is already imported, got %d calls", client.calls)
		}
	})

	t.Run("missing feed configuration is a silent skip", func(t *testing.T) {
		// Setup: no feed_config row
		db := testutil.SetupTestDB(t)
		importSvc := testutil.NewTestImportService(t, db)
		feedCfgSvc, err := service.NewFeedConfigService(repository.NewFeedConfigRepository(db), "")
		if err != nil {
			t.Fatalf("NewFeedConfigService() failed: %v", err)
		}
		client := &mockFeedClient{rawText: todayFeed()}

		sched, err := scheduler.New(importSvc, feedCfgSvc, repository.NewNavRepository(db), client, "UTC", nil)
		if err != nil {
			t.Fatalf("scheduler.New() failed: %v", err)
		}

		// Execute
		if err := sched.RunOnce(context.Background()); err != nil {
			t.Fatalf("RunOnce() returned unexpected error: %v", err)
		}

		// Assert
		if client.calls != 0 {
			t.Errorf("Feed client should not be called without configuration, got %d calls", client.calls)
		}
	})

	t.Run("rejects unknown time zones", func(t *testing.T) {
		_, err := scheduler.New(nil, nil, nil, nil, "Not/AZone", nil)
		if err == nil {
			t.Error("Expected error for an unknown time zone")
		}
	})
}
