// Command seed fills an empty database with sample issues for local
// development. It refuses to touch a database that already has rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sumire/issuetrack/internal/config"
	"github.com/sumire/issuetrack/internal/domain"
	"github.com/sumire/issuetrack/internal/repository"
)

var sampleTitles = []string{
	"Login page error",
	"Payment gateway timeout",
	"Profile image upload fails",
	"Search returns duplicates",
	"CSV export misaligned",
	"Dark mode contrast",
	"Session expired early",
	"Webhook signature invalid",
	"Mobile layout overflow",
	"Rate limiter too strict",
}

var sampleDescriptions = []string{
	"Steps: open page, click button, observe error.",
	"Happens under moderate load; retry succeeds.",
	"Possibly related to file size or type filter.",
	"Happens with certain keywords only.",
	"Observed on Firefox; Chrome OK.",
	"Customer reported in support ticket.",
	"Non-deterministic; appears once per 20 tries.",
}

var sampleStatuses = []domain.Status{
	domain.StatusOpen,
	domain.StatusInProgress,
	domain.StatusDone,
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	count := flag.Int("count", 150, "number of sample issues to insert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := repository.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := repository.NewIssueRepository(db)
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	_, existing, err := repo.List(ctx, 1, 1, "")
	if err != nil {
		return fmt.Errorf("check existing issues: %w", err)
	}
	if existing > 0 {
		slog.Info("database already has issues, skipping seed", "count", existing)
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	issues := make([]domain.Issue, 0, *count)
	for i := 1; i <= *count; i++ {
		// Spread creation times over the last 14 days.
		created := now.Add(-time.Duration(rng.Int63n(int64(14 * 24 * time.Hour))))
		ts := domain.Timestamp(created.Truncate(time.Second))
		issues = append(issues, domain.Issue{
			Title:       fmt.Sprintf("%s #%d", sampleTitles[rng.Intn(len(sampleTitles))], i),
			Description: sampleDescriptions[rng.Intn(len(sampleDescriptions))],
			Status:      sampleStatuses[rng.Intn(len(sampleStatuses))],
			Priority:    domain.Priority(1 + i%3),
			CreatedAt:   ts,
			UpdatedAt:   ts,
		})
	}

	if err := repo.BulkInsert(ctx, issues); err != nil {
		return fmt.Errorf("insert sample issues: %w", err)
	}

	slog.Info("seeded issues", "count", *count)
	return nil
}
