package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/familyvault/internal/app"
	categoryUseCase "github.com/allisson/familyvault/internal/category/usecase"
)

// RunSeedCategories inserts the system category set into the database.
// Categories that already exist (matched by name) are skipped, so the command
// is safe to run repeatedly.
//
// Requirements: database must be migrated and accessible.
func RunSeedCategories(
	ctx context.Context,
	seeder app.CategorySeeder,
	logger *slog.Logger,
	writer io.Writer,
) error {
	categories := categoryUseCase.SystemCategories()

	logger.Info("seeding system categories", slog.Int("total", len(categories)))

	inserted, err := seeder.SeedSystemCategories(ctx, categories)
	if err != nil {
		return fmt.Errorf("failed to seed system categories: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Seeded %d of %d system categories (%d already present)\n",
		inserted, len(categories), len(categories)-inserted)

	logger.Info("system categories seeded",
		slog.Int("inserted", inserted),
		slog.Int("skipped", len(categories)-inserted),
	)

	return nil
}
