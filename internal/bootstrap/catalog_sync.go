package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lootvault/lootvault/internal/catalog"
	"github.com/lootvault/lootvault/internal/config"
	"github.com/lootvault/lootvault/internal/repository"
)

// SyncCatalog loads, validates, and syncs the box catalog configuration to
// the database. It handles the complete lifecycle: load JSON, validate,
// sync to DB, log results. The sync is idempotent and never removes rows
// created through the admin API.
func SyncCatalog(ctx context.Context, itemRepo repository.Item) error {
	slog.Info(LogMsgSyncingCatalog)
	loader := catalog.NewLoader()

	catalogConfig, err := loader.Load(config.ConfigPathCatalog)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := loader.Validate(catalogConfig); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	result, err := loader.SyncToDatabase(ctx, catalogConfig, itemRepo)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if result.BoxesInserted > 0 || result.BoxesUpdated > 0 ||
		result.ItemsInserted > 0 || result.ItemsUpdated > 0 {
		slog.Info(LogMsgCatalogSynced,
			"boxes_inserted", result.BoxesInserted,
			"boxes_updated", result.BoxesUpdated,
			"items_inserted", result.ItemsInserted,
			"items_updated", result.ItemsUpdated,
			"items_skipped", result.ItemsSkipped)
	} else {
		slog.Info(LogMsgCatalogNoChange)
	}

	return nil
}
