package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
	"github.com/lootvault/lootvault/internal/validation"
)

// Sentinel errors for catalog loader
var (
	ErrDuplicateBoxName  = errors.New("duplicate box name")
	ErrDuplicateItemName = errors.New("duplicate item name")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// Schema paths
const (
	CatalogSchemaPath = "configs/schemas/catalog.schema.json"
)

// Config represents the JSON configuration for the item catalog
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Boxes []BoxDef `json:"boxes"`
}

// BoxDef represents a single box definition with its drawable pool
type BoxDef struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TicketCost  int       `json:"ticket_cost"`
	Active      bool      `json:"active"`
	Items       []ItemDef `json:"items"`
}

// ItemDef represents a single item definition in the JSON
type ItemDef struct {
	Name       string  `json:"name"`
	Rarity     string  `json:"rarity"`
	BasePoints int     `json:"base_points"`
	DropWeight float64 `json:"drop_weight"`
	Power      int     `json:"power,omitempty"`
}

// Loader handles loading and validating the catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Item) (*SyncResult, error)
}

// SyncResult contains the result of syncing the catalog to the database
type SyncResult struct {
	BoxesInserted int
	BoxesUpdated  int
	ItemsInserted int
	ItemsUpdated  int
	ItemsSkipped  int
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	// Validate against schema first
	if err := l.schemaValidator.ValidateBytes(data, CatalogSchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Boxes) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoBoxesDefined)
	}

	boxNames := make(map[string]bool, len(config.Boxes))

	for i := range config.Boxes {
		box := &config.Boxes[i]

		if err := l.validateBoxDef(i, box, boxNames); err != nil {
			return err
		}
	}

	return nil
}

func (l *catalogLoader) validateBoxDef(index int, box *BoxDef, boxNames map[string]bool) error {
	if box.Name == "" {
		return fmt.Errorf(ErrFmtBoxAtIndexEmpty, ErrInvalidConfig, index)
	}

	if boxNames[box.Name] {
		return fmt.Errorf("%w: '%s'", ErrDuplicateBoxName, box.Name)
	}
	boxNames[box.Name] = true

	if box.TicketCost < 0 {
		return fmt.Errorf(ErrFmtBoxNegativeCost, ErrInvalidConfig, box.Name)
	}
	if len(box.Items) == 0 {
		return fmt.Errorf(ErrFmtBoxNoItems, ErrInvalidConfig, box.Name)
	}

	itemNames := make(map[string]bool, len(box.Items))
	for i := range box.Items {
		item := &box.Items[i]

		if item.Name == "" {
			return fmt.Errorf(ErrFmtItemEmptyName, ErrInvalidConfig, box.Name, i)
		}
		if itemNames[item.Name] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateItemName, item.Name)
		}
		itemNames[item.Name] = true

		if !domain.Rarity(item.Rarity).IsValid() {
			return fmt.Errorf(ErrFmtItemBadRarity, ErrInvalidConfig, item.Name, item.Rarity)
		}
		if item.DropWeight <= 0 {
			return fmt.Errorf(ErrFmtItemNonPositiveDrop, ErrInvalidConfig, item.Name)
		}
		if item.BasePoints < 0 {
			return fmt.Errorf(ErrFmtItemNegativePoints, ErrInvalidConfig, item.Name)
		}
		if item.Power < 0 {
			return fmt.Errorf(ErrFmtItemNegativePower, ErrInvalidConfig, item.Name)
		}
	}

	return nil
}

// SyncToDatabase syncs the catalog configuration to the database idempotently.
// Boxes match on name, items on name within their box. Existing rows not in
// the config are left untouched so admin edits survive a sync.
func (l *catalogLoader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Item) (*SyncResult, error) {
	log := logger.FromContext(ctx)

	existingBoxes, err := repo.ListBoxes(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListBoxesFailed, err)
	}

	boxesByName := make(map[string]*domain.Box, len(existingBoxes))
	for i := range existingBoxes {
		boxesByName[existingBoxes[i].Name] = &existingBoxes[i]
	}

	result := &SyncResult{}
	for _, boxDef := range config.Boxes {
		boxID, err := l.syncBox(ctx, repo, boxDef, boxesByName, result)
		if err != nil {
			return nil, err
		}

		if err := l.syncBoxItems(ctx, repo, boxID, boxDef, result); err != nil {
			return nil, err
		}
	}

	log.Info(LogMsgSyncCompleted,
		"boxes_inserted", result.BoxesInserted,
		"boxes_updated", result.BoxesUpdated,
		"items_inserted", result.ItemsInserted,
		"items_updated", result.ItemsUpdated,
		"items_skipped", result.ItemsSkipped)

	return result, nil
}

func (l *catalogLoader) syncBox(ctx context.Context, repo repository.Item, boxDef BoxDef, boxesByName map[string]*domain.Box, result *SyncResult) (int, error) {
	log := logger.FromContext(ctx)

	if existing, ok := boxesByName[boxDef.Name]; ok {
		needsUpdate := existing.Description != boxDef.Description ||
			existing.TicketCost != boxDef.TicketCost ||
			existing.Active != boxDef.Active

		if !needsUpdate {
			return existing.ID, nil
		}

		updated, err := repo.UpdateBox(ctx, &domain.Box{
			ID:          existing.ID,
			Name:        boxDef.Name,
			Description: boxDef.Description,
			TicketCost:  boxDef.TicketCost,
			Active:      boxDef.Active,
		})
		if err != nil {
			return 0, fmt.Errorf(ErrMsgUpdateBoxFailed, boxDef.Name, err)
		}
		result.BoxesUpdated++
		log.Info(LogMsgUpdatedBox, "name", boxDef.Name, "id", updated.ID)
		return updated.ID, nil
	}

	created, err := repo.CreateBox(ctx, &domain.Box{
		Name:        boxDef.Name,
		Description: boxDef.Description,
		TicketCost:  boxDef.TicketCost,
		Active:      boxDef.Active,
	})
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreateBoxFailed, boxDef.Name, err)
	}
	result.BoxesInserted++
	log.Info(LogMsgCreatedBox, "name", boxDef.Name, "id", created.ID)
	return created.ID, nil
}

func (l *catalogLoader) syncBoxItems(ctx context.Context, repo repository.Item, boxID int, boxDef BoxDef, result *SyncResult) error {
	log := logger.FromContext(ctx)

	existingItems, err := repo.ListBoxItems(ctx, boxID)
	if err != nil {
		return fmt.Errorf(ErrMsgListItemsFailed, boxDef.Name, err)
	}

	itemsByName := make(map[string]*domain.Item, len(existingItems))
	for i := range existingItems {
		itemsByName[existingItems[i].Name] = &existingItems[i]
	}

	for _, itemDef := range boxDef.Items {
		if existing, ok := itemsByName[itemDef.Name]; ok {
			needsUpdate := string(existing.Rarity) != itemDef.Rarity ||
				existing.BasePoints != itemDef.BasePoints ||
				existing.DropWeight != itemDef.DropWeight ||
				existing.Power != itemDef.Power

			if !needsUpdate {
				result.ItemsSkipped++
				continue
			}

			if _, err := repo.UpdateItem(ctx, &domain.Item{
				ID:         existing.ID,
				Name:       itemDef.Name,
				Rarity:     domain.Rarity(itemDef.Rarity),
				BoxID:      boxID,
				BasePoints: itemDef.BasePoints,
				DropWeight: itemDef.DropWeight,
				Power:      itemDef.Power,
			}); err != nil {
				return fmt.Errorf(ErrMsgUpdateItemFailed, itemDef.Name, err)
			}
			result.ItemsUpdated++
			log.Info(LogMsgUpdatedItem, "name", itemDef.Name, "box", boxDef.Name)
			continue
		}

		created, err := repo.CreateItem(ctx, &domain.Item{
			Name:       itemDef.Name,
			Rarity:     domain.Rarity(itemDef.Rarity),
			BoxID:      boxID,
			BasePoints: itemDef.BasePoints,
			DropWeight: itemDef.DropWeight,
			Power:      itemDef.Power,
		})
		if err != nil {
			return fmt.Errorf(ErrMsgCreateItemFailed, itemDef.Name, err)
		}
		result.ItemsInserted++
		log.Info(LogMsgCreatedItem, "name", itemDef.Name, "box", boxDef.Name, "id", created.ID)
	}

	return nil
}
