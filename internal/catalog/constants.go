package catalog

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog config file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog config: %w"
)

// Validation error messages (fragments used with error wrapping)
const (
	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoBoxesDefined = "no boxes defined"
)

// Database operation error messages
const (
	ErrMsgListBoxesFailed  = "failed to list existing boxes: %w"
	ErrMsgCreateBoxFailed  = "failed to create box '%s': %w"
	ErrMsgUpdateBoxFailed  = "failed to update box '%s': %w"
	ErrMsgListItemsFailed  = "failed to list items for box '%s': %w"
	ErrMsgCreateItemFailed = "failed to create item '%s': %w"
	ErrMsgUpdateItemFailed = "failed to update item '%s': %w"
)

// ==================== Log Messages ====================

// Sync operation log messages
const (
	LogMsgSyncCompleted = "Catalog sync completed"
	LogMsgCreatedBox    = "Created box"
	LogMsgUpdatedBox    = "Updated box"
	LogMsgCreatedItem   = "Created item"
	LogMsgUpdatedItem   = "Updated item"
)

// ==================== Format Strings for Error Construction ====================

const (
	ErrFmtBoxAtIndexEmpty     = "%w: box at index %d has empty name"
	ErrFmtBoxNegativeCost     = "%w: box '%s' has negative ticket_cost"
	ErrFmtBoxNoItems          = "%w: box '%s' has no items"
	ErrFmtItemEmptyName       = "%w: box '%s' item at index %d has empty name"
	ErrFmtItemBadRarity       = "%w: item '%s' has unknown rarity '%s'"
	ErrFmtItemNonPositiveDrop = "%w: item '%s' has non-positive drop_weight"
	ErrFmtItemNegativePoints  = "%w: item '%s' has negative base_points"
	ErrFmtItemNegativePower   = "%w: item '%s' has negative power"
)
