package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Draw operation error messages
	ErrMsgDrawFailed = "Failed to draw from box"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgSetShowcaseFailed  = "Failed to update showcase"
	ErrMsgAppraiseFailed     = "Failed to appraise entry"

	// Trade operation error messages
	ErrMsgProposeTradeFailed = "Failed to propose trade"
	ErrMsgListTradesFailed   = "Failed to list trades"
	ErrMsgInvalidTradeStatus = "Invalid trade status filter"

	// Mission operation error messages
	ErrMsgListMissionsFailed = "Failed to list missions"
	ErrMsgListProgressFailed = "Failed to list mission progress"
	ErrMsgInvalidMissionID   = "Invalid mission ID"

	// Economy operation error messages
	ErrMsgGetBalanceFailed = "Failed to get balance"

	// Catalog error messages
	ErrMsgGetCatalogFailed = "Failed to get catalog"
	ErrMsgInvalidItemID    = "Invalid item ID"
	ErrMsgInvalidBoxID     = "Invalid box ID"

	// User management error messages
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgUsernameRequired   = "Username is required"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgShowcaseUpdatedSuccess = "Showcase updated successfully"
	MsgItemCreatedSuccess     = "Item created successfully"
	MsgItemUpdatedSuccess     = "Item updated successfully"
	MsgItemDeletedSuccess     = "Item deleted successfully"
	MsgTradesExpiredFormat    = "Expired %d pending trades"
)
