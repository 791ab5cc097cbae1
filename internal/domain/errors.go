package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound        = "user not found"
	ErrMsgInsufficientTickets = "insufficient tickets"

	// Catalog errors
	ErrMsgItemNotFound          = "item not found"
	ErrMsgBoxNotFound           = "box not found"
	ErrMsgEmptyPool             = "box has no items"
	ErrMsgNoDropWeight          = "box has no drop weight configured"
	ErrMsgInvalidPool           = "invalid sample pool"

	// Inventory errors
	ErrMsgEntryNotFound     = "inventory entry not found"
	ErrMsgEntryNotOwned     = "entry not owned by expected user"
	ErrMsgOwnershipMismatch = "ownership mismatch"

	// Trade errors
	ErrMsgTradeNotFound         = "trade not found"
	ErrMsgTradeAlreadyProcessed = "trade already processed"
	ErrMsgNotTradeCounterparty  = "caller is not the trade counterparty"
	ErrMsgNotTradeProposer      = "caller is not the trade proposer"

	// Mission errors
	ErrMsgProgressNotFound   = "mission progress not found"
	ErrMsgMissionNotFound    = "mission not found"
	ErrMsgNotStreakMission   = "mission is not a daily streak"
	ErrMsgNotRegularMission  = "mission is not a regular mission"
	ErrMsgDayOutOfRange      = "day out of range"
	ErrMsgDayAlreadyClaimed  = "day already claimed"
	ErrMsgDayNotYetEligible  = "day not yet eligible"
	ErrMsgTooEarly           = "too early for next claim"
	ErrMsgAlreadyClaimedToday = "already claimed today"
	ErrMsgNotCompleted       = "mission not completed"
	ErrMsgAlreadyClaimed     = "reward already claimed"

	// Transaction errors
	ErrMsgTransactionConflict = "transaction conflict"
	ErrMsgOperationTimedOut   = "operation timed out"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrInsufficientTickets = errors.New(ErrMsgInsufficientTickets)

	// Catalog errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrBoxNotFound  = errors.New(ErrMsgBoxNotFound)
	ErrEmptyPool    = errors.New(ErrMsgEmptyPool)
	ErrNoDropWeight = errors.New(ErrMsgNoDropWeight)
	ErrInvalidPool  = errors.New(ErrMsgInvalidPool)

	// Inventory errors
	ErrEntryNotFound     = errors.New(ErrMsgEntryNotFound)
	ErrEntryNotOwned     = errors.New(ErrMsgEntryNotOwned)
	ErrOwnershipMismatch = errors.New(ErrMsgOwnershipMismatch)

	// Trade errors
	ErrTradeNotFound         = errors.New(ErrMsgTradeNotFound)
	ErrTradeAlreadyProcessed = errors.New(ErrMsgTradeAlreadyProcessed)
	ErrNotTradeCounterparty  = errors.New(ErrMsgNotTradeCounterparty)
	ErrNotTradeProposer      = errors.New(ErrMsgNotTradeProposer)

	// Mission errors
	ErrProgressNotFound   = errors.New(ErrMsgProgressNotFound)
	ErrMissionNotFound    = errors.New(ErrMsgMissionNotFound)
	ErrNotStreakMission   = errors.New(ErrMsgNotStreakMission)
	ErrNotRegularMission  = errors.New(ErrMsgNotRegularMission)
	ErrDayOutOfRange      = errors.New(ErrMsgDayOutOfRange)
	ErrDayAlreadyClaimed  = errors.New(ErrMsgDayAlreadyClaimed)
	ErrDayNotYetEligible  = errors.New(ErrMsgDayNotYetEligible)
	ErrTooEarly           = errors.New(ErrMsgTooEarly)
	ErrAlreadyClaimedToday = errors.New(ErrMsgAlreadyClaimedToday)
	ErrNotCompleted       = errors.New(ErrMsgNotCompleted)
	ErrAlreadyClaimed     = errors.New(ErrMsgAlreadyClaimed)

	// Transaction errors
	ErrTransactionConflict = errors.New(ErrMsgTransactionConflict)
	ErrOperationTimedOut   = errors.New(ErrMsgOperationTimedOut)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
