package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidRequestError  = "Invalid request. Please check your inputs."
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."
	ErrMsgConflictError        = "The vault is busy. Please try again."
	ErrMsgTimeoutError         = "The operation timed out. Please try again."

	// User and economy messages
	ErrMsgUserNotFoundError        = "User not found"
	ErrMsgInsufficientTicketsError = "Not enough tickets"

	// Catalog messages
	ErrMsgItemNotFoundError = "Item not found"
	ErrMsgBoxNotFoundError  = "Box not found"
	ErrMsgEmptyPoolError    = "That box has nothing in it"
	ErrMsgNoDropWeightError = "That box cannot be drawn from right now"

	// Inventory messages
	ErrMsgEntryNotFoundError = "Inventory entry not found"
	ErrMsgEntryNotOwnedError = "You don't own that entry"

	// Trade messages
	ErrMsgTradeNotFoundError         = "Trade not found"
	ErrMsgTradeAlreadyProcessedError = "That trade has already been resolved"
	ErrMsgNotTradeCounterpartyError  = "Only the trade recipient can do that"
	ErrMsgNotTradeProposerError      = "Only the trade proposer can do that"

	// Mission messages
	ErrMsgMissionNotFoundError   = "Mission not found"
	ErrMsgProgressNotFoundError  = "Mission progress not found"
	ErrMsgNotStreakMissionError  = "That mission is not a daily streak"
	ErrMsgNotRegularMissionError = "That mission does not have a one-time reward"
	ErrMsgTooEarlyError          = "Come back tomorrow for the next day"
	ErrMsgAlreadyClaimedTodayErr = "Already claimed today. Come back tomorrow"
	ErrMsgDayOutOfRangeError     = "That day is not part of this mission"
	ErrMsgDayAlreadyClaimedErr   = "That day is already claimed"
	ErrMsgDayNotYetEligibleError = "Days must be claimed in order"
	ErrMsgNotCompletedError      = "Mission is not completed yet"
	ErrMsgAlreadyClaimedError    = "Reward already claimed"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrInsufficientTickets):
		return http.StatusBadRequest, ErrMsgInsufficientTicketsError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrBoxNotFound):
		return http.StatusNotFound, ErrMsgBoxNotFoundError
	case errors.Is(err, domain.ErrEmptyPool):
		return http.StatusBadRequest, ErrMsgEmptyPoolError
	case errors.Is(err, domain.ErrNoDropWeight):
		return http.StatusBadRequest, ErrMsgNoDropWeightError
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, ErrMsgEntryNotFoundError
	case errors.Is(err, domain.ErrEntryNotOwned), errors.Is(err, domain.ErrOwnershipMismatch):
		return http.StatusConflict, ErrMsgEntryNotOwnedError
	case errors.Is(err, domain.ErrTradeNotFound):
		return http.StatusNotFound, ErrMsgTradeNotFoundError
	case errors.Is(err, domain.ErrTradeAlreadyProcessed):
		return http.StatusConflict, ErrMsgTradeAlreadyProcessedError
	case errors.Is(err, domain.ErrNotTradeCounterparty):
		return http.StatusForbidden, ErrMsgNotTradeCounterpartyError
	case errors.Is(err, domain.ErrNotTradeProposer):
		return http.StatusForbidden, ErrMsgNotTradeProposerError
	case errors.Is(err, domain.ErrMissionNotFound):
		return http.StatusNotFound, ErrMsgMissionNotFoundError
	case errors.Is(err, domain.ErrProgressNotFound):
		return http.StatusNotFound, ErrMsgProgressNotFoundError
	case errors.Is(err, domain.ErrNotStreakMission):
		return http.StatusBadRequest, ErrMsgNotStreakMissionError
	case errors.Is(err, domain.ErrNotRegularMission):
		return http.StatusBadRequest, ErrMsgNotRegularMissionError
	case errors.Is(err, domain.ErrTooEarly):
		return http.StatusConflict, ErrMsgTooEarlyError
	case errors.Is(err, domain.ErrAlreadyClaimedToday):
		return http.StatusConflict, ErrMsgAlreadyClaimedTodayErr
	case errors.Is(err, domain.ErrDayOutOfRange):
		return http.StatusBadRequest, ErrMsgDayOutOfRangeError
	case errors.Is(err, domain.ErrDayAlreadyClaimed):
		return http.StatusConflict, ErrMsgDayAlreadyClaimedErr
	case errors.Is(err, domain.ErrDayNotYetEligible):
		return http.StatusConflict, ErrMsgDayNotYetEligibleError
	case errors.Is(err, domain.ErrNotCompleted):
		return http.StatusBadRequest, ErrMsgNotCompletedError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrTransactionConflict):
		return http.StatusConflict, ErrMsgConflictError
	case errors.Is(err, domain.ErrOperationTimedOut):
		return http.StatusGatewayTimeout, ErrMsgTimeoutError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
