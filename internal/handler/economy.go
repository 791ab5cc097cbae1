package handler

import (
	"net/http"

	"github.com/lootvault/lootvault/internal/economy"
	"github.com/lootvault/lootvault/internal/logger"
)

type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Tickets int    `json:"tickets"`
}

// HandleGetBalance returns a user's ticket balance
func HandleGetBalance(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		balance, err := svc.GetBalance(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{UserID: userID, Tickets: balance})
	}
}

type TicketsRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// HandleGrantTickets credits tickets to a user (admin/system action)
func HandleGrantTickets(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TicketsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant tickets"); err != nil {
			return
		}

		balance, err := svc.GrantTickets(r.Context(), req.UserID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Grant tickets", err)
			return
		}

		log.Info("Tickets granted", "user_id", req.UserID, "amount", req.Amount, "balance", balance)

		respondJSON(w, http.StatusOK, BalanceResponse{UserID: req.UserID, Tickets: balance})
	}
}

// HandleDebitTickets removes tickets from a user's balance
func HandleDebitTickets(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TicketsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Debit tickets"); err != nil {
			return
		}

		balance, err := svc.DebitTickets(r.Context(), req.UserID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "Debit tickets", err)
			return
		}

		log.Info("Tickets debited", "user_id", req.UserID, "amount", req.Amount, "balance", balance)

		respondJSON(w, http.StatusOK, BalanceResponse{UserID: req.UserID, Tickets: balance})
	}
}
