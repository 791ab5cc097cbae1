package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/trade"
)

type ProposeTradeRequest struct {
	ProposerID     string   `json:"proposer_id" validate:"required,uuid4"`
	CounterpartyID string   `json:"counterparty_id" validate:"required,uuid4"`
	Offered        []string `json:"offered" validate:"max=20,dive,uuid4"`
	Requested      []string `json:"requested" validate:"max=20,dive,uuid4"`
}

// HandleProposeTrade creates a pending trade between two users
func HandleProposeTrade(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ProposeTradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Propose trade"); err != nil {
			return
		}

		t, err := svc.ProposeTrade(r.Context(), req.ProposerID, req.CounterpartyID, req.Offered, req.Requested)
		if err != nil {
			respondServiceError(w, r, "Propose trade", err)
			return
		}

		log.Info("Trade proposed",
			"trade_id", t.ID,
			"proposer_id", req.ProposerID,
			"counterparty_id", req.CounterpartyID)

		respondJSON(w, http.StatusCreated, DataResponse{Data: t})
	}
}

type ResolveTradeRequest struct {
	CallerID string `json:"caller_id" validate:"required,uuid4"`
}

// resolveTradeHandler wraps the accept/reject/cancel resolution endpoints,
// which share their request shape and differ only in the service call.
func resolveTradeHandler(opName string, resolve func(r *http.Request, tradeID, callerID string) (*domain.Trade, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeID := chi.URLParam(r, "tradeID")

		var req ResolveTradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}

		t, err := resolve(r, tradeID, req.CallerID)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}

		logger.FromContext(r.Context()).Info(opName+" completed",
			"trade_id", t.ID,
			"status", t.Status)

		respondJSON(w, http.StatusOK, DataResponse{Data: t})
	}
}

// HandleAcceptTrade executes a pending trade, swapping both sides atomically
func HandleAcceptTrade(svc trade.Service) http.HandlerFunc {
	return resolveTradeHandler("Accept trade", func(r *http.Request, tradeID, callerID string) (*domain.Trade, error) {
		return svc.AcceptTrade(r.Context(), tradeID, callerID)
	})
}

// HandleRejectTrade rejects a pending trade
func HandleRejectTrade(svc trade.Service) http.HandlerFunc {
	return resolveTradeHandler("Reject trade", func(r *http.Request, tradeID, callerID string) (*domain.Trade, error) {
		return svc.RejectTrade(r.Context(), tradeID, callerID)
	})
}

// HandleCancelTrade cancels a pending trade the caller proposed
func HandleCancelTrade(svc trade.Service) http.HandlerFunc {
	return resolveTradeHandler("Cancel trade", func(r *http.Request, tradeID, callerID string) (*domain.Trade, error) {
		return svc.CancelTrade(r.Context(), tradeID, callerID)
	})
}

// HandleGetTrade returns a single trade by ID
func HandleGetTrade(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeID := chi.URLParam(r, "tradeID")

		t, err := svc.GetTrade(r.Context(), tradeID)
		if err != nil {
			respondServiceError(w, r, "Get trade", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: t})
	}
}

// HandleListTrades lists a user's trades, optionally filtered by status
func HandleListTrades(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		status := domain.TradeStatus(GetOptionalQueryParam(r, "status", ""))
		if status != "" && !status.IsValid() {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidTradeStatus)
			return
		}

		trades, err := svc.ListTrades(r.Context(), userID, status)
		if err != nil {
			respondServiceError(w, r, "List trades", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: trades})
	}
}
