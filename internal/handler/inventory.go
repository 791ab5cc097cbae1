package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lootvault/lootvault/internal/economy"
	"github.com/lootvault/lootvault/internal/inventory"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
)

type DrawRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	BoxID  int    `json:"box_id" validate:"required,min=1"`
	Count  int    `json:"count" validate:"min=1,max=100"`
}

// HandleDraw opens a box for a user and applies the drawn items to their
// inventory in a single atomic batch. The box cost is debited up front
// and refunded if the draw itself fails.
func HandleDraw(svc inventory.Service, econ economy.Service, itemRepo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DrawRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Draw"); err != nil {
			return
		}

		box, err := itemRepo.GetBox(r.Context(), req.BoxID)
		if err != nil {
			respondServiceError(w, r, "Draw", err)
			return
		}

		cost := box.TicketCost * req.Count
		if cost > 0 {
			if _, err := econ.DebitTickets(r.Context(), req.UserID, cost); err != nil {
				respondServiceError(w, r, "Draw", err)
				return
			}
		}

		result, err := svc.DrawBatch(r.Context(), req.UserID, req.BoxID, req.Count)
		if err != nil {
			if cost > 0 {
				if _, rerr := econ.GrantTickets(r.Context(), req.UserID, cost); rerr != nil {
					log.Error("Draw refund failed", "user_id", req.UserID, "amount", cost, "error", rerr)
				}
			}
			respondServiceError(w, r, "Draw", err)
			return
		}

		log.Info("Draw completed",
			"user_id", req.UserID,
			"box_id", req.BoxID,
			"count", req.Count,
			"uniques", len(result.Uniques))

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleGetInventory returns a user's inventory joined with catalog data
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		entries, err := svc.GetInventory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// HandleGetEntry returns a single inventory entry with catalog data
func HandleGetEntry(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID := chi.URLParam(r, "entryID")

		entry, err := svc.GetEntry(r.Context(), entryID)
		if err != nil {
			respondServiceError(w, r, "Get entry", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entry})
	}
}

type SetShowcaseRequest struct {
	UserID   string   `json:"user_id" validate:"required,uuid4"`
	EntryIDs []string `json:"entry_ids" validate:"max=10,dive,uuid4"`
}

// HandleSetShowcase replaces a user's showcase with the given entries.
// Every entry must belong to the user.
func HandleSetShowcase(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetShowcaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set showcase"); err != nil {
			return
		}

		if err := svc.SetShowcase(r.Context(), req.UserID, req.EntryIDs); err != nil {
			respondServiceError(w, r, "Set showcase", err)
			return
		}

		log.Info("Showcase updated", "user_id", req.UserID, "entries", len(req.EntryIDs))

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShowcaseUpdatedSuccess})
	}
}

type AppraisalResponse struct {
	EntryID string `json:"entry_id"`
	Points  int    `json:"points"`
}

// HandleAppraiseEntry values a single inventory entry
func HandleAppraiseEntry(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID := chi.URLParam(r, "entryID")

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		points, err := svc.AppraiseEntry(r.Context(), userID, entryID)
		if err != nil {
			respondServiceError(w, r, "Appraise entry", err)
			return
		}

		respondJSON(w, http.StatusOK, AppraisalResponse{EntryID: entryID, Points: points})
	}
}
