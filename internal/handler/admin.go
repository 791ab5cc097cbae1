package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/inventory"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/repository"
	"github.com/lootvault/lootvault/internal/trade"
)

type AdminItemRequest struct {
	Name       string  `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Rarity     string  `json:"rarity" validate:"required,rarity"`
	BoxID      int     `json:"box_id" validate:"required,min=1"`
	BasePoints int     `json:"base_points" validate:"min=0"`
	DropWeight float64 `json:"drop_weight" validate:"min=0"`
	Power      int     `json:"power" validate:"min=0"`
}

// HandleAdminCreateItem adds a catalog item
func HandleAdminCreateItem(itemRepo repository.Item, invSvc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AdminItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
			return
		}

		item, err := itemRepo.CreateItem(r.Context(), &domain.Item{
			Name:       req.Name,
			Rarity:     domain.Rarity(req.Rarity),
			BoxID:      req.BoxID,
			BasePoints: req.BasePoints,
			DropWeight: req.DropWeight,
			Power:      req.Power,
		})
		if err != nil {
			respondServiceError(w, r, "Create item", err)
			return
		}

		invSvc.InvalidateCatalog(item.BoxID, item.ID)
		log.Info("Catalog item created", "item_id", item.ID, "name", item.Name)

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgItemCreatedSuccess, Data: item})
	}
}

// HandleAdminUpdateItem updates a catalog item
func HandleAdminUpdateItem(itemRepo repository.Item, invSvc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetIntURLParam(r, w, "itemID", ErrMsgInvalidItemID)
		if !ok {
			return
		}

		var req AdminItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
			return
		}

		item, err := itemRepo.UpdateItem(r.Context(), &domain.Item{
			ID:         itemID,
			Name:       req.Name,
			Rarity:     domain.Rarity(req.Rarity),
			BoxID:      req.BoxID,
			BasePoints: req.BasePoints,
			DropWeight: req.DropWeight,
			Power:      req.Power,
		})
		if err != nil {
			respondServiceError(w, r, "Update item", err)
			return
		}

		invSvc.InvalidateCatalog(item.BoxID, item.ID)
		log.Info("Catalog item updated", "item_id", item.ID, "name", item.Name)

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgItemUpdatedSuccess, Data: item})
	}
}

// HandleAdminDeleteItem removes a catalog item
func HandleAdminDeleteItem(itemRepo repository.Item, invSvc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetIntURLParam(r, w, "itemID", ErrMsgInvalidItemID)
		if !ok {
			return
		}

		// Look up the owning box before the row disappears so its
		// cached pool can be dropped too.
		boxID := 0
		if item, err := itemRepo.GetItem(r.Context(), itemID); err == nil {
			boxID = item.BoxID
		}

		if err := itemRepo.DeleteItem(r.Context(), itemID); err != nil {
			respondServiceError(w, r, "Delete item", err)
			return
		}

		invSvc.InvalidateCatalog(boxID, itemID)
		log.Info("Catalog item deleted", "item_id", itemID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemDeletedSuccess})
	}
}

// HandleAdminExpireTrades runs a trade expiry sweep on demand instead of
// waiting for the background worker.
func HandleAdminExpireTrades(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		cutoff := time.Now().Add(-domain.TradeExpiry)
		count, err := svc.ExpirePending(r.Context(), cutoff)
		if err != nil {
			respondServiceError(w, r, "Expire trades", err)
			return
		}

		log.Info("Manual trade expiry sweep", "cancelled", count)

		respondJSON(w, http.StatusOK, SuccessResponse{
			Message: fmt.Sprintf(MsgTradesExpiredFormat, count),
		})
	}
}
