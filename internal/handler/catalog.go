package handler

import (
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/repository"
)

var titleCaser = cases.Title(language.English)

// CatalogItem is a catalog entry with a presentation-ready display name
type CatalogItem struct {
	domain.Item
	DisplayName string `json:"display_name"`
}

// CatalogBoxResponse is a box with its drawable item pool
type CatalogBoxResponse struct {
	Box   domain.Box    `json:"box"`
	Items []CatalogItem `json:"items"`
}

func toCatalogItems(items []domain.Item) []CatalogItem {
	out := make([]CatalogItem, 0, len(items))
	for _, it := range items {
		out = append(out, CatalogItem{
			Item:        it,
			DisplayName: titleCaser.String(it.Name),
		})
	}
	return out
}

// HandleGetCatalog lists the full item catalog
func HandleGetCatalog(itemRepo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := itemRepo.ListItems(r.Context())
		if err != nil {
			respondServiceError(w, r, "Get catalog", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: toCatalogItems(items)})
	}
}

// HandleGetBox returns a box and the items drawable from it
func HandleGetBox(itemRepo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boxID, ok := GetIntURLParam(r, w, "boxID", ErrMsgInvalidBoxID)
		if !ok {
			return
		}

		box, err := itemRepo.GetBox(r.Context(), boxID)
		if err != nil {
			respondServiceError(w, r, "Get box", err)
			return
		}

		items, err := itemRepo.ListBoxItems(r.Context(), boxID)
		if err != nil {
			respondServiceError(w, r, "Get box", err)
			return
		}

		respondJSON(w, http.StatusOK, CatalogBoxResponse{
			Box:   *box,
			Items: toCatalogItems(items),
		})
	}
}
