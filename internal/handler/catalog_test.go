package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/testing/fakestore"
)

func TestHandleGetCatalog(t *testing.T) {
	store := fakestore.New()
	store.PutItem(&domain.Item{ID: 1, Name: "copper coin", Rarity: domain.RarityCommon, BoxID: 1, DropWeight: 80})
	store.PutItem(&domain.Item{ID: 2, Name: "dragon sigil", Rarity: domain.RarityLegendary, BoxID: 1, DropWeight: 5})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	HandleGetCatalog(store).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []CatalogItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Copper Coin", resp.Data[0].DisplayName)
	assert.Equal(t, "Dragon Sigil", resp.Data[1].DisplayName)
}

func TestHandleGetBox(t *testing.T) {
	store := fakestore.New()
	store.PutBox(&domain.Box{ID: 1, Name: "starter vault", TicketCost: 10, Active: true})
	store.PutItem(&domain.Item{ID: 1, Name: "copper coin", Rarity: domain.RarityCommon, BoxID: 1, DropWeight: 80})

	r := chi.NewRouter()
	r.Get("/catalog/boxes/{boxID}", HandleGetBox(store))

	t.Run("returns box with items", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/boxes/1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp CatalogBoxResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "starter vault", resp.Box.Name)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Copper Coin", resp.Items[0].DisplayName)
	})

	t.Run("unknown box", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/boxes/99", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric box id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/boxes/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
