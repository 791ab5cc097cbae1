package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/testing/fakestore"
	"github.com/lootvault/lootvault/internal/trade"
)

type tradeFixture struct {
	store      *fakestore.Store
	svc        trade.Service
	router     chi.Router
	aliceID    string
	bobID      string
	aliceEntry string
	bobEntry   string
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()

	store := fakestore.New()
	store.PutItem(&domain.Item{ID: 1, Name: "copper coin", Rarity: domain.RarityCommon, BoxID: 1})
	store.PutItem(&domain.Item{ID: 2, Name: "dragon sigil", Rarity: domain.RarityLegendary, BoxID: 1})

	aliceID := uuid.NewString()
	bobID := uuid.NewString()
	store.PutUser(&domain.User{ID: aliceID, Username: "alice"})
	store.PutUser(&domain.User{ID: bobID, Username: "bob"})

	aliceEntry := store.PutEntry(&domain.InventoryEntry{
		UserID: aliceID, ItemID: 2, Kind: domain.EntryUnique, Quantity: 1, RarityLevel: 700,
	})
	bobEntry := store.PutEntry(&domain.InventoryEntry{
		UserID: bobID, ItemID: 1, Kind: domain.EntryStacked, Quantity: 4,
	})

	svc := trade.NewService(fakestore.NewCoordinator(store), store, store, store, nil)

	r := chi.NewRouter()
	r.Post("/trades", HandleProposeTrade(svc))
	r.Post("/trades/{tradeID}/accept", HandleAcceptTrade(svc))
	r.Post("/trades/{tradeID}/reject", HandleRejectTrade(svc))
	r.Post("/trades/{tradeID}/cancel", HandleCancelTrade(svc))
	r.Get("/trades/{tradeID}", HandleGetTrade(svc))
	r.Get("/trades", HandleListTrades(svc))

	return &tradeFixture{
		store:      store,
		svc:        svc,
		router:     r,
		aliceID:    aliceID,
		bobID:      bobID,
		aliceEntry: aliceEntry,
		bobEntry:   bobEntry,
	}
}

func (f *tradeFixture) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *tradeFixture) propose(t *testing.T) string {
	t.Helper()

	w := f.do(t, http.MethodPost, "/trades", ProposeTradeRequest{
		ProposerID:     f.aliceID,
		CounterpartyID: f.bobID,
		Offered:        []string{f.aliceEntry},
		Requested:      []string{f.bobEntry},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data domain.Trade `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func TestHandleProposeTrade(t *testing.T) {
	t.Run("creates pending trade", func(t *testing.T) {
		f := newTradeFixture(t)

		tradeID := f.propose(t)

		w := f.do(t, http.MethodGet, "/trades/"+tradeID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(domain.TradePending))
	})

	t.Run("rejects self trade", func(t *testing.T) {
		f := newTradeFixture(t)

		w := f.do(t, http.MethodPost, "/trades", ProposeTradeRequest{
			ProposerID:     f.aliceID,
			CounterpartyID: f.aliceID,
			Offered:        []string{f.aliceEntry},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed entry ids", func(t *testing.T) {
		f := newTradeFixture(t)

		w := f.do(t, http.MethodPost, "/trades", ProposeTradeRequest{
			ProposerID:     f.aliceID,
			CounterpartyID: f.bobID,
			Offered:        []string{"nope"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleAcceptTrade(t *testing.T) {
	t.Run("counterparty accepts", func(t *testing.T) {
		f := newTradeFixture(t)
		tradeID := f.propose(t)

		w := f.do(t, http.MethodPost, "/trades/"+tradeID+"/accept", ResolveTradeRequest{CallerID: f.bobID})

		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), string(domain.TradeAccepted))
	})

	t.Run("proposer cannot accept", func(t *testing.T) {
		f := newTradeFixture(t)
		tradeID := f.propose(t)

		w := f.do(t, http.MethodPost, "/trades/"+tradeID+"/accept", ResolveTradeRequest{CallerID: f.aliceID})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotTradeCounterpartyError)
	})

	t.Run("second accept conflicts", func(t *testing.T) {
		f := newTradeFixture(t)
		tradeID := f.propose(t)

		first := f.do(t, http.MethodPost, "/trades/"+tradeID+"/accept", ResolveTradeRequest{CallerID: f.bobID})
		require.Equal(t, http.StatusOK, first.Code)

		second := f.do(t, http.MethodPost, "/trades/"+tradeID+"/accept", ResolveTradeRequest{CallerID: f.bobID})
		assert.Equal(t, http.StatusConflict, second.Code)
	})

	t.Run("unknown trade", func(t *testing.T) {
		f := newTradeFixture(t)

		w := f.do(t, http.MethodPost, "/trades/"+uuid.NewString()+"/accept", ResolveTradeRequest{CallerID: f.bobID})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleRejectAndCancelTrade(t *testing.T) {
	t.Run("counterparty rejects", func(t *testing.T) {
		f := newTradeFixture(t)
		tradeID := f.propose(t)

		w := f.do(t, http.MethodPost, "/trades/"+tradeID+"/reject", ResolveTradeRequest{CallerID: f.bobID})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(domain.TradeRejected))
	})

	t.Run("proposer cancels", func(t *testing.T) {
		f := newTradeFixture(t)
		tradeID := f.propose(t)

		w := f.do(t, http.MethodPost, "/trades/"+tradeID+"/cancel", ResolveTradeRequest{CallerID: f.aliceID})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), string(domain.TradeCancelled))
	})

	t.Run("counterparty cannot cancel", func(t *testing.T) {
		f := newTradeFixture(t)
		tradeID := f.propose(t)

		w := f.do(t, http.MethodPost, "/trades/"+tradeID+"/cancel", ResolveTradeRequest{CallerID: f.bobID})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandleListTrades(t *testing.T) {
	f := newTradeFixture(t)
	f.propose(t)

	t.Run("lists by user", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/trades?user_id="+f.aliceID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), f.aliceID)
	})

	t.Run("filters by status", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/trades?user_id="+f.aliceID+"&status=accepted", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []domain.Trade `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/trades?user_id="+f.aliceID+"&status=weird", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidTradeStatus)
	})
}
