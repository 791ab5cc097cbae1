package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lootvault/lootvault/internal/domain"
	"github.com/lootvault/lootvault/internal/economy"
	"github.com/lootvault/lootvault/internal/testing/fakestore"
)

func newEconomyHarness() (economy.Service, string) {
	store := fakestore.New()
	userID := uuid.NewString()
	store.PutUser(&domain.User{ID: userID, Username: "alice", Tickets: 100})
	return economy.NewService(fakestore.NewCoordinator(store), store), userID
}

func TestHandleGetBalance(t *testing.T) {
	svc, userID := newEconomyHarness()
	handler := HandleGetBalance(svc)

	t.Run("returns balance", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/economy/balance?user_id="+userID, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tickets":100`)
	})

	t.Run("unknown user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/economy/balance?user_id="+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGrantTickets(t *testing.T) {
	svc, userID := newEconomyHarness()
	handler := HandleGrantTickets(svc)

	t.Run("credits balance", func(t *testing.T) {
		w := postJSON(t, handler, "/api/v1/economy/grant", TicketsRequest{UserID: userID, Amount: 25})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"tickets":125`)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		w := postJSON(t, handler, "/api/v1/economy/grant", TicketsRequest{UserID: userID, Amount: -5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleDebitTickets(t *testing.T) {
	svc, userID := newEconomyHarness()
	handler := HandleDebitTickets(svc)

	t.Run("debits balance", func(t *testing.T) {
		w := postJSON(t, handler, "/api/v1/economy/debit", TicketsRequest{UserID: userID, Amount: 40})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"tickets":60`)
	})

	t.Run("insufficient tickets", func(t *testing.T) {
		w := postJSON(t, handler, "/api/v1/economy/debit", TicketsRequest{UserID: userID, Amount: 10_000})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientTicketsError)
	})
}
