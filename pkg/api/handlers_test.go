package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vendingkit/pkg/api"
	"github.com/dmitrymomot/vendingkit/pkg/inventory"
	"github.com/dmitrymomot/vendingkit/pkg/machine"
	"github.com/dmitrymomot/vendingkit/pkg/translog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	inv := inventory.MustNew(
		inventory.Product{ID: "cola", Name: "Cola", Price: 1000, Stock: 10},
		inventory.Product{ID: "water", Name: "Water", Price: 500, Stock: 0},
	)
	m := machine.New(inv, machine.WithTransactionLog(translog.NewRecorder(translog.NewMemoryStorage())))
	srv := httptest.NewServer(api.New(m).Router())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestCoins(t *testing.T) {
	t.Parallel()

	t.Run("accepts a coin", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := post(t, srv, "/coins", `{"amount": 500}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[map[string]int64](t, resp)
		assert.Equal(t, int64(500), body["balance"])
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := post(t, srv, "/coins", `{"amount": 0}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, api.CodeValidation, decodeBody[errBody](t, resp).Code)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := post(t, srv, "/coins", `{"amount": `)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSelection(t *testing.T) {
	t.Parallel()

	t.Run("confirms a valid selection", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		post(t, srv, "/coins", `{"amount": 1000}`)
		resp := post(t, srv, "/selection", `{"product_id": "cola"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		sel := decodeBody[machine.Selection](t, resp)
		assert.Equal(t, "cola", sel.ProductID)
		assert.Equal(t, int64(1000), sel.Price)
	})

	t.Run("invalid command in ready", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := post(t, srv, "/selection", `{"product_id": "cola"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, api.CodeInvalidCommand, decodeBody[errBody](t, resp).Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		post(t, srv, "/coins", `{"amount": 1000}`)
		resp := post(t, srv, "/selection", `{"product_id": "chips"}`)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, api.CodeUnknownProduct, decodeBody[errBody](t, resp).Code)
	})

	t.Run("out of stock", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		post(t, srv, "/coins", `{"amount": 1000}`)
		resp := post(t, srv, "/selection", `{"product_id": "water"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, api.CodeOutOfStock, decodeBody[errBody](t, resp).Code)
	})

	t.Run("insufficient funds carries shortfall in message", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		post(t, srv, "/coins", `{"amount": 300}`)
		resp := post(t, srv, "/selection", `{"product_id": "cola"}`)
		require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

		body := decodeBody[errBody](t, resp)
		assert.Equal(t, api.CodeInsufficientFunds, body.Code)
		assert.Contains(t, body.Message, "700")
	})
}

func TestDispenseFlow(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	post(t, srv, "/coins", `{"amount": 1500}`)
	post(t, srv, "/selection", `{"product_id": "cola"}`)

	resp := post(t, srv, "/dispense", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	receipt := decodeBody[machine.Receipt](t, resp)
	assert.Equal(t, "Cola", receipt.ProductName)
	assert.Equal(t, int64(500), receipt.ChangeReturned)

	status := get(t, srv, "/status")
	st := decodeBody[machine.Status](t, status)
	assert.Equal(t, machine.StateReady, st.State)
	assert.Zero(t, st.Balance)
}

func TestRefund(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	post(t, srv, "/coins", `{"amount": 2000}`)
	resp := post(t, srv, "/refund", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]int64](t, resp)
	assert.Equal(t, int64(2000), body["amount_returned"])
}

func TestRestockEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("full restock", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := post(t, srv, "/restock", "")
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		st := decodeBody[machine.Status](t, get(t, srv, "/status"))
		for _, p := range st.Inventory {
			assert.Positive(t, p.Stock, "product %s", p.ID)
		}
	})

	t.Run("specific quantities", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := post(t, srv, "/restock", `{"quantities": {"water": 4}}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("rejected mid transaction", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		post(t, srv, "/coins", `{"amount": 500}`)
		resp := post(t, srv, "/restock", "")
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, api.CodeInvalidCommand, decodeBody[errBody](t, resp).Code)
	})
}

func TestShutdownEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := post(t, srv, "/shutdown", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Out of order machines refuse coins.
	resp = post(t, srv, "/coins", `{"amount": 500}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTransactions(t *testing.T) {
	t.Parallel()

	t.Run("returns recent entries", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		post(t, srv, "/coins", `{"amount": 1000}`)
		post(t, srv, "/selection", `{"product_id": "cola"}`)

		resp := get(t, srv, "/transactions?limit=10")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody[struct {
			Transactions []translog.Entry `json:"transactions"`
		}](t, resp)
		require.Len(t, body.Transactions, 2)
		assert.Equal(t, "select_product", body.Transactions[1].Command)
	})

	t.Run("rejects invalid limit", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)

		resp := get(t, srv, "/transactions?limit=abc")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewAPI(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		api.New(nil)
	})
}
