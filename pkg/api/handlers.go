package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/vendingkit/pkg/machine"
)

const defaultTransactionLimit = 20

// API exposes the machine controller's command and query surface over HTTP.
// Each command maps 1:1 to a request/response pair with the controller's
// error taxonomy serialized as a tagged error code.
type API struct {
	machine *machine.Machine
	logger  *slog.Logger
}

// Option configures the API.
type Option func(*API)

// WithLogger sets the structured logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates the HTTP API over the given machine controller.
func New(m *machine.Machine, opts ...Option) *API {
	if m == nil {
		panic("api: machine cannot be nil")
	}

	a := &API{machine: m, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router with all machine endpoints mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/coins", a.insertCoin)
	r.Post("/selection", a.selectProduct)
	r.Post("/dispense", a.dispense)
	r.Post("/refund", a.refund)
	r.Post("/restock", a.restock)
	r.Post("/shutdown", a.shutdown)

	r.Get("/status", a.status)
	r.Get("/transactions", a.transactions)
	r.Get("/healthz", a.healthz)

	return r
}

type insertCoinRequest struct {
	Amount int64 `json:"amount"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

func (a *API) insertCoin(w http.ResponseWriter, r *http.Request) {
	var req insertCoinRequest
	if !a.decode(w, r, &req) {
		return
	}

	balance, err := a.machine.InsertCoin(r.Context(), req.Amount)
	if err != nil {
		a.fail(r, "insert coin", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

type selectProductRequest struct {
	ProductID string `json:"product_id"`
}

func (a *API) selectProduct(w http.ResponseWriter, r *http.Request) {
	var req selectProductRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeErrorCode(w, http.StatusBadRequest, CodeValidation, "product_id is required")
		return
	}

	selection, err := a.machine.SelectProduct(r.Context(), req.ProductID)
	if err != nil {
		a.fail(r, "select product", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selection)
}

func (a *API) dispense(w http.ResponseWriter, r *http.Request) {
	receipt, err := a.machine.Dispense(r.Context())
	if err != nil {
		a.fail(r, "dispense", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

type refundResponse struct {
	AmountReturned int64 `json:"amount_returned"`
}

func (a *API) refund(w http.ResponseWriter, r *http.Request) {
	amount, err := a.machine.Refund(r.Context())
	if err != nil {
		a.fail(r, "refund", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refundResponse{AmountReturned: amount})
}

type restockRequest struct {
	Quantities map[string]int `json:"quantities,omitempty"`
}

func (a *API) restock(w http.ResponseWriter, r *http.Request) {
	var req restockRequest
	// An empty body means a full top-up restock.
	if r.ContentLength > 0 && !a.decode(w, r, &req) {
		return
	}

	var err error
	if len(req.Quantities) > 0 {
		err = a.machine.RestockProducts(r.Context(), req.Quantities)
	} else {
		err = a.machine.Restock(r.Context())
	}
	if err != nil {
		a.fail(r, "restock", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) shutdown(w http.ResponseWriter, r *http.Request) {
	if err := a.machine.Shutdown(r.Context()); err != nil {
		a.fail(r, "shutdown", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.machine.Status())
}

type transactionsResponse struct {
	Transactions any `json:"transactions"`
}

func (a *API) transactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultTransactionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorCode(w, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := a.machine.RecentTransactions(r.Context(), limit)
	if err != nil {
		a.fail(r, "recent transactions", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionsResponse{Transactions: entries})
}

func (a *API) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON request body, rejecting unknown fields. It writes the
// error response itself and reports whether decoding succeeded.
func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeErrorCode(w, http.StatusBadRequest, CodeValidation, err.Error())
		return false
	}
	return true
}

func (a *API) fail(r *http.Request, action string, err error) {
	a.logger.DebugContext(r.Context(), "command rejected",
		slog.String("action", action),
		slog.String("error", err.Error()))
}
