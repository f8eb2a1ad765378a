package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/finance-tracker/internal/application/service"
	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

const maxRequestBodyBytes = 1 << 20

// TransactionHandler handles HTTP requests for transactions
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: service,
		logger:  log,
	}
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateTransactionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as a transaction: "+err.Error(), http.StatusBadRequest, requestID)
		return
	}

	h.logger.Debug("Request parsed", map[string]interface{}{
		"request_id": requestID,
		"type":       req.Type,
		"category":   req.Category,
		"amount":     req.Amount,
	})

	tx, err := h.service.CreateTransaction(r.Context(), service.CreateTransactionInput{
		Type:     entity.TransactionType(req.Type),
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
	})
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			h.logger.Warn("Transaction validation failed", map[string]interface{}{
				"request_id": requestID,
				"field":      ve.Field,
				"error":      ve.Message,
			})
			sendErrorResponse(w, h.logger, "Validation failed", ve.Message, http.StatusBadRequest, requestID)
			return
		}

		h.storeFault(w, "create", err, requestID)
		return
	}

	h.logger.Info("Transaction created", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
		"type":       tx.Type,
	})

	sendJSON(w, h.logger, http.StatusCreated, toTransactionResponse(*tx))
}

// ListTransactions handles listing every transaction, most recent first
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	txs, err := h.service.ListTransactions(r.Context())
	if err != nil {
		h.storeFault(w, "list", err, requestID)
		return
	}

	resp := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toTransactionResponse(tx))
	}

	h.logger.Debug("Transactions listed", map[string]interface{}{
		"request_id": requestID,
		"count":      len(resp),
	})

	sendJSON(w, h.logger, http.StatusOK, resp)
}

// GetTransaction handles retrieving a transaction by ID
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	tx, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			h.logger.Warn("Transaction not found", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
			})
			sendErrorResponse(w, h.logger, "Transaction not found",
				"The requested transaction could not be found", http.StatusNotFound, requestID)
			return
		}

		h.storeFault(w, "get", err, requestID)
		return
	}

	sendJSON(w, h.logger, http.StatusOK, toTransactionResponse(*tx))
}

// DeleteTransaction handles deleting a transaction by ID. Unknown IDs are acknowledged too.
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteTransaction(r.Context(), id); err != nil {
		h.storeFault(w, "delete", err, requestID)
		return
	}

	h.logger.Info("Transaction deleted", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	sendJSON(w, h.logger, http.StatusOK, MessageResponse{Message: "Transaction deleted"})
}

// GetSummary handles computing income, expense and balance totals
func (h *TransactionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.storeFault(w, "summary", err, requestID)
		return
	}

	sendJSON(w, h.logger, http.StatusOK, SummaryResponse{
		Income:   summary.Income,
		Expenses: summary.Expenses,
		Balance:  summary.Balance,
	})
}

// storeFault reports any non-validation failure as a generic server error
func (h *TransactionHandler) storeFault(w http.ResponseWriter, op string, err error, requestID string) {
	h.logger.Error("Transaction store failure", map[string]interface{}{
		"request_id":  requestID,
		"operation":   op,
		"store_fault": entity.IsStoreFault(err),
		"error":       err.Error(),
	})
	sendErrorResponse(w, h.logger, "Internal server error",
		"An unexpected error occurred while accessing transactions", http.StatusInternalServerError, requestID)
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	router.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	// must precede /transactions/{id}
	router.HandleFunc("/transactions/summary", h.GetSummary).Methods(http.MethodGet)
	router.HandleFunc("/transactions/{id}", h.GetTransaction).Methods(http.MethodGet)
	router.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods(http.MethodDelete)

	h.logger.Debug("Transaction routes registered", map[string]interface{}{
		"routes": []string{
			"POST /transactions",
			"GET /transactions",
			"GET /transactions/summary",
			"GET /transactions/{id}",
			"DELETE /transactions/{id}",
		},
	})
}
