package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damon-houk/finance-tracker/internal/application/service"
	"github.com/damon-houk/finance-tracker/internal/domain/entity"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/finance-tracker/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMockedRouter(repo *mocks.MockTransactionRepository) http.Handler {
	log := logger.NewJSONLogger(io.Discard, logger.DebugLevel)
	svc := service.NewTransactionService(repo, log)
	return NewRouter(log, []string{"*"}, NewTransactionHandler(svc, log))
}

func TestStoreFaultsAreServerErrors(t *testing.T) {
	fault := entity.NewStoreFault("op", errors.New("connection refused"))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		setup  func(repo *mocks.MockTransactionRepository)
	}{
		{
			name:   "List",
			method: http.MethodGet,
			path:   "/transactions",
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("FindAll", mock.Anything).Return(nil, fault)
			},
		},
		{
			name:   "Create",
			method: http.MethodPost,
			path:   "/transactions",
			body:   `{"type":"income","category":"Salary","amount":10}`,
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("Store", mock.Anything, mock.Anything).Return("", fault)
			},
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			path:   "/transactions/abc",
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("Delete", mock.Anything, "abc").Return(fault)
			},
		},
		{
			name:   "Get",
			method: http.MethodGet,
			path:   "/transactions/abc",
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("FindByID", mock.Anything, "abc").Return(nil, fault)
			},
		},
		{
			name:   "Summary",
			method: http.MethodGet,
			path:   "/api/transactions/summary",
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("FindAll", mock.Anything).Return(nil, fault)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockTransactionRepository)
			tc.setup(repo)

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			newMockedRouter(repo).ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "Internal server error")
			assert.NotContains(t, w.Body.String(), "connection refused", "store details stay in the logs")
			repo.AssertExpectations(t)
		})
	}
}

func TestSummaryRouteIsNotTreatedAsID(t *testing.T) {
	repo := new(mocks.MockTransactionRepository)
	repo.On("FindAll", mock.Anything).Return([]entity.Transaction{}, nil).Once()

	w := httptest.NewRecorder()
	newMockedRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions/summary", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"income":0,"expenses":0,"balance":0}`, w.Body.String())
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		setup   func(repo *mocks.MockTransactionRepository)
		status  int
		level   string
		message string
		quiet   string
	}{
		{
			name:    "Validation failure is a warning",
			method:  http.MethodPost,
			path:    "/transactions",
			body:    `{"type":"transfer","category":"Food","amount":1}`,
			setup:   func(repo *mocks.MockTransactionRepository) {},
			status:  http.StatusBadRequest,
			level:   "Warn",
			message: "Transaction validation failed",
			quiet:   "Error",
		},
		{
			name:    "Malformed body is a warning",
			method:  http.MethodPost,
			path:    "/transactions",
			body:    `{"type":`,
			setup:   func(repo *mocks.MockTransactionRepository) {},
			status:  http.StatusBadRequest,
			level:   "Warn",
			message: "Invalid request body",
			quiet:   "Error",
		},
		{
			name:   "Unknown ID is a warning",
			method: http.MethodGet,
			path:   "/transactions/abc",
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("FindByID", mock.Anything, "abc").Return(nil, entity.ErrNotFound)
			},
			status:  http.StatusNotFound,
			level:   "Warn",
			message: "Transaction not found",
			quiet:   "Error",
		},
		{
			name:   "Store fault is an error",
			method: http.MethodPost,
			path:   "/transactions",
			body:   `{"type":"income","category":"Salary","amount":10}`,
			setup: func(repo *mocks.MockTransactionRepository) {
				repo.On("Store", mock.Anything, mock.Anything).Return("", entity.NewStoreFault("create", errors.New("disk full")))
			},
			status:  http.StatusInternalServerError,
			level:   "Error",
			message: "Transaction store failure",
			quiet:   "Warn",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockTransactionRepository)
			tc.setup(repo)

			handlerLog := new(mocks.MockLogger)
			handlerLog.On("Debug", mock.Anything, mock.Anything).Maybe()
			handlerLog.On("Info", mock.Anything, mock.Anything).Maybe()
			handlerLog.On(tc.level, tc.message, mock.MatchedBy(func(fields map[string]interface{}) bool {
				id, _ := fields["request_id"].(string)
				return id != ""
			})).Once()

			discard := logger.NewJSONLogger(io.Discard, logger.DebugLevel)
			svc := service.NewTransactionService(repo, discard)
			router := NewRouter(discard, []string{"*"}, NewTransactionHandler(svc, handlerLog))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, w.Code)
			handlerLog.AssertExpectations(t)
			handlerLog.AssertNotCalled(t, tc.quiet, mock.Anything, mock.Anything)
		})
	}
}
