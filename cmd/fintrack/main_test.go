package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/damon-houk/finance-tracker/internal/application/service"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/db"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/handler"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()

	badgerDB, err := db.OpenBadger(t.TempDir())
	require.NoError(t, err)

	log := logger.NewJSONLogger(io.Discard, logger.InfoLevel)
	svc := service.NewTransactionService(db.NewBadgerTransactionRepository(badgerDB), log)
	server := httptest.NewServer(handler.NewRouter(log, []string{"*"}, handler.NewTransactionHandler(svc, log)))

	t.Cleanup(func() {
		server.Close()
		badgerDB.Close()
	})
	return server.URL + "/api"
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestCLI(t *testing.T) {
	server := startServer(t)

	out, err := runCLI(t, "-server", server, "add", "-type", "income", "-category", "Salary", "-amount", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Added income Salary 100.00")

	_, err = runCLI(t, "-server", server, "add", "-type", "expense", "-category", "Food", "-amount", "40")
	require.NoError(t, err)

	out, err = runCLI(t, "-server", server, "summary")
	require.NoError(t, err)
	assert.Equal(t, "Income: $100.00\nExpenses: $40.00\nBalance: $60.00\n", out)

	out, err = runCLI(t, "-server", server, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "Food")

	id := regexp.MustCompile(`[0-9a-f-]{36}`).FindString(out)
	require.NotEmpty(t, id)

	out, err = runCLI(t, "-server", server, "delete", id)
	require.NoError(t, err)
	assert.Equal(t, "Transaction deleted\n", out)

	out, err = runCLI(t, "-server", server, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, id)
}

func TestCLIErrors(t *testing.T) {
	server := startServer(t)

	_, err := runCLI(t, "-server", server)
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "-server", server, "transfer")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "-server", server, "delete")
	assert.ErrorIs(t, err, errUsage)

	_, err = runCLI(t, "-server", server, "add", "-category", "Food")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "missing -type, -amount")

	_, err = runCLI(t, "-server", server, "add", "-type", "expense", "-category", "Food")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "missing -amount")

	out, err := runCLI(t, "-server", server, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Food", "rejected adds must not reach the server")

	_, err = runCLI(t, "-server", server, "add", "-type", "gift", "-category", "x", "-amount", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type must be one of")
}
