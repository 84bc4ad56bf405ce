package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	"github.com/finzen-app/finzen_backend/internal/core/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/finzen-app/finzen_backend/internal/middleware"
	"github.com/finzen-app/finzen_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTxnRepo is an in-memory TransactionRepository for handler tests.
type memTxnRepo struct {
	txns  map[string]domain.Transaction
	order []string
}

func newMemTxnRepo() *memTxnRepo {
	return &memTxnRepo{txns: map[string]domain.Transaction{}}
}

func (r *memTxnRepo) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	r.txns[txn.TransactionID] = txn
	r.order = append(r.order, txn.TransactionID)
	return nil
}

func (r *memTxnRepo) FindTransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	txn, ok := r.txns[id]
	if !ok {
		return nil, fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return &txn, nil
}

func (r *memTxnRepo) FindTransactionsByOwner(_ context.Context, ownerID string) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	for _, id := range r.order {
		txn, ok := r.txns[id]
		if !ok {
			continue
		}
		if ownerID == "" || txn.OwnerID == ownerID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *memTxnRepo) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	if _, ok := r.txns[txn.TransactionID]; !ok {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	r.txns[txn.TransactionID] = txn
	return nil
}

func (r *memTxnRepo) DeleteTransaction(_ context.Context, id string) error {
	if _, ok := r.txns[id]; !ok {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	delete(r.txns, id)
	return nil
}

// newTestServer wires the user routes behind real session middleware and
// returns the engine plus a valid session cookie for the given identity.
func newTestServer(t *testing.T, repo *memTxnRepo, identity domain.SessionIdentity) (*gin.Engine, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerCustomValidators()

	cfg := &config.Config{
		JWTSecret:             "handler-test-secret",
		JWTIssuer:             "finzen-test",
		SessionExpiryDuration: time.Hour,
		SessionCookieName:     "auth_token",
	}
	gateway := services.NewIdentityGatewayService(cfg)
	txnService := services.NewTransactionService(repo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))

	userRoutes := r.Group("/")
	userRoutes.Use(middleware.RequireSession(gateway, cfg.SessionCookieName), middleware.RequireRole(domain.RoleUser))
	registerTransactionRoutes(userRoutes, txnService)

	token, err := gateway.IssueSession(identity)
	require.NoError(t, err)
	return r, &http.Cookie{Name: cfg.SessionCookieName, Value: token}
}

func postForm(r *gin.Engine, cookie *http.Cookie, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, r *gin.Engine, cookie *http.Cookie, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func sampleForm() url.Values {
	return url.Values{
		"kind":        {"expense"},
		"category":    {"Alimentación"},
		"description": {"Lunch"},
		"amount":      {"15.50"},
		"date":        {"2024-03-01"},
	}
}

func TestTransactionHandler_CreateThenList(t *testing.T) {
	repo := newMemTxnRepo()
	r, cookie := newTestServer(t, repo, domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser, DisplayName: "Ana"})

	w := postForm(r, cookie, "/crear", sampleForm())
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/index", w.Header().Get("Location"))

	var list dto.ListTransactionsResponse
	w = getJSON(t, r, cookie, "/index", &list)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Ana", list.OwnerName)
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, "expense", list.Transactions[0].Kind)
	assert.Equal(t, "15.5", list.Transactions[0].Amount)
	assert.Equal(t, "2024-03-01", list.Transactions[0].Date)
}

func TestTransactionHandler_Create_ValidationFailure(t *testing.T) {
	r, cookie := newTestServer(t, newMemTxnRepo(), domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	form := sampleForm()
	form.Set("amount", "-5")
	w := postForm(r, cookie, "/crear", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "amount must be a positive number")
}

func TestTransactionHandler_Create_BadKindRejectedByBinding(t *testing.T) {
	r, cookie := newTestServer(t, newMemTxnRepo(), domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	form := sampleForm()
	form.Set("kind", "transfer")
	w := postForm(r, cookie, "/crear", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionHandler_EditForm_NotFound(t *testing.T) {
	r, cookie := newTestServer(t, newMemTxnRepo(), domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	w := getJSON(t, r, cookie, "/editar/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Transaction not found")
}

func TestTransactionHandler_DeleteThenEditForm(t *testing.T) {
	repo := newMemTxnRepo()
	r, cookie := newTestServer(t, repo, domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	w := postForm(r, cookie, "/crear", sampleForm())
	require.Equal(t, http.StatusFound, w.Code)
	require.Len(t, repo.order, 1)
	id := repo.order[0]

	w = postForm(r, cookie, "/eliminar/"+id, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = getJSON(t, r, cookie, "/editar/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionHandler_CreateForm_CategoryCatalog(t *testing.T) {
	r, cookie := newTestServer(t, newMemTxnRepo(), domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	var form dto.CreateFormResponse
	w := getJSON(t, r, cookie, "/crear", &form)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, form.Categories["expense"], "Alimentación")
	assert.Contains(t, form.Categories["income"], "Salario")
}

func TestTransactionHandler_Reports_AbsentKindRendersZero(t *testing.T) {
	repo := newMemTxnRepo()
	r, cookie := newTestServer(t, repo, domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	w := postForm(r, cookie, "/crear", sampleForm())
	require.Equal(t, http.StatusFound, w.Code)

	var reports dto.ReportsResponse
	w = getJSON(t, r, cookie, "/reportes", &reports)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "15.5", reports.ExpenseTotal)
	// No income transactions: the page data still carries an explicit zero.
	assert.Equal(t, "0", reports.IncomeTotal)
	require.Len(t, reports.ExpensesByCategory, 1)
	assert.Equal(t, "Alimentación", reports.ExpensesByCategory[0].Category)
	require.Len(t, reports.ByDate, 1)
	assert.Equal(t, "2024-03-01", reports.ByDate[0].Date)
}

func TestTransactionHandler_Reports_CategoryChartExcludesIncome(t *testing.T) {
	repo := newMemTxnRepo()
	r, cookie := newTestServer(t, repo, domain.SessionIdentity{UserID: "U1", Role: domain.RoleUser})

	require.Equal(t, http.StatusFound, postForm(r, cookie, "/crear", sampleForm()).Code)

	incomeForm := sampleForm()
	incomeForm.Set("kind", "income")
	incomeForm.Set("category", "Salario")
	incomeForm.Set("amount", "100")
	require.Equal(t, http.StatusFound, postForm(r, cookie, "/crear", incomeForm).Code)

	var reports dto.ReportsResponse
	w := getJSON(t, r, cookie, "/reportes", &reports)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, reports.ExpensesByCategory, 1)
	assert.Equal(t, "Alimentación", reports.ExpensesByCategory[0].Category)
	assert.Equal(t, "100", reports.IncomeTotal)
	assert.Equal(t, "15.5", reports.ExpenseTotal)
}
