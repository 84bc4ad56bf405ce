package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/finzen-app/finzen_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// transactionHandler handles the authenticated user routes: the transaction
// list, the create/edit/delete forms and the personal reports.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: ts}
}

// registerTransactionRoutes registers the user-level routes on an
// already-gated router group.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	rg.GET("/index", h.listTransactions)
	rg.GET("/reportes", h.reports)
	rg.GET("/crear", h.createForm)
	rg.POST("/crear", h.create)
	rg.GET("/editar/:id", h.editForm)
	rg.POST("/editar/:id", h.update)
	rg.POST("/eliminar/:id", h.remove)
}

// respondServiceError translates a service error into the HTTP outcome.
// Upstream detail stays in the log; users get a generic retry-later message.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
	default:
		logger.Error("Transaction operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Something went wrong. Please try again later."})
	}
}

// listTransactions godoc
// @Summary Own transaction list page data
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /index [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)

	txns, err := h.txnService.List(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		OwnerName:    identity.DisplayName,
	})
}

// createForm godoc
// @Summary Create-form page data (category catalog)
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.CreateFormResponse
// @Router /crear [get]
func (h *transactionHandler) createForm(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCreateFormResponse())
}

// create godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Accept x-www-form-urlencoded
// @Param transaction body dto.CreateTransactionRequest true "Transaction fields"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Router /crear [post]
func (h *transactionHandler) create(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)

	var req dto.CreateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if _, err := h.txnService.Create(c.Request.Context(), req, identity.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

// editForm godoc
// @Summary Edit-form page data for one transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /editar/{id} [get]
func (h *transactionHandler) editForm(c *gin.Context) {
	txn, err := h.txnService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// update godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Accept x-www-form-urlencoded
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Changed fields"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /editar/{id} [post]
func (h *transactionHandler) update(c *gin.Context) {
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if _, err := h.txnService.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/index")
}

// remove godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 302
// @Failure 404 {object} ErrorResponse
// @Router /eliminar/{id} [post]
func (h *transactionHandler) remove(c *gin.Context) {
	if err := h.txnService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/index")
}

// reports godoc
// @Summary Personal reports page data
// @Description Expense-only category groups, per-kind totals and the by-date series for the owner.
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.ReportsResponse
// @Router /reportes [get]
func (h *transactionHandler) reports(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)
	ctx := c.Request.Context()

	byCategory, err := h.txnService.AggregateByCategory(ctx, identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	summary, err := h.txnService.SummarizeByKind(ctx, identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	byDate, err := h.txnService.AggregateByDate(ctx, identity.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// The category chart shows expenses only.
	expensesOnly := byCategory[:0:0]
	for _, group := range byCategory {
		if group.Kind == domain.KindExpense {
			expensesOnly = append(expensesOnly, group)
		}
	}

	// Kinds absent from the summary render as zero on the page.
	incomeTotal, expenseTotal := decimal.Zero, decimal.Zero
	for _, kindTotal := range summary {
		switch kindTotal.Kind {
		case domain.KindIncome:
			incomeTotal = kindTotal.Total
		case domain.KindExpense:
			expenseTotal = kindTotal.Total
		}
	}

	c.JSON(http.StatusOK, dto.ReportsResponse{
		ExpensesByCategory: dto.ToCategoryTotalResponses(expensesOnly),
		IncomeTotal:        incomeTotal.String(),
		ExpenseTotal:       expenseTotal.String(),
		ByDate:             dto.ToDateTotalResponses(byDate),
	})
}
