package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/finzen-app/finzen_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the admin-only, read-only views.
type adminHandler struct {
	userService      portssvc.UserSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newAdminHandler(us portssvc.UserSvcFacade, rs portssvc.ReportingSvcFacade) *adminHandler {
	return &adminHandler{userService: us, reportingService: rs}
}

// registerAdminRoutes registers the admin routes on an already-gated group.
func registerAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newAdminHandler(us, rs)

	rg.GET("/dashboard", h.dashboard)
	rg.GET("/admin/usuarios", h.users)
	rg.GET("/admin/transacciones", h.transactions)
	rg.GET("/admin/reportes", h.systemReport)
	rg.GET("/admin/consolidado", h.consolidation)
}

// dashboard godoc
// @Summary Admin dashboard page data
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]string
// @Router /dashboard [get]
func (h *adminHandler) dashboard(c *gin.Context) {
	identity, _ := middleware.GetIdentityFromContext(c)
	c.JSON(http.StatusOK, gin.H{"page": "dashboard", "name": identity.DisplayName})
}

// users godoc
// @Summary All users
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]dto.UserResponse
// @Router /admin/usuarios [get]
func (h *adminHandler) users(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserResponses(users)})
}

// transactions godoc
// @Summary All transactions with owner names
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]dto.TransactionResponse
// @Router /admin/transacciones [get]
func (h *adminHandler) transactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	owned, err := h.reportingService.ListAllWithOwners(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list all transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load transactions"})
		return
	}

	out := make([]dto.TransactionResponse, len(owned))
	for i, txn := range owned {
		resp := dto.ToTransactionResponse(txn.Transaction)
		resp.OwnerName = txn.OwnerName
		out[i] = resp
	}
	c.JSON(http.StatusOK, gin.H{"transactions": out})
}

// systemReport godoc
// @Summary System-wide totals
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]dto.SystemTotalsResponse
// @Router /admin/reportes [get]
func (h *adminHandler) systemReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	totals, err := h.reportingService.SystemTotals(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute system totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": dto.ToSystemTotalsResponse(totals)})
}

// consolidation godoc
// @Summary Per-user consolidation
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]dto.ConsolidationResponse
// @Router /admin/consolidado [get]
func (h *adminHandler) consolidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.ConsolidateByUser(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build consolidation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load consolidation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consolidation": dto.ToConsolidationResponses(rows)})
}
