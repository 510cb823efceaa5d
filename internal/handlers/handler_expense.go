package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/middleware"
)

// expenseHandler handles HTTP requests for the per-shipment expense ledger.
type expenseHandler struct {
	expenseSvc portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(expenseSvc portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseSvc: expenseSvc}
}

// RegisterExpenseRoutes registers the ledger routes. Creation and duty
// materialization hang off the owning shipment; settlement and patches address
// the expense directly. Reads are open to any authenticated company member,
// writes need the accounting preset.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseSvc portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseSvc)

	shipments := rg.Group("/shipments")
	{
		shipments.POST("/:shipmentID/expenses", middleware.Accounting(), h.createExpense)
		shipments.POST("/:shipmentID/expenses/duties", middleware.Accounting(), h.materializeDuties)
		shipments.GET("/:shipmentID/expenses/summary", h.shipmentSummary)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.GET("/summary", h.companySummary)
		expenses.PATCH("/:expenseID", middleware.Accounting(), h.updateExpense)
		expenses.DELETE("/:expenseID", middleware.Accounting(), h.deleteExpense)
		expenses.POST("/:expenseID/pay", middleware.Accounting(), h.payExpense)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Description Records a provision or disbursement against a shipment. Amount is whole GNF and must be positive.
// @Tags expenses
// @Accept json
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.Response{data=dto.ExpenseResponse}
// @Failure 400 {object} map[string]any "Validation failure"
// @Failure 403 {object} map[string]any "Role below accountant"
// @Failure 404 {object} map[string]any "Shipment not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	expense, err := h.expenseSvc.CreateExpense(c.Request.Context(), identity, c.Param("shipmentID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, dto.ToExpenseResponse(expense))
}

// materializeDuties godoc
// @Summary Materialize customs duties as expenses
// @Description Runs the duty calculator over the shipment's declared value and records one unpaid disbursement per duty line.
// @Tags expenses
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Success 201 {object} dto.Response{data=dto.MaterializeDutiesResponse}
// @Failure 404 {object} map[string]any "Shipment not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/expenses/duties [post]
func (h *expenseHandler) materializeDuties(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	result, err := h.expenseSvc.MaterializeDuties(c.Request.Context(), identity, c.Param("shipmentID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, result)
}

// shipmentSummary godoc
// @Summary One shipment's ledger summary
// @Description Aggregates provisions, disbursements and balance for one shipment, with a per-category breakdown of disbursements.
// @Tags expenses
// @Produce json
// @Param shipmentID path string true "Shipment ID"
// @Success 200 {object} dto.Response{data=dto.LedgerSummaryResponse}
// @Failure 404 {object} map[string]any "Shipment not found or other tenant"
// @Security BearerAuth
// @Router /shipments/{shipmentID}/expenses/summary [get]
func (h *expenseHandler) shipmentSummary(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	summary, err := h.expenseSvc.ShipmentSummary(c.Request.Context(), identity, c.Param("shipmentID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToLedgerSummaryResponse(summary))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists the company's expenses with optional shipment, category and settlement filters.
// @Tags expenses
// @Produce json
// @Param shipmentID query string false "Restrict to one shipment"
// @Param category query string false "Category filter"
// @Param paid query bool false "Settlement filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.Response{data=dto.ListExpensesResponse}
// @Failure 401 {object} map[string]any "Unauthenticated"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	params.Page, params.Limit = normalizePage(params.Page, params.Limit)
	expenses, total, err := h.expenseSvc.ListExpenses(c.Request.Context(), identity, params)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := dto.NewPaginationMeta(params.Page, params.Limit, total)
	respondOK(c, dto.ListExpensesResponse{
		Expenses:   dto.ToExpenseResponses(expenses),
		Pagination: meta,
	})
}

// companySummary godoc
// @Summary Company-wide ledger summary
// @Description Aggregates provisions, disbursements and balance across every shipment of the company.
// @Tags expenses
// @Produce json
// @Success 200 {object} dto.Response{data=dto.LedgerSummaryResponse}
// @Failure 401 {object} map[string]any "Unauthenticated"
// @Security BearerAuth
// @Router /expenses/summary [get]
func (h *expenseHandler) companySummary(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	summary, err := h.expenseSvc.CompanySummary(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToLedgerSummaryResponse(summary))
}

// updateExpense godoc
// @Summary Patch an expense
// @Description Applies a partial update to an unpaid expense. Setting paid to true settles through the balance-guarded pay path; paid expenses are immutable.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Param patch body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.ExpenseResponse}
// @Failure 400 {object} map[string]any "Validation failure or insufficient balance"
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Failure 409 {object} map[string]any "Already paid"
// @Security BearerAuth
// @Router /expenses/{expenseID} [patch]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	expense, err := h.expenseSvc.UpdateExpense(c.Request.Context(), identity, c.Param("expenseID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes an unpaid expense. Paid expenses cannot be deleted.
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} map[string]any "Paid expenses cannot be deleted"
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.expenseSvc.DeleteExpense(c.Request.Context(), identity, c.Param("expenseID")); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"message": "expense deleted"})
}

// payExpense godoc
// @Summary Settle an expense
// @Description Marks an expense paid. Disbursements are refused when the shipment's provision balance cannot cover them; concurrent pays on one shipment are serialized.
// @Tags expenses
// @Produce json
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.Response{data=dto.ExpenseResponse}
// @Failure 400 {object} map[string]any "Insufficient balance"
// @Failure 404 {object} map[string]any "Not found or other tenant"
// @Failure 409 {object} map[string]any "Already paid"
// @Security BearerAuth
// @Router /expenses/{expenseID}/pay [post]
func (h *expenseHandler) payExpense(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	expense, err := h.expenseSvc.PayExpense(c.Request.Context(), identity, c.Param("expenseID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, dto.ToExpenseResponse(expense))
}
