package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/http/response"
	"github.com/yungbote/shepherd-backend/internal/services"
)

type ExpenseHandler struct {
	expenses services.ExpenseService
}

func NewExpenseHandler(expenses services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func expenseQuery(c *gin.Context) services.ExpenseQuery {
	return services.ExpenseQuery{From: c.Query("from"), To: c.Query("to"), Category: c.Query("category")}
}

// GET /api/expenses?from=&to=&category=
func (h *ExpenseHandler) List(c *gin.Context) {
	out, err := h.expenses.List(c.Request.Context(), expenseQuery(c))
	if err != nil {
		response.RespondAPIError(c, err, "list_expenses_failed")
		return
	}
	response.RespondOK(c, gin.H{"expenses": out})
}

// GET /api/expenses/summary?from=&to=
func (h *ExpenseHandler) Summary(c *gin.Context) {
	sum, err := h.expenses.Summary(c.Request.Context(), expenseQuery(c))
	if err != nil {
		response.RespondAPIError(c, err, "expense_summary_failed")
		return
	}
	response.RespondOK(c, sum)
}

// POST /api/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req services.ExpenseInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.expenses.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "create_expense_failed")
		return
	}
	response.RespondCreated(c, gin.H{"expense": e})
}

// GET /api/expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_expense_id")
	if !ok {
		return
	}
	e, err := h.expenses.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err, "get_expense_failed")
		return
	}
	response.RespondOK(c, gin.H{"expense": e})
}

// PATCH /api/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_expense_id")
	if !ok {
		return
	}
	var req services.ExpensePatch
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.expenses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondAPIError(c, err, "update_expense_failed")
		return
	}
	response.RespondOK(c, gin.H{"expense": e})
}

// DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid_expense_id")
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err, "delete_expense_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
