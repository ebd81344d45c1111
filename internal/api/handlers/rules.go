package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishalnatekar/myfinancepal/internal/api/dto"
	"github.com/vishalnatekar/myfinancepal/internal/domain/rules"
)

// RulesHandler handles rule matching, preview, validation, and
// statistics requests.
type RulesHandler struct {
	engine *rules.Engine
	logger *slog.Logger
}

// NewRulesHandler creates a new rules handler.
func NewRulesHandler(engine *rules.Engine, logger *slog.Logger) *RulesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RulesHandler{engine: engine, logger: logger}
}

// Match handles POST /api/rules/match. It reports the winning rule for
// a transaction, and optionally the full ranked list of matches.
func (h *RulesHandler) Match(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	tx, err := req.Transaction.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	result := h.engine.MatchAll(tx, dto.RulesToDomain(req.Rules))
	c.JSON(http.StatusOK, dto.FromMatchResult(result, req.IncludeAllMatches))
}

// Test handles POST /api/rules/test. It previews an unsaved rule
// against a sample transaction.
func (h *RulesHandler) Test(c *gin.Context) {
	var req dto.TestRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	tx, err := req.Transaction.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	matches := h.engine.TestDraftRule(req.Rule.ToDomain(), tx)
	c.JSON(http.StatusOK, dto.TestRuleResponse{Matches: matches})
}

// Validate handles POST /api/rules/validate. It reports every problem
// in a rule configuration so the dashboard can show them all at once.
func (h *RulesHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	report := h.engine.ValidateRule(req.Rule.ToDomain())
	c.JSON(http.StatusOK, dto.FromValidationReport(report))
}

// Stats handles POST /api/rules/stats. It tallies match outcomes over a
// batch of transactions.
func (h *RulesHandler) Stats(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	transactions, err := dto.TransactionsToDomain(req.Transactions)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	stats := h.engine.Statistics(transactions, dto.RulesToDomain(req.Rules))
	c.JSON(http.StatusOK, dto.FromStatistics(stats))
}
