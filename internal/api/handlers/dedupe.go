package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishalnatekar/myfinancepal/internal/api/dto"
	"github.com/vishalnatekar/myfinancepal/internal/domain/dedupe"
)

// DedupeHandler handles duplicate detection and resolution requests.
type DedupeHandler struct {
	detector *dedupe.Detector
	logger   *slog.Logger
}

// NewDedupeHandler creates a new dedupe handler.
func NewDedupeHandler(detector *dedupe.Detector, logger *slog.Logger) *DedupeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DedupeHandler{detector: detector, logger: logger}
}

// Detect handles POST /api/dedupe/detect. It checks one candidate
// against a set of existing transactions.
func (h *DedupeHandler) Detect(c *gin.Context) {
	var req dto.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	candidate, err := req.Candidate.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}
	existing, err := dto.TransactionsToDomain(req.Existing)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	result := h.detector.DetectDuplicate(candidate, existing)
	c.JSON(http.StatusOK, dto.FromDetection(result))
}

// Batch handles POST /api/dedupe/batch. It clusters duplicates across a
// whole batch of transactions.
func (h *DedupeHandler) Batch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	transactions, err := dto.TransactionsToDomain(req.Transactions)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	clusters := h.detector.FindDuplicatesInBatch(transactions)
	resp := dto.BatchResponse{Clusters: make([]dto.Cluster, 0, len(clusters))}
	for _, cluster := range clusters {
		resp.Clusters = append(resp.Clusters, dto.FromCluster(cluster))
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve handles POST /api/dedupe/resolve. It partitions a cluster's
// members into keep, remove, and flag sets under the requested strategy.
func (h *DedupeHandler) Resolve(c *gin.Context) {
	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	strategy := dedupe.ResolutionStrategy(req.Strategy)
	switch strategy {
	case dedupe.KeepLatest, dedupe.KeepOldest, dedupe.FlagForReview, dedupe.MergeMostComplete:
	default:
		c.JSON(http.StatusBadRequest, dto.NewAPIError(dto.ErrCodeUnknownStrategy, "unknown resolution strategy: "+req.Strategy))
		return
	}

	if len(req.Cluster.Entries) < 2 {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("cluster must contain at least two entries"))
		return
	}

	cluster, err := req.Cluster.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	decision := dedupe.ResolveDuplicates(cluster, strategy)
	c.JSON(http.StatusOK, dto.ResolveResponse{
		Keep:   decision.Keep,
		Remove: decision.Remove,
		Flag:   decision.Flag,
	})
}
