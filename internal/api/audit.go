package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// AuditHandler serves the audit trail query endpoint.
type AuditHandler struct {
	svc AuditService
	log *logrus.Logger
}

// NewAuditHandler creates an AuditHandler with the given service and logger.
func NewAuditHandler(svc AuditService, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: log}
}

// Query handles GET /api/v1/audit. Filters: target_kind, target_id, action,
// since (RFC3339), limit, offset.
func (h *AuditHandler) Query(c *gin.Context) {
	opts := models.AuditQueryOpts{
		TargetKind: c.Query("target_kind"),
		TargetID:   parseInt64(c.Query("target_id")),
		Action:     models.AuditAction(c.Query("action")),
		Limit:      parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:     parseOffset(c.DefaultQuery("offset", "0")),
	}

	if sinceStr := c.Query("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid since timestamp")

			return
		}
		opts.Since = &since
	}

	records, hasMore, err := h.svc.Query(c.Request.Context(), opts)
	if err != nil {
		h.log.WithError(err).Error("querying audit log")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records, "has_more": hasMore})
}
