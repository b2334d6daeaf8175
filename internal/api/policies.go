package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// PolicyHandler serves meal policy administration endpoints.
type PolicyHandler struct {
	svc PolicyService
	log *logrus.Logger
}

// NewPolicyHandler creates a PolicyHandler with the given service and logger.
func NewPolicyHandler(svc PolicyService, log *logrus.Logger) *PolicyHandler {
	return &PolicyHandler{svc: svc, log: log}
}

// List handles GET /api/v1/policies. active=true restricts to the live
// window set in matcher order.
func (h *PolicyHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	policies, err := h.svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.log.WithError(err).Error("listing policies")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"policies": policies})
}

// Get handles GET /api/v1/policies/:id.
func (h *PolicyHandler) Get(c *gin.Context) {
	policyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	policy, err := h.svc.Get(c.Request.Context(), policyID)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting policy")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, policy)
}

// Create handles POST /api/v1/policies.
func (h *PolicyHandler) Create(c *gin.Context) {
	var req models.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	operatorID := parseInt64(c.Query("operator_id"))

	policy, err := h.svc.Create(c.Request.Context(), req, operatorID)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("creating policy")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "policy.create", "policy_id": policy.ID, "meal_type": policy.MealType,
	}).Info("audit")

	c.JSON(http.StatusCreated, policy)
}

// Update handles PUT /api/v1/policies/:id. Existing events keep the price
// snapshots they were recorded with.
func (h *PolicyHandler) Update(c *gin.Context) {
	policyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	operatorID := parseInt64(c.Query("operator_id"))

	policy, err := h.svc.Update(c.Request.Context(), policyID, req, operatorID)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("updating policy")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "policy.update", "policy_id": policyID}).Info("audit")

	c.JSON(http.StatusOK, policy)
}

// Delete handles DELETE /api/v1/policies/:id.
func (h *PolicyHandler) Delete(c *gin.Context) {
	policyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	operatorID := parseInt64(c.Query("operator_id"))

	if err := h.svc.Delete(c.Request.Context(), policyID, operatorID); err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("deleting policy")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "policy.delete", "policy_id": policyID}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
