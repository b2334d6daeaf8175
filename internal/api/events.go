package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
	"github.com/gmdcok-crypto/meal-manage/internal/models"
)

// EventHandler serves meal event endpoints.
type EventHandler struct {
	svc EventService
	log *logrus.Logger
}

// NewEventHandler creates an EventHandler with the given service and logger.
func NewEventHandler(svc EventService, log *logrus.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: log}
}

// Scan handles POST /api/v1/events/scan, the self-service entry path.
// The response carries the verified subject alongside the recorded event so
// the terminal can display who checked in.
func (h *EventHandler) Scan(c *gin.Context) {
	var req models.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	event, subject, err := h.svc.Scan(c.Request.Context(), req)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("recording scan")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "event.scan", "event_id": event.ID, "subject_id": subject.ID,
	}).Info("audit")

	c.JSON(http.StatusCreated, gin.H{"event": event, "subject": subject})
}

// Create handles POST /api/v1/events, the administrative recording path.
func (h *EventHandler) Create(c *gin.Context) {
	var req models.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if req.Path == "" {
		req.Path = models.PathManual
	}

	event, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("recording event")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "event.create", "event_id": event.ID, "subject_id": event.SubjectID, "path": event.Path,
	}).Info("audit")

	c.JSON(http.StatusCreated, event)
}

// Get handles GET /api/v1/events/:id.
func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	event, err := h.svc.Get(c.Request.Context(), eventID)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting event")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, event)
}

// List handles GET /api/v1/events, a raw range query with filters.
// from/to are inclusive local dates; search matches subject name or number.
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{
		Search: c.Query("search"),
		Path:   models.EntryPath(c.Query("path")),
		Limit:  parseInt(c.DefaultQuery("limit", "200"), 200),
		Offset: parseOffset(c.DefaultQuery("offset", "0")),
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := clock.ParseLocalDate(fromStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid from date")

			return
		}
		toStr := c.DefaultQuery("to", fromStr)
		to, err := clock.ParseLocalDate(toStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid to date")

			return
		}
		filter.From, filter.To = clock.Range(from, to)
	}

	if voidStr := c.Query("is_void"); voidStr != "" {
		isVoid := voidStr == "true"
		filter.IsVoid = &isVoid
	}

	events, hasMore, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.log.WithError(err).Error("listing events")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "has_more": hasMore})
}

// Update handles PUT /api/v1/events/:id.
func (h *EventHandler) Update(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	event, err := h.svc.Update(c.Request.Context(), eventID, req)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("updating event")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "event.update", "event_id": eventID}).Info("audit")

	c.JSON(http.StatusOK, event)
}

// Void handles PATCH /api/v1/events/:id/void. Voiding is the normal
// correction path; the row survives and the aggregates drop it.
func (h *EventHandler) Void(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.VoidEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	event, err := h.svc.Void(c.Request.Context(), eventID, req)
	if err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("voiding event")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "event.void", "event_id": eventID}).Info("audit")

	c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/v1/events/:id. Hard removal, audit-logged.
func (h *EventHandler) Delete(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	operatorID := parseInt64(c.Query("operator_id"))

	if err := h.svc.Delete(c.Request.Context(), eventID, operatorID); err != nil {
		if mapServiceError(c, err) {
			return
		}

		h.log.WithError(err).Error("deleting event")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "event.delete", "event_id": eventID}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
