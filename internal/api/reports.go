package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gmdcok-crypto/meal-manage/internal/clock"
)

// ReportsHandler serves the aggregation endpoints: the live dashboard and
// the daily, monthly, and department reports.
type ReportsHandler struct {
	svc StatsService
	log *logrus.Logger
}

// NewReportsHandler creates a ReportsHandler with the given service and logger.
func NewReportsHandler(svc StatsService, log *logrus.Logger) *ReportsHandler {
	return &ReportsHandler{svc: svc, log: log}
}

// Today handles GET /api/v1/dashboard/today: the snapshot of the current
// local business day, or of an explicit date when one is supplied.
func (h *ReportsHandler) Today(c *gin.Context) {
	date := clock.Today(time.Now())
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := clock.ParseLocalDate(dateStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid date")

			return
		}
		date = d
	}

	snap, err := h.svc.DailySnapshot(c.Request.Context(), date)
	if err != nil {
		h.log.WithError(err).Error("building daily snapshot")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, snap)
}

// Daily handles GET /api/v1/reports/daily: the per-meal-type breakdown of
// one local day.
func (h *ReportsHandler) Daily(c *gin.Context) {
	date, ok := requireDate(c, "date")
	if !ok {
		return
	}

	rows, err := h.svc.DailyMealRows(c.Request.Context(), date)
	if err != nil {
		h.log.WithError(err).Error("building daily report")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date.String(), "meals": rows})
}

// Monthly handles GET /api/v1/reports/monthly: per-day buckets over one
// local calendar month.
func (h *ReportsHandler) Monthly(c *gin.Context) {
	year := int(parseInt64(c.Query("year")))
	month := int(parseInt64(c.Query("month")))
	if year == 0 || month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "year and month are required")

		return
	}

	days, err := h.svc.MonthlyByDay(c.Request.Context(), year, month)
	if err != nil {
		h.log.WithError(err).Error("building monthly report")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "days": days})
}

// Department handles GET /api/v1/reports/department: per-department sums
// over an inclusive local date range.
func (h *ReportsHandler) Department(c *gin.Context) {
	from, ok := requireDate(c, "from")
	if !ok {
		return
	}
	to, ok := requireDate(c, "to")
	if !ok {
		return
	}

	totals, err := h.svc.DepartmentTotals(c.Request.Context(), from, to)
	if err != nil {
		h.log.WithError(err).Error("building department report")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from.String(), "to": to.String(), "departments": totals})
}

// requireDate parses a mandatory local-date query parameter.
func requireDate(c *gin.Context, name string) (clock.LocalDate, bool) {
	s := c.Query(name)
	if s == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, name+" is required")

		return clock.LocalDate{}, false
	}

	d, err := clock.ParseLocalDate(s)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid "+name+" date")

		return clock.LocalDate{}, false
	}

	return d, true
}
