package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultTrendWindow = 7
	maxTrendWindow     = 60
	defaultChartWidth  = 600
	defaultChartHeight = 240
)

// getDailyRecords returns every saved day, most recent first.
// GET /api/daily-records. Returns an empty array (not null) when none exist.
func (h *Handler) getDailyRecords(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, h.sess.records.all())
}

// saveDailyRecord freezes the current ledger into the record for a date.
// POST /api/daily-records. Body: { "date": "YYYY-MM-DD" } (defaults to today).
// Saving the same date again replaces the record in place.
func (h *Handler) saveDailyRecord(c *gin.Context) {
	var body saveDayRequest
	// An empty body is allowed and means "today".
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			apiError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if body.Date == "" {
		body.Date = today()
	}
	if !validDate(body.Date) {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusCreated, h.sess.saveDay(body.Date))
}

// deleteDailyRecord removes a saved day.
// DELETE /api/daily-records/:date?confirm=true. The explicit confirm flag is the
// user's confirmation; without it nothing is deleted.
func (h *Handler) deleteDailyRecord(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if c.Query("confirm") != "true" {
		apiError(c, http.StatusPreconditionRequired, "deleting a day requires confirm=true")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.sess.records.delete(date) {
		apiError(c, http.StatusNotFound, "daily record not found")
		return
	}
	h.sess.persistRecords()

	c.Status(http.StatusNoContent)
}

// loadDailyRecord copies a saved day's meals back into the ledger for editing.
// POST /api/daily-records/:date/load. The record itself is left unchanged until
// the day is saved again.
func (h *Handler) loadDailyRecord(c *gin.Context) {
	date := c.Param("date")
	if !validDate(date) {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.sess.records.get(date)
	if !ok {
		apiError(c, http.StatusNotFound, "daily record not found")
		return
	}
	h.sess.ledger.load(r.Meals)
	h.sess.persistLedger()

	c.JSON(http.StatusOK, h.sess.summary())
}

// getTrend maps the last `window` saved days onto chart coordinates.
// GET /api/trend?window=7&width=600&height=240. With no saved days the
// response is {"no_data": true}.
func (h *Handler) getTrend(c *gin.Context) {
	window, ok := intQuery(c, "window", defaultTrendWindow, 1, maxTrendWindow)
	if !ok {
		apiError(c, http.StatusBadRequest, "window must be an integer between 1 and 60")
		return
	}
	width, ok := intQuery(c, "width", defaultChartWidth, 1, 10000)
	if !ok {
		apiError(c, http.StatusBadRequest, "width must be a positive integer")
		return
	}
	height, ok := intQuery(c, "height", defaultChartHeight, 1, 10000)
	if !ok {
		apiError(c, http.StatusBadRequest, "height must be a positive integer")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	chart, ok := mapTrend(h.sess.records.chronological(window), computeTDEE(h.sess.profile),
		float64(width), float64(height))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"no_data": true})
		return
	}
	c.JSON(http.StatusOK, chart)
}

// getProjection returns the energy balance of the day being edited and the
// projected weight change over `days` (default 7).
// GET /api/projection?days=7.
func (h *Handler) getProjection(c *gin.Context) {
	days, ok := intQuery(c, "days", defaultProjectionDays, 1, 365)
	if !ok {
		apiError(c, http.StatusBadRequest, "days must be an integer between 1 and 365")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, project(h.sess.ledger.totalCalories(), h.sess.profile, days))
}

// intQuery parses an optional integer query param within [lo, hi].
func intQuery(c *gin.Context, key string, def, lo, hi int) (int, bool) {
	s := c.Query(key)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, false
	}
	return n, true
}
