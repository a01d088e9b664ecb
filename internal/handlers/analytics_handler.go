package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/period"
	"wealthwise/internal/services"
)

// AnalyticsHandler handles the analytics requests.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
	userService      services.UserServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer, userService services.UserServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, userService: userService}
}

// GetMonthAnalytics returns the analytics report for one month.
// @Summary     Month analytics
// @Description Get the month's summary, charts, generated insights, budget alerts, and previous-month comparison
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {object} services.MonthAnalytics "Month analytics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics [get]
func (h *AnalyticsHandler) GetMonthAnalytics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	owner, err := h.userService.ResolveOwner(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month := period.ResolveMonth(c.Query("month"), c.Query("year"), time.Now())
	analytics, err := h.analyticsService.Month(owner, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": analytics})
}

// GetRangeAnalytics returns the analytics report for a date range.
// @Summary     Range analytics
// @Description Get summary, bucketed charts, insights, and previous-period comparison for a named or custom date range
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "Range type (last_7_days, last_30_days, last_3_months, last_6_months, last_1_year, custom)"
// @Param       start_date query string false "Start date for custom range (YYYY-MM-DD)"
// @Param       end_date query string false "End date for custom range (YYYY-MM-DD)"
// @Success     200 {object} services.RangeAnalytics "Range analytics"
// @Failure     400 {object} ErrorResponse "Invalid or inverted date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/range [get]
func (h *AnalyticsHandler) GetRangeAnalytics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	owner, err := h.userService.ResolveOwner(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rangeType := period.RangeType(c.DefaultQuery("range", string(period.RangeLast30Days)))
	window, err := period.ResolveRange(rangeType, c.Query("start_date"), c.Query("end_date"), time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	analytics, err := h.analyticsService.Range(owner, rangeType, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": analytics})
}
