package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wealthwise/internal/period"
	"wealthwise/internal/services"
)

// DashboardHandler handles the dashboard request.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	userService      services.UserServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, userService services.UserServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, userService: userService}
}

// GetDashboard returns the month-aware dashboard.
// @Summary     Dashboard
// @Description Get the dashboard for one month: headline stats, previous-month comparison, budget block, category pies, six-month trend, and recent transactions
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12, defaults to current)"
// @Param       year query int false "Year (defaults to current)"
// @Success     200 {object} services.Dashboard "Dashboard payload"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
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
	dashboard, err := h.dashboardService.Dashboard(owner, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dashboard})
}
