package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (ct *Controller) DashboardStatsHandler(c *gin.Context) {
	stats, err := ct.svc.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ct *Controller) RecentWorkOrdersHandler(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	orders, err := ct.svc.RecentWorkOrders(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ct *Controller) WorkOrderCalendarHandler(c *gin.Context) {
	entries, err := ct.svc.WorkOrderCalendar(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (ct *Controller) PreventiveVsCorrectiveHandler(c *gin.Context) {
	counts, err := ct.svc.PreventiveVsCorrective(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (ct *Controller) FailureCausesHandler(c *gin.Context) {
	causes, err := ct.svc.FailureCauses(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, causes)
}

func (ct *Controller) PreventiveComplianceHandler(c *gin.Context) {
	stats, err := ct.svc.PreventiveComplianceStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ct *Controller) StopsAnalyticsHandler(c *gin.Context) {
	stats, err := ct.svc.AnalyzeStops(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ct *Controller) LineStartsAnalyticsHandler(c *gin.Context) {
	stats, err := ct.svc.AnalyzeLineStarts(c.Request.Context(),
		c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
