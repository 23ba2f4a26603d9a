package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) CreateLineStartHandler(c *gin.Context) {
	var req models.LineStartRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	start, err := ct.svc.CreateLineStart(c.Request.Context(), auth.CurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, start)
}

func (ct *Controller) ListLineStartsHandler(c *gin.Context) {
	starts, err := ct.svc.ListLineStarts(c.Request.Context(),
		c.Query("line_id"), c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, starts)
}

func (ct *Controller) DeleteLineStartHandler(c *gin.Context) {
	if err := ct.svc.DeleteLineStart(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "line start deleted"})
}

func (ct *Controller) LineStartComplianceStatsHandler(c *gin.Context) {
	stats, err := ct.svc.LineStartComplianceStats(c.Request.Context(),
		c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
