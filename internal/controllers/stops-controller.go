package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) CreateStopHandler(c *gin.Context) {
	var req models.StopRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	stop, err := ct.svc.CreateStop(c.Request.Context(), auth.CurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stop)
}

func (ct *Controller) ListStopsHandler(c *gin.Context) {
	stops, err := ct.svc.ListStops(c.Request.Context(), c.Query("machine_id"), c.Query("stop_type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

func (ct *Controller) UpdateStopHandler(c *gin.Context) {
	var upd models.StopUpdate
	if err := c.BindJSON(&upd); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	stop, err := ct.svc.UpdateStop(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stop)
}

func (ct *Controller) DeleteStopHandler(c *gin.Context) {
	if err := ct.svc.DeleteStop(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stop deleted"})
}
