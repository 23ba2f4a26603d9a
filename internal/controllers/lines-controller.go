package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) CreateProductionLineHandler(c *gin.Context) {
	var req models.ProductionLineRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	line, err := ct.svc.CreateProductionLine(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (ct *Controller) ListProductionLinesHandler(c *gin.Context) {
	lines, err := ct.svc.ListProductionLines(c.Request.Context(), c.Query("department_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (ct *Controller) GetProductionLineHandler(c *gin.Context) {
	line, err := ct.svc.GetProductionLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (ct *Controller) UpdateProductionLineHandler(c *gin.Context) {
	var req models.ProductionLineRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	line, err := ct.svc.UpdateProductionLine(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (ct *Controller) ToggleProductionLineStatusHandler(c *gin.Context) {
	line, err := ct.svc.ToggleProductionLineStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (ct *Controller) DeleteProductionLineHandler(c *gin.Context) {
	if err := ct.svc.DeleteProductionLine(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "production line deleted"})
}
