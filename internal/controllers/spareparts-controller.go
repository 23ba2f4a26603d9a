package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) CreateSparePartHandler(c *gin.Context) {
	var req models.CreateSparePartRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	part, err := ct.svc.CreateSparePart(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

func (ct *Controller) ListSparePartsHandler(c *gin.Context) {
	parts, err := ct.svc.ListSpareParts(c.Request.Context(), c.Query("machine_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (ct *Controller) GetSparePartHandler(c *gin.Context) {
	part, err := ct.svc.GetSparePart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (ct *Controller) UpdateSparePartHandler(c *gin.Context) {
	var req models.CreateSparePartRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	part, err := ct.svc.UpdateSparePart(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (ct *Controller) DeleteSparePartHandler(c *gin.Context) {
	if err := ct.svc.DeleteSparePart(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "spare part deleted"})
}

func (ct *Controller) CreatePartRequestHandler(c *gin.Context) {
	var req models.CreatePartRequestRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	request, err := ct.svc.CreatePartRequest(c.Request.Context(), auth.CurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (ct *Controller) ListPartRequestsHandler(c *gin.Context) {
	requests, err := ct.svc.ListPartRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (ct *Controller) ResolvePartRequestHandler(c *gin.Context) {
	request, err := ct.svc.ResolvePartRequest(c.Request.Context(), auth.CurrentUser(c),
		c.Param("id"), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
