package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) CreateDepartmentHandler(c *gin.Context) {
	var req models.DepartmentRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	dept, err := ct.svc.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

func (ct *Controller) ListDepartmentsHandler(c *gin.Context) {
	depts, err := ct.svc.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, depts)
}

func (ct *Controller) GetDepartmentHandler(c *gin.Context) {
	dept, err := ct.svc.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

func (ct *Controller) UpdateDepartmentHandler(c *gin.Context) {
	var req models.DepartmentRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	dept, err := ct.svc.UpdateDepartment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

func (ct *Controller) DeleteDepartmentHandler(c *gin.Context) {
	if err := ct.svc.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "department deleted"})
}
