package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) ListChecklistTemplatesHandler(c *gin.Context) {
	templates, err := ct.svc.ListChecklistTemplates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (ct *Controller) CreateChecklistTemplateHandler(c *gin.Context) {
	var req models.ChecklistTemplateRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	tpl, err := ct.svc.CreateChecklistTemplate(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (ct *Controller) UpdateChecklistTemplateHandler(c *gin.Context) {
	var req models.ChecklistTemplateRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	tpl, err := ct.svc.UpdateChecklistTemplate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (ct *Controller) SetDefaultChecklistTemplateHandler(c *gin.Context) {
	tpl, err := ct.svc.SetDefaultChecklistTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (ct *Controller) DeleteChecklistTemplateHandler(c *gin.Context) {
	if err := ct.svc.DeleteChecklistTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checklist template deleted"})
}

// DefaultChecklistHandler returns a ready-to-use checklist built from the
// default template.
func (ct *Controller) DefaultChecklistHandler(c *gin.Context) {
	items, err := ct.svc.DefaultChecklist(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
