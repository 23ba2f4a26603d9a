package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/services"
)

func (ct *Controller) CreateWorkOrderHandler(c *gin.Context) {
	var req models.WorkOrderCreateRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	order, err := ct.svc.CreateWorkOrder(c.Request.Context(), auth.CurrentUser(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (ct *Controller) ListWorkOrdersHandler(c *gin.Context) {
	orders, err := ct.svc.ListWorkOrders(c.Request.Context(), services.WorkOrderFilter{
		Type:         c.Query("type"),
		Status:       c.Query("status"),
		MachineID:    c.Query("machine_id"),
		DepartmentID: c.Query("department_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ct *Controller) GetWorkOrderHandler(c *gin.Context) {
	order, err := ct.svc.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (ct *Controller) UpdateWorkOrderHandler(c *gin.Context) {
	var upd models.WorkOrderUpdate
	if err := c.BindJSON(&upd); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	order, err := ct.svc.UpdateWorkOrder(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), upd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (ct *Controller) DeleteWorkOrderHandler(c *gin.Context) {
	if err := ct.svc.DeleteWorkOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "work order deleted"})
}

func (ct *Controller) MyWorkOrdersHandler(c *gin.Context) {
	orders, err := ct.svc.MyWorkOrders(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ct *Controller) AddWorkOrderAttachmentHandler(c *gin.Context) {
	att, err := readUploadedFile(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	info, err := ct.svc.AddWorkOrderAttachment(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), att)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (ct *Controller) ListWorkOrderAttachmentsHandler(c *gin.Context) {
	infos, err := ct.svc.ListWorkOrderAttachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}

func (ct *Controller) GetWorkOrderAttachmentHandler(c *gin.Context) {
	att, err := ct.svc.GetWorkOrderAttachment(c.Request.Context(), c.Param("id"), c.Param("attachment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	serveAttachment(c, att)
}

func (ct *Controller) RemoveWorkOrderAttachmentHandler(c *gin.Context) {
	err := ct.svc.RemoveWorkOrderAttachment(c.Request.Context(), auth.CurrentUser(c), c.Param("id"), c.Param("attachment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attachment removed"})
}
