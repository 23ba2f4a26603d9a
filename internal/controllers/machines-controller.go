package controllers

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

func (ct *Controller) CreateMachineHandler(c *gin.Context) {
	var req models.MachineRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	machine, err := ct.svc.CreateMachine(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, machine)
}

func (ct *Controller) ListMachinesHandler(c *gin.Context) {
	machines, err := ct.svc.ListMachines(c.Request.Context(), c.Query("department_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

func (ct *Controller) GetMachineHandler(c *gin.Context) {
	machine, err := ct.svc.GetMachine(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, machine)
}

func (ct *Controller) UpdateMachineHandler(c *gin.Context) {
	var req models.MachineRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	machine, err := ct.svc.UpdateMachine(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, machine)
}

func (ct *Controller) DeleteMachineHandler(c *gin.Context) {
	if err := ct.svc.DeleteMachine(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "machine deleted"})
}

func (ct *Controller) AddMachineAttachmentHandler(c *gin.Context) {
	att, err := readUploadedFile(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	info, err := ct.svc.AddMachineAttachment(c.Request.Context(), c.Param("id"), att)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (ct *Controller) ListMachineAttachmentsHandler(c *gin.Context) {
	infos, err := ct.svc.ListMachineAttachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}

func (ct *Controller) GetMachineAttachmentHandler(c *gin.Context) {
	att, err := ct.svc.GetMachineAttachment(c.Request.Context(), c.Param("id"), c.Param("attachment_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	serveAttachment(c, att)
}

func (ct *Controller) RemoveMachineAttachmentHandler(c *gin.Context) {
	if err := ct.svc.RemoveMachineAttachment(c.Request.Context(), c.Param("id"), c.Param("attachment_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attachment removed"})
}

// readUploadedFile reads the multipart "file" part into an attachment with
// the payload base64-encoded.
func readUploadedFile(c *gin.Context) (models.Attachment, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return models.Attachment{}, err
	}
	file, err := header.Open()
	if err != nil {
		return models.Attachment{}, err
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return models.Attachment{}, err
	}
	return models.Attachment{
		Filename: header.Filename,
		FileType: header.Header.Get("Content-Type"),
		FileSize: int64(len(raw)),
		Data:     base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// serveAttachment decodes and streams the stored payload.
func serveAttachment(c *gin.Context, att models.Attachment) {
	raw, err := base64.StdEncoding.DecodeString(att.Data)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	contentType := att.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+att.Filename+`"`)
	c.Data(http.StatusOK, contentType, raw)
}
