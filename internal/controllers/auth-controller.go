package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bonchef/maintenance-api/internal/auth"
	"github.com/bonchef/maintenance-api/internal/helpers"
	"github.com/bonchef/maintenance-api/internal/models"
)

// RegisterHandler creates a user and returns a token for it.
func (ct *Controller) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	user, err := ct.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	token, err := ct.auth.IssueToken(user)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// LoginHandler verifies credentials and returns a token.
func (ct *Controller) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	user, err := ct.svc.Login(c.Request.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		helpers.HandleUnauthorized(c, err)
		return
	}
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	token, err := ct.auth.IssueToken(user)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// MeHandler returns the authenticated user.
func (ct *Controller) MeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}
