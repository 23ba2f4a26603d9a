package helpers

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func HandleInternalServerError(c *gin.Context, err error) {
	if c == nil {
		panic("HandleInternalServerError: c is nil")
	}
	if err == nil {
		err = errors.New("unknown error")
	}

	zap.S().Errorw(
		"Internal server error",
		"error", err.Error(),
	)

	c.JSON(
		http.StatusInternalServerError,
		gin.H{
			"error":       err.Error(),
			"status":      http.StatusInternalServerError,
			"message":     "The server had an internal error.",
			"stack-trace": string(debug.Stack()),
		})
}

func HandleInvalidInputError(c *gin.Context, err error) {
	if c == nil {
		panic("HandleInvalidInputError: c is nil")
	}
	if err == nil {
		err = errors.New("unknown error")
	}
	zap.S().Warnw(
		"Invalid input error",
		"error", err.Error(),
	)

	c.JSON(
		http.StatusBadRequest,
		gin.H{
			"error":   err.Error(),
			"status":  http.StatusBadRequest,
			"message": "You have provided a wrong input. Please check your parameters.",
		})
}

func HandleNotFound(c *gin.Context, err error) {
	if c == nil {
		panic("HandleNotFound: c is nil")
	}
	if err == nil {
		err = errors.New("not found")
	}

	c.JSON(
		http.StatusNotFound,
		gin.H{
			"error":   err.Error(),
			"status":  http.StatusNotFound,
			"message": "The requested resource was not found.",
			"route":   c.FullPath(),
		})
}

func HandleUnauthorized(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("unauthorized")
	}
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		gin.H{
			"error":   err.Error(),
			"status":  http.StatusUnauthorized,
			"message": "Authentication is required for this route.",
		})
}

func HandleForbidden(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("forbidden")
	}
	c.AbortWithStatusJSON(
		http.StatusForbidden,
		gin.H{
			"error":   err.Error(),
			"status":  http.StatusForbidden,
			"message": "You do not have permission to perform this action.",
		})
}

func HandleConflict(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("conflict")
	}
	c.JSON(
		http.StatusConflict,
		gin.H{
			"error":   err.Error(),
			"status":  http.StatusConflict,
			"message": "The request conflicts with the current state.",
		})
}
