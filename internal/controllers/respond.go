package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"appsuite-be/internal/models"
	"appsuite-be/internal/service"
)

func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: verr.Message})
	case errors.Is(err, service.ErrURLNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "URL not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	default:
		// the access log picks this up together with the request id
		c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func badRequestBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
}
