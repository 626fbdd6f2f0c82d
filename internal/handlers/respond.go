// Package handlers contains the HTTP request handlers for both services.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omiete01/eCommerce-microservice/internal/service"
)

// RespondError writes a JSON error body with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps the service failure taxonomy to HTTP status
// codes. This is the only place the mapping exists; handlers hand every
// service error here instead of inspecting it themselves.
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		RespondError(c, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		RespondError(c, http.StatusConflict, "name already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "invalid credentials")
	default:
		log.Printf("request failed: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal error")
	}
}
