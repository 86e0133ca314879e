package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsdev/fams_backend/internal/services"
	"github.com/famsdev/fams_backend/internal/store"
)

// fail maps domain errors onto status codes: validation problems are the
// caller's fault, an unreachable store is a 503 the caller may retry,
// anything else is a 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
