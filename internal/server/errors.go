package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-pro/fitlife/internal/db"
	"github.com/fitlife-pro/fitlife/internal/llm"
	"github.com/fitlife-pro/fitlife/internal/log"
	"github.com/fitlife-pro/fitlife/internal/payment"
	"github.com/fitlife-pro/fitlife/internal/tracking"
)

// respondError maps a service error onto a status code and JSON body.
func respondError(c *gin.Context, err error) {
	switch {
	case tracking.IsValidationError(err),
		errors.Is(err, llm.ErrInvalidMessage),
		errors.Is(err, payment.ErrUnknownPlan),
		errors.Is(err, payment.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

	case errors.Is(err, llm.ErrNotConfigured), errors.Is(err, payment.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	case db.IsStoreError(err):
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store error", "details": err.Error()})

	default:
		if ue, ok := llm.AsUpstream(err); ok {
			relayUpstream(c, ue.StatusCode, ue.Body)
			return
		}
		if apiErr, ok := payment.AsAPIError(err); ok {
			relayUpstream(c, apiErr.StatusCode, apiErr.Body)
			return
		}
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// relayUpstream forwards a vendor failure with its original status.
func relayUpstream(c *gin.Context, status int, body json.RawMessage) {
	switch status {
	case http.StatusUnauthorized:
		c.JSON(status, gin.H{"error": "invalid API key"})
	case http.StatusTooManyRequests:
		c.JSON(status, gin.H{"error": "rate limited"})
	default:
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "upstream error", "details": body})
	}
}

// badBody answers a request whose JSON body could not be decoded.
func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
