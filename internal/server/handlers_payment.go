package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-pro/fitlife/internal/log"
	"github.com/fitlife-pro/fitlife/internal/payment"
)

func (s *Server) handleCreateSubscription(c *gin.Context) {
	var req payment.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	checkout, err := s.payments.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// handleWebhook accepts both JSON notifications and the legacy query-string
// form (?topic=payment&id=123).
func (s *Server) handleWebhook(c *gin.Context) {
	var n payment.Notification
	if err := c.ShouldBindJSON(&n); err != nil && !errors.Is(err, io.EOF) {
		if c.Query("type") == "" && c.Query("topic") == "" {
			badBody(c, err)
			return
		}
	}

	if n.Type == "" {
		n.Type = firstNonEmpty(c.Query("type"), c.Query("topic"))
	}
	if n.Data.ID == "" {
		n.Data.ID = payment.ResourceID(firstNonEmpty(c.Query("data.id"), c.Query("id")))
	}

	if _, err := s.payments.HandleWebhook(c.Request.Context(), n); err != nil {
		if apiErr, ok := payment.AsAPIError(err); ok {
			// Always 500 here so the notification is redelivered
			log.Errorf("webhook payment fetch: %v: %s", apiErr, apiErr.Body)
			c.JSON(http.StatusInternalServerError, gin.H{"error": apiErr.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSubscription(c *gin.Context) {
	sub, err := s.payments.Subscription(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
