package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitlife-pro/fitlife/internal/llm"
	"github.com/fitlife-pro/fitlife/internal/log"
	"github.com/fitlife-pro/fitlife/pkg/version"
)

func (s *Server) handleStatus(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "unavailable"
	} else if err := s.db.Ping(c.Request.Context()); err != nil {
		dbStatus = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "fitlife",
		"version":  version.Short(),
		"database": dbStatus,
		"llm":      s.providerName(),
		"payments": s.payments.Enabled(),
	})
}

func (s *Server) handleTestKey(c *gin.Context) {
	if s.provider == nil {
		respondError(c, llm.ErrNotConfigured)
		return
	}

	resp, err := llm.Probe(c.Request.Context(), s.provider)
	if err != nil {
		s.chatFailed(err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "API key is valid",
		"provider": s.provider.Name(),
		"model":    resp.Model,
	})
}

type chatRequest struct {
	Messages []llm.Message   `json:"messages"`
	UserData *llm.UserProfile `json:"userData"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	// Validate before checking configuration so bad input is always a 400
	if _, _, err := llm.SplitSystem(req.Messages); err != nil {
		respondError(c, err)
		return
	}
	if s.provider == nil {
		respondError(c, llm.ErrNotConfigured)
		return
	}

	start := time.Now()
	messages := llm.WithCoachPrompt(req.Messages, req.UserData)
	resp, err := s.provider.ChatSync(c.Request.Context(), messages, llm.ChatOptions{
		MaxTokens: s.cfg.LLM.MaxTokens,
	})
	if err != nil {
		s.chatFailed(err)
		respondError(c, err)
		return
	}

	s.telemetry.TrackChatCompleted(
		s.provider.Name(),
		resp.Model,
		resp.Usage.PromptTokens,
		resp.Usage.CompletionTokens,
		time.Since(start).Milliseconds(),
	)
	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Raw)
}

func (s *Server) chatFailed(err error) {
	status := http.StatusInternalServerError
	if ue, ok := llm.AsUpstream(err); ok {
		status = ue.StatusCode
	}
	log.Warnf("chat via %s failed: %v", s.provider.Name(), err)
	s.telemetry.TrackChatFailed(s.provider.Name(), status)
}
