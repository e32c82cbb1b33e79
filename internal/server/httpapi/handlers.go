package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/postplanner/internal/common"
	"github.com/dmitrijs2005/postplanner/internal/rpc"
	"github.com/dmitrijs2005/postplanner/internal/server/services"
)

type generatePhaseRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	PostsPerDay        int    `json:"postsPerDay"`
	DurationDays       int    `json:"durationDays"`
	TemplatePreference string `json:"templatePreference"`
}

type generatePhaseResponse struct {
	Items     []rpc.Postcard `json:"items"`
	Requested int            `json:"requested"`
	Failed    int            `json:"failed"`
	Note      string         `json:"note,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) generatePhase(c *gin.Context) {
	var dto generatePhaseRequest
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.generation.GeneratePhase(ctx, services.PhaseRequest{
		Title:              dto.Title,
		Description:        dto.Description,
		PostsPerDay:        dto.PostsPerDay,
		DurationDays:       dto.DurationDays,
		TemplatePreference: dto.TemplatePreference,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	items := make([]rpc.Postcard, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, p.Wire())
	}
	c.JSON(http.StatusOK, generatePhaseResponse{
		Items:     items,
		Requested: res.Requested,
		Failed:    res.Failed,
		Note:      res.Note,
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	var pe *services.ProviderError
	switch {
	case errors.Is(err, common.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrProviderNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation is not available"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "generation timed out"})
	case errors.As(err, &pe):
		s.logger.Warn(c.Request.Context(), "generation provider failed", "error", pe.Err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI provider failed", "details": pe.Err.Error()})
	default:
		s.logger.Error(c.Request.Context(), "generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
